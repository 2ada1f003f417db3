package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/operator/actions"
	"github.com/carson-networks/household-server/internal/posting"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Description  string `json:"description" minLength:"1" doc:"What the money was for"`
	Amount       string `json:"amount" doc:"Decimal amount, the sign is taken from type"`
	Date         string `json:"date" doc:"yyyy-MM-dd"`
	Type         string `json:"type" enum:"income,expense,transfer"`
	Category     string `json:"category,omitempty"`
	Account      string `json:"account,omitempty" doc:"Account or card name, required unless type is transfer"`
	Installments int    `json:"installments,omitempty" minimum:"0" maximum:"120" doc:"Split into this many monthly installments"`
	IsRecurring  bool   `json:"isRecurring,omitempty"`
	Frequency    string `json:"frequency,omitempty" enum:"daily,weekly,monthly,annual"`
	FromAccount  string `json:"fromAccount,omitempty" doc:"Transfer source account name"`
	ToAccount    string `json:"toAccount,omitempty" doc:"Transfer destination account name"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	apiutil.HouseholdPath
	Body CreateTransactionBody
}

// CreateTransactionResponse lists every stored row: one per installment and
// two for a transfer.
type CreateTransactionResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/households/{householdID}/transactions.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/households/{householdID}/transactions",
		Summary:       "Create transaction",
		Description:   "Creates an income, expense or transfer. Expenses may be split into monthly installments.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (uuid.UUID, posting.Request, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return uuid.Nil, posting.Request{}, err
	}
	amount, err := apiutil.ParseDecimal("amount", input.Body.Amount)
	if err != nil {
		return uuid.Nil, posting.Request{}, err
	}
	date, err := calendar.Parse(input.Body.Date)
	if err != nil {
		return uuid.Nil, posting.Request{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	return household, posting.Request{
		Description:  input.Body.Description,
		Amount:       amount,
		Date:         date,
		Type:         finance.TransactionType(input.Body.Type),
		Category:     input.Body.Category,
		Account:      input.Body.Account,
		Installments: input.Body.Installments,
		IsRecurring:  input.Body.IsRecurring,
		Frequency:    finance.Frequency(input.Body.Frequency),
		FromAccount:  input.Body.FromAccount,
		ToAccount:    input.Body.ToAccount,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	household, request, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Request: request}
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("createTransactionMs")()
		logData.AddData("household", household.String())
	}
	if err := h.Operator.Process(ctx, household, action); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{Transactions: FromModels(action.Created)},
	}, nil
}
