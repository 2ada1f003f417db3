package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
)

type GetTransactionInput struct {
	apiutil.HouseholdPath
	TransactionID string `path:"transactionID" doc:"Transaction UUID"`
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, household, id uuid.UUID) (finance.Transaction, error)
}

// GetTransactionHandler handles GET /v1/households/{householdID}/transactions/{transactionID}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/transactions/{transactionID}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return nil, err
	}
	id, err := apiutil.ParseUUID("transactionID", input.TransactionID)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, household, id)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: FromModel(tx)}, nil
}
