package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	apiutil.HouseholdPath
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            string `json:"type" enum:"checking,savings,cash,investment,other"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// CreateAccountHandler handles POST /v1/households/{householdID}/accounts.
type CreateAccountHandler struct {
	Operator actionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/households/{householdID}/accounts",
		Summary:       "Create an account",
		Description:   "Creates a new account with the given name, type and starting balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (uuid.UUID, *actions.CreateAccount, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	startingBalance, err := apiutil.ParseDecimal("startingBalance", input.Body.StartingBalance)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return household, &actions.CreateAccount{
		Name:            input.Body.Name,
		Type:            finance.AccountType(input.Body.Type),
		StartingBalance: startingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	household, action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}
	if err := h.Operator.Process(ctx, household, action); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to create account")
	}
	return &CreateAccountOutput{Status: http.StatusCreated, Body: fromModel(action.Created)}, nil
}
