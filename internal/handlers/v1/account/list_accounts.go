package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/logging"
)

type ListAccountsInput struct {
	apiutil.HouseholdPath
}

type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

type accountLister interface {
	ListAccounts(ctx context.Context, household uuid.UUID) ([]finance.Account, error)
}

// ListAccountsHandler handles GET /v1/households/{householdID}/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/accounts",
		Summary:     "List accounts",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return nil, err
	}

	accounts, err := h.AccountService.ListAccounts(ctx, household)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list accounts")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{Accounts: make([]Account, len(accounts))}
	for i, a := range accounts {
		resp.Accounts[i] = fromModel(a)
	}
	return &ListAccountsOutput{Body: resp}, nil
}
