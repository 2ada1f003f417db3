package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

type DeleteTransactionInput struct {
	apiutil.HouseholdPath
	TransactionID string `path:"transactionID" doc:"Transaction UUID"`
	Group         bool   `query:"group" doc:"Delete every installment of the row's group"`
}

type DeleteTransactionResponse struct {
	Removed int `json:"removed" doc:"Number of rows deleted"`
}

type DeleteTransactionOutput struct {
	Body DeleteTransactionResponse
}

// DeleteTransactionHandler handles DELETE /v1/households/{householdID}/transactions/{transactionID}.
type DeleteTransactionHandler struct {
	Operator actionProcessor
}

func NewDeleteTransactionHandler(op actionProcessor) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Operator: op}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/households/{householdID}/transactions/{transactionID}",
		Summary:     "Delete transaction",
		Description: "Deletes one transaction, or its whole installment group with group=true.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return nil, err
	}
	id, err := apiutil.ParseUUID("transactionID", input.TransactionID)
	if err != nil {
		return nil, err
	}

	action := &actions.DeleteTransaction{ID: id, Group: input.Group}
	if err := h.Operator.Process(ctx, household, action); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{Body: DeleteTransactionResponse{Removed: action.Removed}}, nil
}
