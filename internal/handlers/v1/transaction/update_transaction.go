package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// UpdateTransactionBody carries the editable fields. Omitted fields keep
// their stored value.
type UpdateTransactionBody struct {
	Paid        *bool   `json:"paid,omitempty"`
	Description *string `json:"description,omitempty" minLength:"1"`
	Category    *string `json:"category,omitempty"`
}

type UpdateTransactionInput struct {
	apiutil.HouseholdPath
	TransactionID string `path:"transactionID" doc:"Transaction UUID"`
	Body          UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body Transaction
}

// UpdateTransactionHandler handles PATCH /v1/households/{householdID}/transactions/{transactionID}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/households/{householdID}/transactions/{transactionID}",
		Summary:     "Update transaction",
		Description: "Marks a transaction paid or unpaid, or edits its description or category.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (uuid.UUID, *actions.UpdateTransaction, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	id, err := apiutil.ParseUUID("transactionID", input.TransactionID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if input.Body.Paid == nil && input.Body.Description == nil && input.Body.Category == nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "nothing to update")
	}
	return household, &actions.UpdateTransaction{
		ID:          id,
		Paid:        input.Body.Paid,
		Description: input.Body.Description,
		Category:    input.Body.Category,
	}, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	household, action, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}
	if err := h.Operator.Process(ctx, household, action); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: FromModel(action.Updated)}, nil
}
