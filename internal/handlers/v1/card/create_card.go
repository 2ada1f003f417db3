package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// CreateCardInput is the Huma input for registering a card.
type CreateCardInput struct {
	apiutil.HouseholdPath
	Body CreateCardBody
}

type CreateCardBody struct {
	Name       string `json:"name" minLength:"1" doc:"Card name"`
	ClosingDay int    `json:"closingDay" minimum:"1" maximum:"31" doc:"Day of month the statement closes"`
	PaymentDay int    `json:"paymentDay" minimum:"1" maximum:"31" doc:"Day of month the statement is due"`
	Limit      string `json:"limit,omitempty" doc:"Credit limit (e.g. '5000.00'), defaults to 0"`
}

type CreateCardOutput struct {
	Status int
	Body   Card
}

// CreateCardHandler handles POST /v1/households/{householdID}/cards.
type CreateCardHandler struct {
	Operator actionProcessor
}

func NewCreateCardHandler(op actionProcessor) *CreateCardHandler {
	return &CreateCardHandler{Operator: op}
}

func (h *CreateCardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-card",
		Method:        http.MethodPost,
		Path:          "/v1/households/{householdID}/cards",
		Summary:       "Register a credit card",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateCardInput(input *CreateCardInput) (uuid.UUID, *actions.CreateCard, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	limit, err := apiutil.ParseDecimal("limit", input.Body.Limit)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return household, &actions.CreateCard{
		Name:       input.Body.Name,
		ClosingDay: input.Body.ClosingDay,
		PaymentDay: input.Body.PaymentDay,
		Limit:      limit,
	}, nil
}

func (h *CreateCardHandler) handle(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
	household, action, err := parseCreateCardInput(input)
	if err != nil {
		return nil, err
	}
	if err := h.Operator.Process(ctx, household, action); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to create card")
	}
	return &CreateCardOutput{Status: http.StatusCreated, Body: FromModel(action.Created)}, nil
}
