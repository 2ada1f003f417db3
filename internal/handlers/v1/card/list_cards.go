package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
)

type ListCardsInput struct {
	apiutil.HouseholdPath
}

type ListCardsResponseBody struct {
	Cards []Card `json:"cards"`
}

type ListCardsOutput struct {
	Body ListCardsResponseBody
}

type cardLister interface {
	ListCards(ctx context.Context, household uuid.UUID) ([]finance.Card, error)
}

// ListCardsHandler handles GET /v1/households/{householdID}/cards.
type ListCardsHandler struct {
	CardService cardLister
}

func NewListCardsHandler(svc cardLister) *ListCardsHandler {
	return &ListCardsHandler{CardService: svc}
}

func (h *ListCardsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/cards",
		Summary:     "List credit cards",
		Tags:        []string{"Cards"},
	}, h.handle)
}

func (h *ListCardsHandler) handle(ctx context.Context, input *ListCardsInput) (*ListCardsOutput, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return nil, err
	}
	cards, err := h.CardService.ListCards(ctx, household)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list cards")
	}

	resp := ListCardsResponseBody{Cards: make([]Card, len(cards))}
	for i, c := range cards {
		resp.Cards[i] = FromModel(c)
	}
	return &ListCardsOutput{Body: resp}, nil
}
