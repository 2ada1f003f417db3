package card

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// Card is the API response model for a credit card.
type Card struct {
	ID         string `json:"id" doc:"Card UUID"`
	Name       string `json:"name" doc:"Card name, referenced by transactions as their account"`
	ClosingDay int    `json:"closingDay" minimum:"1" maximum:"31"`
	PaymentDay int    `json:"paymentDay" minimum:"1" maximum:"31"`
	Limit      string `json:"limit" doc:"Decimal credit limit"`
}

// FromModel converts a card to its API shape.
func FromModel(c finance.Card) Card {
	return Card{
		ID:         c.ID.String(),
		Name:       c.Name,
		ClosingDay: c.ClosingDay,
		PaymentDay: c.PaymentDay,
		Limit:      c.Limit.String(),
	}
}

type actionProcessor interface {
	Process(ctx context.Context, household uuid.UUID, action actions.IAction) error
}
