package invoice

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/billing"
	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/handlers/v1/transaction"
)

// Invoice is the API shape of one card statement.
type Invoice struct {
	CardID              string                    `json:"cardId"`
	CardName            string                    `json:"cardName"`
	ClosingDate         string                    `json:"closingDate" doc:"yyyy-MM-dd, last day of the cycle"`
	PreviousClosingDate string                    `json:"previousClosingDate" doc:"yyyy-MM-dd, exclusive start of the cycle"`
	PaymentDate         string                    `json:"paymentDate" doc:"yyyy-MM-dd"`
	BestPurchaseDate    string                    `json:"bestPurchaseDate" doc:"yyyy-MM-dd, first day of the next cycle"`
	CurrentBill         string                    `json:"currentBill" doc:"Sum of the absolute amounts in the cycle"`
	AvailableLimit      string                    `json:"availableLimit" doc:"Limit minus everything charged from this cycle onward"`
	Transactions        []transaction.Transaction `json:"transactions" doc:"Charges in the cycle, newest first"`
}

func fromModel(inv billing.Invoice) Invoice {
	return Invoice{
		CardID:              inv.Card.ID.String(),
		CardName:            inv.Card.Name,
		ClosingDate:         calendar.Format(inv.ClosingDate),
		PreviousClosingDate: calendar.Format(inv.PreviousClosingDate),
		PaymentDate:         calendar.Format(inv.PaymentDate),
		BestPurchaseDate:    calendar.Format(inv.BestPurchaseDate),
		CurrentBill:         inv.Total.String(),
		AvailableLimit:      inv.AvailableLimit.String(),
		Transactions:        transaction.FromModels(inv.Transactions),
	}
}

type invoiceService interface {
	Invoice(ctx context.Context, household, cardID uuid.UUID, reference *civil.Date) (billing.Invoice, error)
	Forecast(ctx context.Context, household, cardID uuid.UUID, months int) ([]billing.Invoice, error)
}

// CardPath is embedded in inputs addressing one card.
type CardPath struct {
	apiutil.HouseholdPath
	CardID string `path:"cardID" doc:"Card UUID"`
}

func (p CardPath) parse() (household, card uuid.UUID, err error) {
	household, err = apiutil.ParseUUID("householdID", p.HouseholdID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	card, err = apiutil.ParseUUID("cardID", p.CardID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return household, card, nil
}
