package actions

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/installment"
	"github.com/carson-networks/household-server/internal/storage"
)

type CreateCard struct {
	Name       string
	ClosingDay int
	PaymentDay int
	Limit      decimal.Decimal
	NewID      installment.IDFunc

	Created finance.Card
}

func (c *CreateCard) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := idGenerator(c.NewID)()
	if err != nil {
		return err
	}

	card := finance.Card{
		ID:         id,
		Name:       strings.TrimSpace(c.Name),
		ClosingDay: c.ClosingDay,
		PaymentDay: c.PaymentDay,
		Limit:      c.Limit,
	}
	l, err := writer.Ledger().AddCard(card)
	if err != nil {
		return err
	}

	writer.Stage(l)
	c.Created = card
	return nil
}
