package actions

import (
	"context"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/installment"
	"github.com/carson-networks/household-server/internal/posting"
	"github.com/carson-networks/household-server/internal/storage"
)

// CreateTransaction posts a request, expanding installments and transfers.
// Created holds the stored rows after a successful Perform.
type CreateTransaction struct {
	Request posting.Request
	NewID   installment.IDFunc

	Created []finance.Transaction
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	p, err := posting.Build(c.Request, idGenerator(c.NewID))
	if err != nil {
		return err
	}

	l, err := posting.Apply(writer.Ledger(), p)
	if err != nil {
		return err
	}

	writer.Stage(l)
	c.Created = p.Transactions
	return nil
}
