package actions

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/installment"
	"github.com/carson-networks/household-server/internal/storage"
)

type CreateAccount struct {
	Name            string
	Type            finance.AccountType
	StartingBalance decimal.Decimal
	NewID           installment.IDFunc

	Created finance.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := idGenerator(c.NewID)()
	if err != nil {
		return err
	}

	account := finance.Account{
		ID:      id,
		Name:    strings.TrimSpace(c.Name),
		Type:    c.Type,
		Balance: c.StartingBalance,
	}
	l, err := writer.Ledger().AddAccount(account)
	if err != nil {
		return err
	}

	writer.Stage(l)
	c.Created = account
	return nil
}
