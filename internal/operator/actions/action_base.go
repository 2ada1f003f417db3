package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/installment"
	"github.com/carson-networks/household-server/internal/storage"
)

// IAction is one read-modify-write against a household ledger. Perform
// stages the new ledger on writer; the operator commits it.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

func idGenerator(f installment.IDFunc) installment.IDFunc {
	if f == nil {
		return uuid.NewV4
	}
	return f
}
