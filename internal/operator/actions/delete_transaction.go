package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/storage"
)

// DeleteTransaction removes one row, or with Group every installment that
// shares the row's group. Group on a row outside any group removes just it.
type DeleteTransaction struct {
	ID    uuid.UUID
	Group bool

	Removed int
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	l := writer.Ledger()
	tx, ok := l.FindTransaction(d.ID)
	if !ok {
		return fmt.Errorf("delete %s: %w", d.ID, finance.ErrTransactionNotFound)
	}

	if d.Group && tx.InstallmentGroupID != nil {
		out, removed, err := l.RemoveInstallmentGroup(*tx.InstallmentGroupID)
		if err != nil {
			return err
		}
		writer.Stage(out)
		d.Removed = removed
		return nil
	}

	out, err := l.RemoveTransaction(d.ID)
	if err != nil {
		return err
	}
	writer.Stage(out)
	d.Removed = 1
	return nil
}
