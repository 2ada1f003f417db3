package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/posting"
	"github.com/carson-networks/household-server/internal/storage"
)

// UpdateTransaction edits the mutable fields of one row. Nil fields are left
// as they are.
type UpdateTransaction struct {
	ID          uuid.UUID
	Paid        *bool
	Description *string
	Category    *string

	Updated finance.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", posting.ErrInvalidRequest)
	}

	l, err := writer.Ledger().UpdateTransaction(u.ID, func(tx *finance.Transaction) {
		if u.Paid != nil {
			tx.Paid = *u.Paid
		}
		if u.Description != nil {
			tx.Description = strings.TrimSpace(*u.Description)
		}
		if u.Category != nil {
			tx.Category = *u.Category
		}
	})
	if err != nil {
		return err
	}

	writer.Stage(l)
	u.Updated, _ = l.FindTransaction(u.ID)
	return nil
}
