package account

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// Account is the API response model for an account.
type Account struct {
	ID      string `json:"id" doc:"Account UUID"`
	Name    string `json:"name" doc:"Account name, referenced by transactions"`
	Type    string `json:"type" enum:"checking,savings,cash,investment,other"`
	Balance string `json:"balance" doc:"Decimal balance"`
}

func fromModel(a finance.Account) Account {
	return Account{
		ID:      a.ID.String(),
		Name:    a.Name,
		Type:    string(a.Type),
		Balance: a.Balance.String(),
	}
}

type actionProcessor interface {
	Process(ctx context.Context, household uuid.UUID, action actions.IAction) error
}
