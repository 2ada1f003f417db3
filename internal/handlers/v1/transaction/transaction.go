package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/operator/actions"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                 string `json:"id" doc:"Transaction UUID"`
	Description        string `json:"description"`
	Amount             string `json:"amount" doc:"Signed decimal amount, negative for expenses"`
	Date               string `json:"date" doc:"yyyy-MM-dd"`
	Type               string `json:"type" enum:"income,expense,transfer"`
	Category           string `json:"category"`
	Account            string `json:"account" doc:"Account or card name"`
	Paid               bool   `json:"paid"`
	IsRecurring        bool   `json:"isRecurring"`
	Frequency          string `json:"frequency,omitempty"`
	InstallmentGroupID string `json:"installmentGroupId,omitempty"`
	CurrentInstallment int    `json:"currentInstallment,omitempty"`
	TotalInstallments  int    `json:"totalInstallments,omitempty"`
}

// FromModel converts a ledger row to its API shape.
func FromModel(tx finance.Transaction) Transaction {
	out := Transaction{
		ID:                 tx.ID.String(),
		Description:        tx.Description,
		Amount:             tx.Amount.String(),
		Date:               calendar.Format(tx.Date),
		Type:               string(tx.Type),
		Category:           tx.Category,
		Account:            tx.Account,
		Paid:               tx.Paid,
		IsRecurring:        tx.IsRecurring,
		Frequency:          string(tx.Frequency),
		CurrentInstallment: tx.CurrentInstallment,
		TotalInstallments:  tx.TotalInstallments,
	}
	if tx.InstallmentGroupID != nil {
		out.InstallmentGroupID = tx.InstallmentGroupID.String()
	}
	return out
}

// FromModels converts rows, never returning nil.
func FromModels(txs []finance.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = FromModel(tx)
	}
	return out
}

// actionProcessor queues write actions on the operator.
type actionProcessor interface {
	Process(ctx context.Context, household uuid.UUID, action actions.IAction) error
}
