package finance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Ledger is one household's snapshot. Methods never modify the receiver's
// slices; every change returns a new Ledger.
type Ledger struct {
	Transactions []Transaction
	Accounts     []Account
	Cards        []Card
}

// SortByDateDesc orders txs newest first. Rows sharing a date keep their
// relative order.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

// InsertTransactions adds txs ahead of the existing rows and re-sorts the
// list descending by date.
func (l Ledger) InsertTransactions(txs ...Transaction) Ledger {
	out := make([]Transaction, 0, len(l.Transactions)+len(txs))
	out = append(out, txs...)
	out = append(out, l.Transactions...)
	SortByDateDesc(out)
	l.Transactions = out
	return l
}

// FindTransaction looks a transaction up by ID.
func (l Ledger) FindTransaction(id uuid.UUID) (Transaction, bool) {
	for _, tx := range l.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// UpdateTransaction applies fn to a copy of the transaction with the given ID.
func (l Ledger) UpdateTransaction(id uuid.UUID, fn func(*Transaction)) (Ledger, error) {
	out := make([]Transaction, len(l.Transactions))
	copy(out, l.Transactions)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			out[i].ID = id
			SortByDateDesc(out)
			l.Transactions = out
			return l, nil
		}
	}
	return l, fmt.Errorf("update %s: %w", id, ErrTransactionNotFound)
}

// RemoveTransaction deletes a single transaction.
func (l Ledger) RemoveTransaction(id uuid.UUID) (Ledger, error) {
	out, removed := l.filterTransactions(func(tx Transaction) bool { return tx.ID == id })
	if removed == 0 {
		return l, fmt.Errorf("remove %s: %w", id, ErrTransactionNotFound)
	}
	l.Transactions = out
	return l, nil
}

// RemoveInstallmentGroup deletes every installment sharing groupID and
// returns how many rows went away.
func (l Ledger) RemoveInstallmentGroup(groupID uuid.UUID) (Ledger, int, error) {
	out, removed := l.filterTransactions(func(tx Transaction) bool {
		return tx.InstallmentGroupID != nil && *tx.InstallmentGroupID == groupID
	})
	if removed == 0 {
		return l, 0, fmt.Errorf("remove group %s: %w", groupID, ErrTransactionNotFound)
	}
	l.Transactions = out
	return l, removed, nil
}

func (l Ledger) filterTransactions(drop func(Transaction) bool) ([]Transaction, int) {
	out := make([]Transaction, 0, len(l.Transactions))
	for _, tx := range l.Transactions {
		if drop(tx) {
			continue
		}
		out = append(out, tx)
	}
	return out, len(l.Transactions) - len(out)
}

// TransactionsForAccount returns the rows whose Account equals name.
func (l Ledger) TransactionsForAccount(name string) []Transaction {
	var out []Transaction
	for _, tx := range l.Transactions {
		if tx.Account == name {
			out = append(out, tx)
		}
	}
	return out
}

// AccountByName matches on the exact account name.
func (l Ledger) AccountByName(name string) (Account, bool) {
	for _, acc := range l.Accounts {
		if acc.Name == name {
			return acc, true
		}
	}
	return Account{}, false
}

// nameTaken reports whether an account or card already uses name.
func (l Ledger) nameTaken(name string) bool {
	_, isAccount := l.AccountByName(name)
	_, isCard := l.CardByName(name)
	return isAccount || isCard
}

// AddAccount appends acc. Names must be unique across accounts and cards
// because transactions join on them.
func (l Ledger) AddAccount(acc Account) (Ledger, error) {
	if strings.TrimSpace(acc.Name) == "" {
		return l, fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if !acc.Type.Valid() {
		return l, fmt.Errorf("%w: unknown type %q", ErrInvalidAccount, acc.Type)
	}
	if l.nameTaken(acc.Name) {
		return l, fmt.Errorf("account %q: %w", acc.Name, ErrDuplicateName)
	}
	out := make([]Account, 0, len(l.Accounts)+1)
	out = append(out, l.Accounts...)
	l.Accounts = append(out, acc)
	return l, nil
}

// AdjustBalance adds delta to the balance of the named account.
func (l Ledger) AdjustBalance(name string, delta decimal.Decimal) (Ledger, error) {
	out := make([]Account, len(l.Accounts))
	copy(out, l.Accounts)
	for i := range out {
		if out[i].Name == name {
			out[i].Balance = out[i].Balance.Add(delta)
			l.Accounts = out
			return l, nil
		}
	}
	return l, fmt.Errorf("account %q: %w", name, ErrAccountNotFound)
}

// CardByID looks a card up by ID.
func (l Ledger) CardByID(id uuid.UUID) (Card, bool) {
	for _, c := range l.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// CardByName matches on the exact card name.
func (l Ledger) CardByName(name string) (Card, bool) {
	for _, c := range l.Cards {
		if c.Name == name {
			return c, true
		}
	}
	return Card{}, false
}

// Validate checks the statement days and the limit.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCard)
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("%w: closingDay %d out of range 1-31", ErrInvalidCard, c.ClosingDay)
	}
	if c.PaymentDay < 1 || c.PaymentDay > 31 {
		return fmt.Errorf("%w: paymentDay %d out of range 1-31", ErrInvalidCard, c.PaymentDay)
	}
	if c.Limit.IsNegative() {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidCard)
	}
	return nil
}

// AddCard appends a validated card with a unique name.
func (l Ledger) AddCard(c Card) (Ledger, error) {
	if err := c.Validate(); err != nil {
		return l, err
	}
	if l.nameTaken(c.Name) {
		return l, fmt.Errorf("card %q: %w", c.Name, ErrDuplicateName)
	}
	out := make([]Card, 0, len(l.Cards)+1)
	out = append(out, l.Cards...)
	l.Cards = append(out, c)
	return l, nil
}
