package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
)

const (
	collectionTransactions = "transactions"
	collectionAccounts     = "accounts"
	collectionCards        = "cards"
)

// collections is also the order of the entries Commit hands to SetMany.
var collections = []string{collectionAccounts, collectionCards, collectionTransactions}

// Key is the store path of one household collection.
func Key(household uuid.UUID, collection string) string {
	return "households/" + household.String() + "/" + collection
}

func TransactionsKey(household uuid.UUID) string { return Key(household, collectionTransactions) }
func AccountsKey(household uuid.UUID) string     { return Key(household, collectionAccounts) }
func CardsKey(household uuid.UUID) string        { return Key(household, collectionCards) }

var ErrCorruptDocument = errors.New("corrupt ledger document")

func decode[T any](path string, raw []byte) ([]T, error) {
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrCorruptDocument, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
