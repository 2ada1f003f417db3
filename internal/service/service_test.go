package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/household-server/internal/finance"
)

type mockLedgerReader struct {
	mock.Mock
}

func (m *mockLedgerReader) Ledger(ctx context.Context, household uuid.UUID) (finance.Ledger, error) {
	args := m.Called(ctx, household)
	return args.Get(0).(finance.Ledger), args.Error(1)
}

var household = uuid.Must(uuid.FromString("0f0e4a52-6fd1-4b35-9b6c-3f3bd1d6e0a1"))

func fixedClock(y int, m time.Month, d int) Clock {
	return Clock{
		Now:      func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func makeRows(n int, account string) []finance.Transaction {
	rows := make([]finance.Transaction, n)
	for i := range rows {
		rows[i] = finance.Transaction{
			ID:          uuid.Must(uuid.NewV4()),
			Description: "Item",
			Amount:      decimal.RequireFromString("-5.00"),
			Date:        civil.Date{Year: 2024, Month: time.July, Day: 28 - i%28},
			Type:        finance.TypeExpense,
			Account:     account,
		}
	}
	return rows
}

// -- ListTransactions tests --

func TestListTransactions_NoResults(t *testing.T) {
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{}, nil)

	txs, next, err := NewTransactionService(reader).ListTransactions(context.Background(), household, TransactionFilter{}, nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, next)
	reader.AssertExpectations(t)
}

func TestListTransactions_HasNextPage(t *testing.T) {
	reader := new(mockLedgerReader)
	rows := makeRows(defaultLimit+1, "Nubank")
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{Transactions: rows}, nil)

	txs, next, err := NewTransactionService(reader).ListTransactions(context.Background(), household, TransactionFilter{}, nil)

	require.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")
	require.NotNil(t, next)
	assert.Equal(t, defaultLimit, next.Position)
	assert.Equal(t, defaultLimit, next.Limit)
}

func TestListTransactions_WithCursor(t *testing.T) {
	reader := new(mockLedgerReader)
	rows := makeRows(25, "Nubank")
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{Transactions: rows}, nil)

	svc := NewTransactionService(reader)
	txs, next, err := svc.ListTransactions(context.Background(), household, TransactionFilter{}, &TransactionCursor{Position: 20, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, rows[20].ID, txs[0].ID)
	require.NotNil(t, next)
	assert.Equal(t, 22, next.Position)

	txs, next, err = svc.ListTransactions(context.Background(), household, TransactionFilter{}, &TransactionCursor{Position: 22, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, txs, 3)
	assert.Nil(t, next, "last page")
}

func TestListTransactions_FilterAccount(t *testing.T) {
	reader := new(mockLedgerReader)
	rows := append(makeRows(3, "Nubank"), makeRows(2, "Checking")...)
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{Transactions: rows}, nil)

	txs, _, err := NewTransactionService(reader).ListTransactions(context.Background(), household, TransactionFilter{Account: "Checking"}, nil)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, "Checking", tx.Account)
	}
}

func TestListTransactions_StorageError(t *testing.T) {
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{}, errors.New("database unavailable"))

	txs, next, err := NewTransactionService(reader).ListTransactions(context.Background(), household, TransactionFilter{}, nil)

	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
	assert.Nil(t, next)
}

func TestGetTransaction(t *testing.T) {
	reader := new(mockLedgerReader)
	rows := makeRows(2, "Nubank")
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{Transactions: rows}, nil)
	svc := NewTransactionService(reader)

	tx, err := svc.GetTransaction(context.Background(), household, rows[1].ID)
	require.NoError(t, err)
	assert.Equal(t, rows[1].ID, tx.ID)

	_, err = svc.GetTransaction(context.Background(), household, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, finance.ErrTransactionNotFound)
}

// -- Account and card tests --

func TestListAccountsAndCards(t *testing.T) {
	reader := new(mockLedgerReader)
	l := finance.Ledger{
		Accounts: []finance.Account{{ID: uuid.Must(uuid.NewV4()), Name: "Checking", Type: finance.AccountTypeChecking}},
		Cards:    []finance.Card{{ID: uuid.Must(uuid.NewV4()), Name: "Nubank", ClosingDay: 28, PaymentDay: 10}},
	}
	reader.On("Ledger", mock.Anything, household).Return(l, nil)

	accounts, err := NewAccountService(reader).ListAccounts(context.Background(), household)
	require.NoError(t, err)
	assert.Equal(t, l.Accounts, accounts)

	cards, err := NewCardService(reader).ListCards(context.Background(), household)
	require.NoError(t, err)
	assert.Equal(t, l.Cards, cards)
}

// -- Invoice tests --

func invoiceLedger() (finance.Ledger, finance.Card) {
	card := finance.Card{
		ID:         uuid.Must(uuid.NewV4()),
		Name:       "Nubank",
		ClosingDay: 28,
		PaymentDay: 10,
		Limit:      decimal.RequireFromString("1000"),
	}
	rows := []finance.Transaction{
		{ID: uuid.Must(uuid.NewV4()), Amount: decimal.RequireFromString("-40"), Date: civil.Date{Year: 2024, Month: time.July, Day: 10}, Type: finance.TypeExpense, Account: "Nubank"},
		{ID: uuid.Must(uuid.NewV4()), Amount: decimal.RequireFromString("-60"), Date: civil.Date{Year: 2024, Month: time.August, Day: 10}, Type: finance.TypeExpense, Account: "Nubank"},
	}
	return finance.Ledger{Transactions: rows, Cards: []finance.Card{card}}, card
}

func TestInvoice_UsesClock(t *testing.T) {
	l, card := invoiceLedger()
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(l, nil)

	invoice, err := NewInvoiceService(reader, fixedClock(2024, time.July, 15)).Invoice(context.Background(), household, card.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, civil.Date{Year: 2024, Month: time.July, Day: 28}, invoice.ClosingDate)
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("40")))
	assert.True(t, invoice.AvailableLimit.Equal(decimal.RequireFromString("900")))
}

func TestInvoice_Reference(t *testing.T) {
	l, card := invoiceLedger()
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(l, nil)

	ref := civil.Date{Year: 2024, Month: time.August, Day: 1}
	invoice, err := NewInvoiceService(reader, fixedClock(2024, time.July, 15)).Invoice(context.Background(), household, card.ID, &ref)
	require.NoError(t, err)

	assert.Equal(t, civil.Date{Year: 2024, Month: time.August, Day: 28}, invoice.ClosingDate)
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("60")))
}

func TestInvoice_UnknownCard(t *testing.T) {
	l, _ := invoiceLedger()
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(l, nil)

	_, err := NewInvoiceService(reader, fixedClock(2024, time.July, 15)).Invoice(context.Background(), household, uuid.Must(uuid.NewV4()), nil)
	assert.ErrorIs(t, err, finance.ErrCardNotFound)
}

func TestForecast(t *testing.T) {
	l, card := invoiceLedger()
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(l, nil)

	invoices, err := NewInvoiceService(reader, fixedClock(2024, time.July, 15)).Forecast(context.Background(), household, card.ID, 2)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.True(t, invoices[1].Total.Equal(decimal.RequireFromString("60")))
}

func TestClock_Location(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC on the 16th is still the 15th in Sao Paulo.
	clock := Clock{
		Now:      func() time.Time { return time.Date(2024, time.July, 16, 1, 30, 0, 0, time.UTC) },
		Location: saoPaulo,
	}
	assert.Equal(t, civil.Date{Year: 2024, Month: time.July, Day: 15}, clock.today())
}

// -- Calendar tests --

func TestCalendarMonth(t *testing.T) {
	rent := finance.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Amount:      decimal.RequireFromString("-1500"),
		Date:        civil.Date{Year: 2024, Month: time.June, Day: 5},
		Type:        finance.TypeExpense,
		Account:     "Checking",
		IsRecurring: true,
		Frequency:   finance.FrequencyMonthly,
	}
	reader := new(mockLedgerReader)
	reader.On("Ledger", mock.Anything, household).Return(finance.Ledger{Transactions: []finance.Transaction{rent}}, nil)

	entries, err := NewCalendarService(reader).Month(context.Background(), household, 2024, time.July)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Projected)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.July, Day: 5}, entries[0].Date)
}
