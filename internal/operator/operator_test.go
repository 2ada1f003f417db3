package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/operator/actions"
	"github.com/carson-networks/household-server/internal/posting"
	"github.com/carson-networks/household-server/internal/storage"
	"github.com/carson-networks/household-server/internal/storage/kv"
	"github.com/carson-networks/household-server/internal/storage/memory"
)

func newTestDelegator(t *testing.T) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	s := storage.New(memory.New(), logrus.New())
	d := NewOperatorDelegator(s, 16)
	d.Start()
	t.Cleanup(func() {
		d.Stop()
		_ = s.Close()
	})
	return d, s
}

func ledger(t *testing.T, s *storage.Storage, h uuid.UUID) finance.Ledger {
	t.Helper()
	l, err := s.Reader.Ledger(context.Background(), h)
	require.NoError(t, err)
	return l
}

func transfer(amount string) *actions.CreateTransaction {
	return &actions.CreateTransaction{Request: posting.Request{
		Description: "Move",
		Amount:      decimal.RequireFromString(amount),
		Date:        civil.Date{Year: 2024, Month: time.July, Day: 15},
		Type:        finance.TypeTransfer,
		FromAccount: "A",
		ToAccount:   "B",
	}}
}

func seedAccounts(t *testing.T, d *OperatorDelegator, h uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, d.Process(ctx, h, &actions.CreateAccount{Name: "A", Type: finance.AccountTypeChecking, StartingBalance: decimal.RequireFromString("1000")}))
	require.NoError(t, d.Process(ctx, h, &actions.CreateAccount{Name: "B", Type: finance.AccountTypeSavings}))
}

func TestProcess_CreateTransactionCommits(t *testing.T) {
	d, s := newTestDelegator(t)
	h := uuid.Must(uuid.NewV4())

	action := &actions.CreateTransaction{Request: posting.Request{
		Description:  "TV",
		Amount:       decimal.RequireFromString("300"),
		Date:         civil.Date{Year: 2024, Month: time.January, Day: 31},
		Type:         finance.TypeExpense,
		Category:     "Electronics",
		Account:      "Nubank",
		Installments: 3,
	}}
	require.NoError(t, d.Process(context.Background(), h, action))

	require.Len(t, action.Created, 3)
	l := ledger(t, s, h)
	require.Len(t, l.Transactions, 3)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 31}, l.Transactions[0].Date)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, l.Transactions[1].Date)
}

func TestProcess_FailedActionLeavesLedger(t *testing.T) {
	d, s := newTestDelegator(t)
	h := uuid.Must(uuid.NewV4())
	seedAccounts(t, d, h)

	bad := transfer("50")
	bad.Request.ToAccount = "Ghost"
	err := d.Process(context.Background(), h, bad)
	assert.ErrorIs(t, err, finance.ErrAccountNotFound)

	l := ledger(t, s, h)
	assert.Empty(t, l.Transactions)
	a, _ := l.AccountByName("A")
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestProcess_ConcurrentTransfersSerialize(t *testing.T) {
	d, s := newTestDelegator(t)
	h := uuid.Must(uuid.NewV4())
	seedAccounts(t, d, h)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Process(context.Background(), h, transfer("10")))
		}()
	}
	wg.Wait()

	l := ledger(t, s, h)
	a, _ := l.AccountByName("A")
	b, _ := l.AccountByName("B")
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("600")), a.Balance.String())
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("400")), b.Balance.String())
	assert.Len(t, l.Transactions, 80)
}

func TestProcess_UpdateAndDeleteGroup(t *testing.T) {
	d, s := newTestDelegator(t)
	h := uuid.Must(uuid.NewV4())
	ctx := context.Background()

	create := &actions.CreateTransaction{Request: posting.Request{
		Description:  "Sofa",
		Amount:       decimal.RequireFromString("100"),
		Date:         civil.Date{Year: 2024, Month: time.July, Day: 1},
		Type:         finance.TypeExpense,
		Account:      "Nubank",
		Installments: 4,
	}}
	require.NoError(t, d.Process(ctx, h, create))

	paid := true
	update := &actions.UpdateTransaction{ID: create.Created[0].ID, Paid: &paid}
	require.NoError(t, d.Process(ctx, h, update))
	assert.True(t, update.Updated.Paid)

	empty := " "
	assert.ErrorIs(t, d.Process(ctx, h, &actions.UpdateTransaction{ID: create.Created[0].ID, Description: &empty}), posting.ErrInvalidRequest)

	del := &actions.DeleteTransaction{ID: create.Created[1].ID, Group: true}
	require.NoError(t, d.Process(ctx, h, del))
	assert.Equal(t, 4, del.Removed)
	assert.Empty(t, ledger(t, s, h).Transactions)

	err := d.Process(ctx, h, &actions.DeleteTransaction{ID: create.Created[1].ID})
	assert.ErrorIs(t, err, finance.ErrTransactionNotFound)
}

func TestProcess_HouseholdsAreIsolated(t *testing.T) {
	d, s := newTestDelegator(t)
	a, b := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	require.NoError(t, d.Process(context.Background(), a, &actions.CreateCard{Name: "Nubank", ClosingDay: 28, PaymentDay: 10}))

	assert.Len(t, ledger(t, s, a).Cards, 1)
	assert.Empty(t, ledger(t, s, b).Cards)
}

type blockingAction struct {
	release chan struct{}
}

func (b *blockingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	<-b.release
	return nil
}

func TestProcess_CanceledContext(t *testing.T) {
	d, s := newTestDelegator(t)
	h := uuid.Must(uuid.NewV4())

	block := &blockingAction{release: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- d.Process(context.Background(), h, block) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Process(ctx, h, &actions.CreateCard{Name: "Late", ClosingDay: 1, PaymentDay: 5})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	close(block.release)
	require.NoError(t, <-done)

	// the queue is drained once a later action completes
	require.NoError(t, d.Process(context.Background(), h, &actions.CreateCard{Name: "After", ClosingDay: 1, PaymentDay: 5}))
	cards := ledger(t, s, h).Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "After", cards[0].Name, "an action dropped while queued is never written")
}

func TestProcess_AfterStop(t *testing.T) {
	s := storage.New(memory.New(), logrus.New())
	d := NewOperatorDelegator(s, 1)
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), uuid.Must(uuid.NewV4()), &actions.CreateCard{Name: "X", ClosingDay: 1, PaymentDay: 1})
	assert.ErrorIs(t, err, ErrStopped)
}

// gatedStore holds SetMany until release is closed once armed, and fails
// it if the commit context ends first.
type gatedStore struct {
	*memory.Store
	armed   bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) SetMany(ctx context.Context, entries []kv.Entry) error {
	if g.armed {
		close(g.entered)
		select {
		case <-g.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.Store.SetMany(ctx, entries)
}

func TestProcess_CallerCancelDuringCommit(t *testing.T) {
	store := &gatedStore{Store: memory.New(), entered: make(chan struct{}), release: make(chan struct{})}
	s := storage.New(store, logrus.New())
	d := NewOperatorDelegator(s, 4)
	d.Start()
	t.Cleanup(func() {
		d.Stop()
		_ = s.Close()
	})
	h := uuid.Must(uuid.NewV4())
	seedAccounts(t, d, h)

	store.armed = true
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Process(ctx, h, transfer("50")) }()

	<-store.entered
	cancel()
	select {
	case err := <-done:
		t.Fatalf("Process returned %v before the commit finished", err)
	case <-time.After(20 * time.Millisecond):
	}
	close(store.release)

	require.NoError(t, <-done, "the commit went through, so the caller is told so")
	l := ledger(t, s, h)
	a, _ := l.AccountByName("A")
	b, _ := l.AccountByName("B")
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("950")), a.Balance.String())
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("50")), b.Balance.String())
	assert.Len(t, l.Transactions, 2)
}
