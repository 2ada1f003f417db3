package operator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/operator/actions"
	"github.com/carson-networks/household-server/internal/storage"
)

var ErrStopped = errors.New("operator stopped")

// OperatorDelegator owns the write queue. A single Operator drains it, so
// every household ledger has exactly one writer at a time.
type OperatorDelegator struct {
	storage *storage.Storage
	queue   chan ActionItem
	wg      sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

func NewOperatorDelegator(s *storage.Storage, queueSize int) *OperatorDelegator {
	if queueSize < 1 {
		queueSize = 1
	}
	return &OperatorDelegator{
		storage: s,
		queue:   make(chan ActionItem, queueSize),
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.storage, d.queue)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

// Stop drains the queue and waits for the operator to finish. Process
// returns ErrStopped afterwards.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Process queues action against household's ledger and waits for it to be
// committed or rejected. If ctx ends while the action is still queued it is
// dropped and ctx.Err() is returned. Once the operator has picked it up,
// Process waits for the real outcome, so a nil error always means the
// action was committed.
func (d *OperatorDelegator) Process(ctx context.Context, household uuid.UUID, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:       ctx,
		household: household,
		action:    action,
		response:  respCh,
		state:     new(atomic.Int32),
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		if item.state.CompareAndSwap(itemQueued, itemAbandoned) {
			return ctx.Err()
		}
		resp := <-respCh
		return resp.err
	}
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
