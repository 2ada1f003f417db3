package operator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/operator/actions"
	"github.com/carson-networks/household-server/internal/storage"
)

// commitTimeout bounds a commit once it has started. Commits do not observe
// the caller's cancellation.
const commitTimeout = 10 * time.Second

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// Abandoned by the caller while queued; nothing may be written for it.
	if !item.state.CompareAndSwap(itemQueued, itemClaimed) {
		return
	}
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx, item.household)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: err}
		return
	}

	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(item.ctx), commitTimeout)
	defer cancel()
	if err = writer.Commit(commitCtx); err != nil {
		item.response <- ActionItemResponse{err: fmt.Errorf("household %s: %w", item.household, err)}
		return
	}

	item.response <- ActionItemResponse{}
}

const (
	itemQueued int32 = iota
	itemClaimed
	itemAbandoned
)

type ActionItem struct {
	ctx       context.Context
	household uuid.UUID
	action    actions.IAction
	response  chan ActionItemResponse

	// state moves from itemQueued to exactly one of itemClaimed (by the
	// operator) or itemAbandoned (by Process when its ctx ends first).
	state *atomic.Int32
}

type ActionItemResponse struct {
	err error
}
