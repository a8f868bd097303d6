// Package ledger gives state-mutating calls transaction semantics.
// Calls run one at a time in a single global order, and each one either commits
// fully or leaves every registered store exactly as it found it.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/log"
)

// Revertible is a store that can snapshot its state.
// Checkpoint returns a function that restores the store to the state at the time of the call.
type Revertible interface {
	Checkpoint() func()
}

// TxFunc is the body of a transaction. It receives the height the transaction commits at.
type TxFunc = domain.TxFunc

// Ledger is the global sequencer.
type Ledger struct {
	mu     sync.RWMutex
	height uint64
	stores []Revertible
	logger log.Logger
}

var _ domain.Sequencer = &Ledger{}

// New returns a Ledger at height 0 that rolls back the given stores when a transaction fails.
func New(logger log.Logger, stores ...Revertible) *Ledger {
	return &Ledger{
		stores: stores,
		logger: logger,
	}
}

// Register adds stores to be checkpointed by every subsequent transaction.
func (l *Ledger) Register(stores ...Revertible) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stores = append(l.stores, stores...)
}

// Height returns the height of the last committed transaction.
func (l *Ledger) Height() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.height
}

// Exec runs fn exclusively. If fn returns an error or panics, all registered stores are rolled back
// and the height is unchanged. Otherwise the height is incremented.
func (l *Ledger) Exec(ctx context.Context, name string, fn TxFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	restores := make([]func(), 0, len(l.stores))
	for _, store := range l.stores {
		restores = append(restores, store.Checkpoint())
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transaction %s panicked: %v", name, r)
		}

		if err != nil {
			for i := len(restores) - 1; i >= 0; i-- {
				restores[i]()
			}
			domain.LedgerTxRevertedCounter.WithLabelValues(name).Inc()
			l.logger.Debug("transaction reverted", zap.String("tx", name), zap.Error(err))
			return
		}

		l.height++
		domain.LedgerHeightGauge.Set(float64(l.height))
	}()

	return fn(ctx, l.height+1)
}

// Query runs fn with shared access. fn must not mutate state.
func (l *Ledger) Query(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return fn(ctx)
}
