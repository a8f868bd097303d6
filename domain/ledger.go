package domain

import "context"

// TxFunc is the body of a transaction. It receives the height the transaction commits at.
type TxFunc func(ctx context.Context, height uint64) error

// Sequencer runs state-mutating calls one at a time, each committing fully or not at all.
type Sequencer interface {
	// Exec runs fn exclusively and rolls back every registered store if it fails.
	Exec(ctx context.Context, name string, fn TxFunc) error
	// Query runs fn with shared access. fn must not mutate state nor call Exec.
	Query(ctx context.Context, fn func(ctx context.Context) error) error
	// Height returns the height of the last committed transaction.
	Height() uint64
}
