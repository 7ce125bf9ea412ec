package ledger

import (
	"context"
	"errors"
)

// ErrKeyAbsent reports that no value is stored under the requested key.
// Backends must return it for absence and a distinct error for transport
// or storage failures; callers rely on the difference.
var ErrKeyAbsent = errors.New("ledger: key absent")

// Write pairs a key with the value to store under it.
type Write struct {
	Key   Key
	Value []byte
}

// Ledger is the key/value store contract the registry programs against.
// Apply commits all writes as one atomic unit: observers never see a
// subset of a batch.
type Ledger interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Put(ctx context.Context, key Key, value []byte) error
	Apply(ctx context.Context, writes []Write) error
}
