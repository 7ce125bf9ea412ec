package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetAbsentKey(t *testing.T) {
	store := NewMemory()

	_, err := store.Get(context.Background(), NewKey("registry.user", "nobody", "X"))
	assert.ErrorIs(t, err, ErrKeyAbsent)
}

func TestMemoryPutGetRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	key := NewKey("registry.user", "Alice", "AADHAAR1")

	require.NoError(t, store.Put(ctx, key, []byte(`{"name":"Alice"}`)))

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"Alice"}`), value)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	key := NewKey("registry.property", "P1")

	require.NoError(t, store.Put(ctx, key, []byte("original")))

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	value[0] = 'X'

	again, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryApplyCommitsAllWrites(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	writes := []Write{
		{Key: NewKey("registry.user", "Alice", "A1"), Value: []byte("alice")},
		{Key: NewKey("registry.user", "Bob", "A2"), Value: []byte("bob")},
		{Key: NewKey("registry.property", "P1"), Value: []byte("p1")},
	}
	require.NoError(t, store.Apply(ctx, writes))

	for _, w := range writes {
		value, err := store.Get(ctx, w.Key)
		require.NoError(t, err)
		assert.Equal(t, w.Value, value)
	}
}
