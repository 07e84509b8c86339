package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, CartKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, CartKey, []byte(`[]`)))
	v, err := m.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	require.NoError(t, m.Delete(ctx, CartKey))
	_, err = m.Get(ctx, CartKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNamespaceIsolatesClients(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	a := Namespace(m, "a")
	b := Namespace(m, "b")

	require.NoError(t, a.Set(ctx, UserKey, []byte("alice")))

	_, err := b.Get(ctx, UserKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ElementsMatch(t, []string{"client:a:" + UserKey}, m.Keys())
}
