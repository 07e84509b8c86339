package cart

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/storage"
)

// countingStore records writes so tests can assert that an operation did not persist.
type countingStore struct {
	storage.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

// flakyStore fails every write once fail is set.
type flakyStore struct {
	storage.Store
	fail bool
}

var errWriteFailed = errors.New("write failed")

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errWriteFailed
	}
	return f.Store.Set(ctx, key, value)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.FromProducts([]models.ProductRecord{
		{ID: 1, Name: "Lamp", Category: models.CategoryTech, Price: 100},
		{ID: 2, Name: "Boots", Category: models.CategoryFootwear, Price: 50},
		{ID: 3, Name: "Ring", Category: models.CategoryAccessories, Price: 7},
	})
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T, backing storage.Store, n notify.Notifier) *Store {
	t.Helper()
	s, err := New(context.Background(), backing, testCatalog(t), n, Options{})
	require.NoError(t, err)
	return s
}

func TestAddSameProductTwice(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, storage.NewMemoryStore(), nil)

	_, err := s.Add(ctx, 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, 1)
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, int64(200), s.Total())
}

func TestAddUnknownProductIsNoop(t *testing.T) {
	backing := &countingStore{Store: storage.NewMemoryStore()}
	c := notify.NewCollector()
	s := newStore(t, backing, c)

	added, err := s.Add(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Zero(t, backing.sets)
	assert.Empty(t, c.Drain())
}

func TestAddNotifiesAndPersists(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	c := notify.NewCollector()
	s := newStore(t, backing, c)

	_, err := s.Add(ctx, 2)
	require.NoError(t, err)

	got := c.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Success, got[0].Severity)
	assert.Equal(t, "Boots has been added to your cart.", got[0].Message)

	raw, err := backing.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"quantity":1`)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	a := newStore(t, storage.NewMemoryStore(), nil)
	b := newStore(t, storage.NewMemoryStore(), nil)
	for _, s := range []*Store{a, b} {
		_, _ = s.Add(ctx, 1)
		_, _ = s.Add(ctx, 2)
	}

	_, err := a.SetQuantity(ctx, 1, 0)
	require.NoError(t, err)
	_, err = b.Remove(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, b.Summary().ItemCount, a.Summary().ItemCount)
	assert.Equal(t, b.Total(), a.Total())
	assert.Len(t, a.Items(), 1)
	assert.Equal(t, 2, a.Items()[0].ProductID)
}

func TestSetQuantityMissingLineIsNoop(t *testing.T) {
	backing := &countingStore{Store: storage.NewMemoryStore()}
	s := newStore(t, backing, nil)

	changed, err := s.SetQuantity(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, s.Items())
	assert.Zero(t, backing.sets)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	backing := &countingStore{Store: storage.NewMemoryStore()}
	s := newStore(t, backing, nil)

	removed, err := s.Remove(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Zero(t, backing.sets)
}

func TestCountAndTotalInvariant(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, storage.NewMemoryStore(), nil)
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		id := r.IntN(4) + 1 // includes one unknown id
		switch r.IntN(3) {
		case 0:
			_, err := s.Add(ctx, id)
			require.NoError(t, err)
		case 1:
			_, err := s.Remove(ctx, id)
			require.NoError(t, err)
		case 2:
			_, err := s.SetQuantity(ctx, id, r.IntN(6)-1)
			require.NoError(t, err)
		}

		var count int
		var total int64
		seen := map[int]bool{}
		for _, it := range s.Items() {
			require.GreaterOrEqual(t, it.Quantity, 1)
			require.False(t, seen[it.ProductID], "duplicate line for %d", it.ProductID)
			seen[it.ProductID] = true
			count += it.Quantity
			total += it.Price * int64(it.Quantity)
		}
		require.Equal(t, count, s.Count())
		require.Equal(t, total, s.Total())
	}
}

func TestRehydrateFromStorage(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	first := newStore(t, backing, nil)
	_, _ = first.Add(ctx, 1)
	_, _ = first.Add(ctx, 3)
	_, _ = first.SetQuantity(ctx, 3, 4)

	second := newStore(t, backing, nil)
	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, int64(128), second.Total())
}

func TestCorruptBlobYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, storage.CartKey, []byte(`{"not":"a list"`)))

	s := newStore(t, backing, nil)
	assert.Empty(t, s.Items())
}

func TestClearRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, storage.NewMemoryStore(), nil)
	_, _ = s.Add(ctx, 1)

	var prompt string
	cleared, err := s.Clear(ctx, ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	}))
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, "Are you sure you want to clear your cart?", prompt)
	assert.Equal(t, 1, s.Count())

	cleared, err = s.Clear(ctx, AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Zero(t, s.Count())
}

func TestClearEmptyCartSkipsPrompt(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore(), nil)
	asked := false

	cleared, err := s.Clear(context.Background(), ConfirmFunc(func(string) bool {
		asked = true
		return true
	}))
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.False(t, asked)
}

func TestCheckoutEmptyCart(t *testing.T) {
	backing := &countingStore{Store: storage.NewMemoryStore()}
	c := notify.NewCollector()
	s := newStore(t, backing, c)

	receipt, err := s.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, receipt)
	assert.Empty(t, s.Items())
	assert.Zero(t, backing.sets)

	got := c.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "Cart is empty", got[0].Title)
}

func TestCheckoutClearsCart(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	c := notify.NewCollector()
	s, err := New(ctx, backing, testCatalog(t), c, Options{CheckoutDelay: time.Millisecond})
	require.NoError(t, err)
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)
	_, _ = s.Add(ctx, 2)
	c.Drain()

	receipt, err := s.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.ItemCount)
	assert.Equal(t, int64(200), receipt.Total)
	assert.Len(t, receipt.Items, 2)
	assert.False(t, receipt.PlacedAt.IsZero())
	assert.Empty(t, s.Items())

	raw, err := backing.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	titles := []string{}
	for _, n := range c.Drain() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Checkout initiated!", "Order placed!"}, titles)
}

func TestCheckoutCancelledKeepsCart(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, storage.NewMemoryStore(), testCatalog(t), nil, Options{CheckoutDelay: time.Hour})
	require.NoError(t, err)
	_, _ = s.Add(ctx, 1)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Checkout(cctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Count())
}

func TestFailedWriteLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: storage.NewMemoryStore()}
	c := notify.NewCollector()
	s := newStore(t, backing, c)
	_, err := s.Add(ctx, 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, 2)
	require.NoError(t, err)
	c.Drain()
	before := s.Items()

	backing.fail = true
	steps := map[string]func() error{
		"add":          func() error { _, err := s.Add(ctx, 3); return err },
		"add existing": func() error { _, err := s.Add(ctx, 1); return err },
		"remove":       func() error { _, err := s.Remove(ctx, 1); return err },
		"set quantity": func() error { _, err := s.SetQuantity(ctx, 2, 5); return err },
		"set zero":     func() error { _, err := s.SetQuantity(ctx, 2, 0); return err },
		"clear":        func() error { _, err := s.Clear(ctx, AlwaysConfirm); return err },
	}
	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, step(), errWriteFailed)
			assert.Equal(t, before, s.Items())
		})
	}
	assert.Empty(t, c.Drain())

	backing.fail = false
	reloaded := newStore(t, backing.Store, nil)
	assert.Equal(t, before, reloaded.Items())
}
