// Package cart implements the storefront cart: an ordered list of line items persisted as one
// JSON blob under storage.CartKey.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/storage"
)

var ErrCartEmpty = errors.New("cart is empty")

// Confirmer gates destructive actions behind an explicit user decision.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm is used for system-initiated clears such as an expired session.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

const clearPrompt = "Are you sure you want to clear your cart?"

type Options struct {
	CheckoutDelay time.Duration
	Now           func() time.Time
	Logger        *zap.Logger
}

type Store struct {
	mu       sync.Mutex
	items    []models.CartLineItem
	store    storage.Store
	catalog  *catalog.Catalog
	notifier notify.Notifier
	delay    time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// New rehydrates the cart from storage. A missing or unreadable blob yields an empty cart.
func New(ctx context.Context, store storage.Store, cat *catalog.Catalog, notifier notify.Notifier, opts Options) (*Store, error) {
	s := &Store{
		store:    store,
		catalog:  cat,
		notifier: notifier,
		delay:    opts.CheckoutDelay,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	if s.notifier == nil {
		s.notifier = notify.Nop
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	raw, err := store.Get(ctx, storage.CartKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if err := json.Unmarshal(raw, &s.items); err != nil {
		s.logger.Warn("Discarding unreadable cart", zap.Error(err))
		s.items = nil
		return s, nil
	}
	s.items = sanitize(s.items)
	return s, nil
}

// sanitize drops rows that would break the one-line-per-product, positive-quantity invariant.
func sanitize(items []models.CartLineItem) []models.CartLineItem {
	seen := make(map[int]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if it.Quantity < 1 || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		out = append(out, it)
	}
	return out
}

func (s *Store) indexOf(productID int) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product in the cart. Unknown products are ignored.
func (s *Store) Add(ctx context.Context, productID int) (bool, error) {
	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	if i := s.indexOf(productID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, models.CartLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  1,
			AddedAt:   s.now().UTC(),
		})
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Added to cart!",
		Message:  fmt.Sprintf("%s has been added to your cart.", product.Name),
	})
	return true, nil
}

func (s *Store) Remove(ctx context.Context, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID)
}

func (s *Store) removeLocked(ctx context.Context, productID int) (bool, error) {
	i := s.indexOf(productID)
	if i < 0 {
		return false, nil
	}
	removed := s.items[i]
	if err := s.commit(ctx, slices.Delete(slices.Clone(s.items), i, i+1)); err != nil {
		return false, err
	}
	s.notifier.Notify(notify.Notification{
		Severity: notify.Error,
		Title:    "Removed from cart",
		Message:  fmt.Sprintf("%s has been removed from your cart.", removed.Name),
	})
	return true, nil
}

// SetQuantity sets an existing line's quantity; n <= 0 removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID, n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return s.removeLocked(ctx, productID)
	}
	i := s.indexOf(productID)
	if i < 0 {
		return false, nil
	}
	next := slices.Clone(s.items)
	next[i].Quantity = n
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the cart once confirm agrees. An empty cart is left untouched.
func (s *Store) Clear(ctx context.Context, confirm Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return false, nil
	}
	if confirm == nil || !confirm.Confirm(clearPrompt) {
		return false, nil
	}
	if err := s.commit(ctx, nil); err != nil {
		return false, err
	}
	s.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Cart cleared",
		Message:  "All items have been removed from your cart.",
	})
	return true, nil
}

// Checkout simulates order placement: after the fixed delay the cart is always cleared.
// Cancelling ctx during the delay leaves the cart intact.
func (s *Store) Checkout(ctx context.Context) (*models.Receipt, error) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		s.notifier.Notify(notify.Notification{
			Severity: notify.Error,
			Title:    "Cart is empty",
			Message:  "Add some products before checkout.",
		})
		return nil, ErrCartEmpty
	}
	receipt := &models.Receipt{
		ItemCount: s.countLocked(),
		Total:     s.totalLocked(),
		Items:     append([]models.CartLineItem(nil), s.items...),
	}
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Checkout initiated!",
		Message:  fmt.Sprintf("Processing %d items worth %s", receipt.ItemCount, models.FormatRupees(receipt.Total)),
	})

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	err := s.commit(ctx, nil)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	receipt.PlacedAt = s.now().UTC()
	s.logger.Info("Order placed",
		zap.Int("items", receipt.ItemCount),
		zap.Int64("total", receipt.Total))
	s.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Order placed!",
		Message:  "Your futuristic products are on the way!",
	})
	return receipt, nil
}

func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

func (s *Store) totalLocked() int64 {
	var total int64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *Store) countLocked() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLineItem(nil), s.items...)
}

func (s *Store) Summary() models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CartSummary{
		Items:     append([]models.CartLineItem{}, s.items...),
		ItemCount: s.countLocked(),
		Total:     s.totalLocked(),
	}
}

// commit persists items and only then makes them the in-memory cart.
func (s *Store) commit(ctx context.Context, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, storage.CartKey, raw); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	if len(items) == 0 {
		items = nil
	}
	s.items = items
	return nil
}
