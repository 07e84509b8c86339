// Package storage models the browser's local key-value storage: whole values under fixed keys,
// read once at initialisation and overwritten on every mutation.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Fixed keys owned by the storefront controllers.
const (
	CartKey        = "neoCommerceCart"
	UserKey        = "neoCommerceUser"
	SignupDraftKey = "neoCommerceSignupDraft"
)

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type namespaced struct {
	prefix string
	next   Store
}

// Namespace scopes every key to one client, the way a browser profile scopes localStorage.
func Namespace(store Store, clientID string) Store {
	return &namespaced{prefix: fmt.Sprintf("client:%s:", clientID), next: store}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.next.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.next.Delete(ctx, n.prefix+key)
}
