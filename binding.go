package securestore

import (
	"context"

	"github.com/vaultsandbox/securestore/kv"
)

// Bindings exposes a SecureStore as plain functions, for UI layers that
// take callbacks rather than an object.
type Bindings struct {
	SetSecureItem      func(ctx context.Context, key, value string) error
	GetSecureItem      func(ctx context.Context, key string) (string, error)
	RemoveSecureItem   func(ctx context.Context, key string) error
	ClearSecureStorage func(ctx context.Context) error
}

// Bindings returns s's operations bound to s.
func (s *SecureStore) Bindings() Bindings {
	return Bindings{
		SetSecureItem:      s.SetItem,
		GetSecureItem:      s.GetItem,
		RemoveSecureItem:   s.RemoveItem,
		ClearSecureStorage: s.Clear,
	}
}

// UseSecureStorage creates a SecureStore and returns its bindings.
func UseSecureStorage(store kv.Store, opts ...Option) (Bindings, error) {
	s, err := New(store, opts...)
	if err != nil {
		return Bindings{}, err
	}
	return s.Bindings(), nil
}
