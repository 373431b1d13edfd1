package securestore

import (
	"context"
	"errors"
	"testing"

	"github.com/vaultsandbox/securestore/kv"
)

func TestUseSecureStorage(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()

	b, err := UseSecureStorage(backend, WithNamespace("ui"), WithDiagnostics(NopSink{}))
	if err != nil {
		t.Fatalf("UseSecureStorage() error = %v", err)
	}

	if err := b.SetSecureItem(ctx, "theme", "dark"); err != nil {
		t.Fatal(err)
	}
	got, err := b.GetSecureItem(ctx, "theme")
	if err != nil || got != "dark" {
		t.Fatalf("GetSecureItem() = %q, %v", got, err)
	}
	if _, ok, _ := backend.Get(ctx, "ui_encryption_key"); !ok {
		t.Error("bindings did not use the configured namespace")
	}

	if err := b.RemoveSecureItem(ctx, "theme"); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.GetSecureItem(ctx, "theme"); got != "" {
		t.Errorf("GetSecureItem() after remove = %q", got)
	}

	b.SetSecureItem(ctx, "x", "y")
	if err := b.ClearSecureStorage(ctx); err != nil {
		t.Fatal(err)
	}
	if backend.Len() != 0 {
		t.Errorf("backend has %d entries after ClearSecureStorage", backend.Len())
	}
}

func TestUseSecureStorage_Error(t *testing.T) {
	if _, err := UseSecureStorage(nil); !errors.Is(err, ErrNilStore) {
		t.Errorf("UseSecureStorage(nil) error = %v, want ErrNilStore", err)
	}
}

func TestBindings_SharesInstance(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())
	b := s.Bindings()

	if err := s.SetItem(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.GetSecureItem(ctx, "k"); got != "v" {
		t.Errorf("bound GetSecureItem() = %q, want v", got)
	}
}
