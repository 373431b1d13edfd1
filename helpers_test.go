package securestore

import (
	"context"
	"errors"
	"sync"

	"github.com/vaultsandbox/securestore/kv"
)

var errBackendDown = errors.New("backend down")

// flakyStore wraps a kv.Memory and fails selected operations.
type flakyStore struct {
	*kv.Memory

	mu       sync.Mutex
	failGet  bool
	failSet  bool
	failRm   bool
	failWipe bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Memory: kv.NewMemory()}
}

func (f *flakyStore) fail(get, set, rm, wipe bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failRm, f.failWipe = get, set, rm, wipe
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errBackendDown
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errBackendDown
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failRm
	f.mu.Unlock()
	if fail {
		return errBackendDown
	}
	return f.Memory.Remove(ctx, key)
}

func (f *flakyStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	fail := f.failWipe
	f.mu.Unlock()
	if fail {
		return errBackendDown
	}
	return f.Memory.Clear(ctx)
}

// recordingSink collects reported errors.
type recordingSink struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingSink) ReportDecryptionFailure(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingSink) reports() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}
