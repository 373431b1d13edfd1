package securestore

import (
	"context"

	"github.com/vaultsandbox/securestore/kv"
)

// SecureStore is a key-value facade that encrypts values on the way into
// the underlying store and decrypts them on the way out.
//
// Entry keys are written verbatim; only the encryption key entry carries the
// namespace prefix. Operations are independent: there is no atomicity
// across keys.
type SecureStore struct {
	store     kv.Store
	namespace string
	keys      *KeyProvider
	cipher    *CipherEngine
}

// New creates a SecureStore on top of store.
func New(store kv.Store, opts ...Option) (*SecureStore, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.namespace == "" {
		return nil, ErrInvalidNamespace
	}

	keys := NewKeyProvider(store, cfg.namespace)
	return &SecureStore{
		store:     store,
		namespace: cfg.namespace,
		keys:      keys,
		cipher:    NewCipherEngine(keys, cfg.sink()),
	}, nil
}

// Namespace returns the namespace fixed at construction.
func (s *SecureStore) Namespace() string {
	return s.namespace
}

// Keys returns the key provider.
func (s *SecureStore) Keys() *KeyProvider {
	return s.keys
}

// Cipher returns the cipher engine.
func (s *SecureStore) Cipher() *CipherEngine {
	return s.cipher
}

// SetItem encrypts value and stores the blob under key, replacing any
// previous entry.
func (s *SecureStore) SetItem(ctx context.Context, key, value string) error {
	blob, err := s.cipher.Encrypt(ctx, value)
	if err != nil {
		return err
	}
	return storageError("set", key, s.store.Set(ctx, key, blob))
}

// GetItem returns the decrypted value for key. It returns "" both when no
// entry exists and when the entry cannot be decrypted; use Lookup to tell
// them apart.
func (s *SecureStore) GetItem(ctx context.Context, key string) (string, error) {
	blob, ok, err := s.read(ctx, key)
	if err != nil || !ok {
		return "", err
	}
	return s.cipher.Decrypt(ctx, blob)
}

// Lookup is GetItem with distinguishable failures: ErrNotFound for an
// absent entry and a *DecryptionError for an unreadable one. Decryption
// failures are still reported to the diagnostic sink.
func (s *SecureStore) Lookup(ctx context.Context, key string) (string, error) {
	blob, ok, err := s.read(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}

	plaintext, err := s.cipher.Open(ctx, blob)
	s.cipher.report(ctx, err)
	return plaintext, err
}

// RemoveItem deletes the entry for key.
func (s *SecureStore) RemoveItem(ctx context.Context, key string) error {
	return storageError("remove", key, s.store.Remove(ctx, key))
}

// Clear wipes the underlying store, including the key entry of this and
// every other namespace sharing it. Previously stored blobs that survive
// elsewhere can never be decrypted again; the next SetItem creates a new key.
func (s *SecureStore) Clear(ctx context.Context) error {
	return storageError("clear", "", s.store.Clear(ctx))
}

// read fetches the raw blob; an empty stored value counts as absent.
func (s *SecureStore) read(ctx context.Context, key string) (string, bool, error) {
	blob, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", false, storageError("get", key, err)
	}
	if !ok || blob == "" {
		return "", false, nil
	}
	return blob, true, nil
}
