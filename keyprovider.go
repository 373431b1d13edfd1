package securestore

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/vaultsandbox/securestore/internal/crypto"
	"github.com/vaultsandbox/securestore/kv"
)

// SymmetricKey is an opaque AES-256-GCM key.
type SymmetricKey struct {
	raw []byte
}

// Equal reports whether k and other hold the same key material.
func (k SymmetricKey) Equal(other SymmetricKey) bool {
	return len(k.raw) == len(other.raw) && subtle.ConstantTimeCompare(k.raw, other.raw) == 1
}

// Fingerprint returns a short one-way identifier of the key, safe to log.
func (k SymmetricKey) Fingerprint() string {
	if len(k.raw) == 0 {
		return ""
	}
	return crypto.Fingerprint(k.raw)
}

// IsZero reports whether k holds no key material.
func (k SymmetricKey) IsZero() bool {
	return len(k.raw) == 0
}

// KeyProvider obtains the namespace's encryption key from the store,
// creating and persisting one on first use.
//
// The key is never cached: each call reads the store, so a cleared store is
// noticed immediately. Calls on one KeyProvider are serialized, but two
// providers sharing a namespace are not coordinated and may both create a
// key on first use; the last write wins.
type KeyProvider struct {
	store     kv.Store
	namespace string
	keyName   string

	mu sync.Mutex
}

// NewKeyProvider returns a provider for namespace backed by store.
func NewKeyProvider(store kv.Store, namespace string) *KeyProvider {
	return &KeyProvider{
		store:     store,
		namespace: namespace,
		keyName:   namespace + "_" + keyEntrySuffix,
	}
}

// Namespace returns the namespace this provider manages.
func (p *KeyProvider) Namespace() string {
	return p.namespace
}

// KeyName returns the store entry that holds the key material.
func (p *KeyProvider) KeyName() string {
	return p.keyName
}

// GetOrCreateKey returns the persisted key, generating and storing a new one
// if the entry is absent or empty.
func (p *KeyProvider) GetOrCreateKey(ctx context.Context) (SymmetricKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, ok, err := p.store.Get(ctx, p.keyName)
	if err != nil {
		return SymmetricKey{}, storageError("get", p.keyName, err)
	}

	if ok && stored != "" {
		raw, err := crypto.DecodeKey(stored)
		if err != nil {
			return SymmetricKey{}, &KeyMaterialError{Namespace: p.namespace, Err: err}
		}
		return SymmetricKey{raw: raw}, nil
	}

	raw, err := crypto.GenerateKey()
	if err != nil {
		return SymmetricKey{}, err
	}
	if err := p.store.Set(ctx, p.keyName, crypto.EncodeKey(raw)); err != nil {
		return SymmetricKey{}, storageError("set", p.keyName, err)
	}
	return SymmetricKey{raw: raw}, nil
}
