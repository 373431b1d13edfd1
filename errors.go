package securestore

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrStorageUnavailable is returned when the underlying key-value store
	// cannot be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrKeyMaterialCorrupt is returned when the persisted encryption key
	// cannot be parsed. Entries written under it cannot be recovered.
	ErrKeyMaterialCorrupt = errors.New("key material corrupt")

	// ErrDecryptionFailed is returned by Open and Lookup when a stored value
	// cannot be decrypted: malformed encoding, truncation, a wrong key or
	// tampering.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrNotFound is returned by Lookup when no entry exists for a key.
	ErrNotFound = errors.New("entry not found")

	// ErrNilStore is returned when no underlying store is supplied.
	ErrNilStore = errors.New("underlying store is required")

	// ErrInvalidNamespace is returned for an empty namespace.
	ErrInvalidNamespace = errors.New("namespace must not be empty")
)

// SecureStoreError is implemented by all typed errors of this package.
type SecureStoreError interface {
	error
	SecureStoreError() // marker method
}

// StorageError reports a failure of the underlying key-value store.
type StorageError struct {
	Op  string // "get", "set", "remove", "clear"
	Key string // empty for clear
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// SecureStoreError implements the SecureStoreError interface.
func (e *StorageError) SecureStoreError() {}

// KeyMaterialError reports persisted key bytes that cannot be imported.
type KeyMaterialError struct {
	Namespace string
	Err       error
}

func (e *KeyMaterialError) Error() string {
	return fmt.Sprintf("key material for namespace %q is corrupt: %v", e.Namespace, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyMaterialError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyMaterialError) Is(target error) bool {
	return target == ErrKeyMaterialCorrupt
}

// SecureStoreError implements the SecureStoreError interface.
func (e *KeyMaterialError) SecureStoreError() {}

// Decryption failure stages.
const (
	StageDecode = "decode" // blob is not valid base64
	StageFrame  = "frame"  // too short to hold a nonce and a tag
	StageAEAD   = "aead"   // authentication failed
)

// DecryptionError represents a stored value that could not be decrypted.
type DecryptionError struct {
	Stage          string
	KeyFingerprint string // fingerprint of the key that was tried, if any
	Err            error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// SecureStoreError implements the SecureStoreError interface.
func (e *DecryptionError) SecureStoreError() {}

// storageError wraps a kv.Store failure. Any error from the store means it
// is unusable for the requested operation.
func storageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
