// Package securestore provides a key-value store that transparently encrypts
// values with AES-256-GCM before they reach an underlying [kv.Store].
//
// The encryption key is created lazily on first use and persisted in the
// same store under "<namespace>_encryption_key", as comma-separated decimal
// bytes. The key therefore protects data at rest against casual inspection
// only; anyone who can read the store can read the key.
//
// Basic usage:
//
//	backend, err := kv.OpenFile("/var/lib/app/store.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, err := securestore.New(backend, securestore.WithNamespace("app"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := store.SetItem(ctx, "token", "abc123"); err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := store.GetItem(ctx, "token") // "abc123"
//
// # Failure Model
//
// Reads never fail because a stored value is unreadable. [SecureStore.GetItem]
// returns "" for a missing entry and for an entry that cannot be decrypted,
// and reports the latter to the configured [DiagnosticSink]. Use
// [SecureStore.Lookup] to distinguish the two cases.
//
// Failures of the underlying store ([ErrStorageUnavailable]) and corrupt key
// material ([ErrKeyMaterialCorrupt]) are always returned.
//
// # Clearing
//
// [SecureStore.Clear] clears the entire underlying store, including the key
// entry. Any ciphertext that survives elsewhere becomes permanently
// unreadable, and the next write creates a fresh key.
package securestore
