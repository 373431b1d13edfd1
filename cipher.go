package securestore

import (
	"context"
	"errors"

	"github.com/vaultsandbox/securestore/internal/crypto"
)

// CipherEngine encrypts strings into self-contained text blobs and back,
// using the key supplied by a KeyProvider.
//
// A blob is standard base64 of nonce (12 bytes) || ciphertext || tag (16 bytes).
type CipherEngine struct {
	keys *KeyProvider
	sink DiagnosticSink
}

// NewCipherEngine returns an engine using keys. A nil sink discards
// decryption failure reports.
func NewCipherEngine(keys *KeyProvider, sink DiagnosticSink) *CipherEngine {
	if sink == nil {
		sink = NopSink{}
	}
	return &CipherEngine{keys: keys, sink: sink}
}

// Encrypt seals plaintext under the namespace key with a fresh random nonce.
// The key is created on first use.
func (e *CipherEngine) Encrypt(ctx context.Context, plaintext string) (string, error) {
	key, err := e.keys.GetOrCreateKey(ctx)
	if err != nil {
		return "", err
	}

	sealed, err := crypto.Seal(key.raw, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return crypto.ToBase64(sealed), nil
}

// Open decrypts blob. Unreadable blobs yield a *DecryptionError; failures to
// obtain the key (ErrStorageUnavailable, ErrKeyMaterialCorrupt) are returned
// unchanged.
func (e *CipherEngine) Open(ctx context.Context, blob string) (string, error) {
	sealed, err := crypto.FromBase64(blob)
	if err != nil {
		return "", &DecryptionError{Stage: StageDecode, Err: err}
	}
	if len(sealed) < crypto.AESNonceSize+crypto.AESTagSize {
		return "", &DecryptionError{Stage: StageFrame, Err: crypto.ErrCiphertextTooShort}
	}

	key, err := e.keys.GetOrCreateKey(ctx)
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.DecryptAES(key.raw, sealed)
	if err != nil {
		return "", &DecryptionError{Stage: StageAEAD, KeyFingerprint: key.Fingerprint(), Err: err}
	}
	return string(plaintext), nil
}

// Decrypt is Open with unreadable blobs mapped to "". The failure is sent to
// the diagnostic sink instead of the caller, so an empty result means either
// an empty plaintext or an unreadable value.
func (e *CipherEngine) Decrypt(ctx context.Context, blob string) (string, error) {
	plaintext, err := e.Open(ctx, blob)
	if e.report(ctx, err) {
		return "", nil
	}
	return plaintext, err
}

// report sends err to the sink if it is a decryption failure and says
// whether it did.
func (e *CipherEngine) report(ctx context.Context, err error) bool {
	var decErr *DecryptionError
	if !errors.As(err, &decErr) {
		return false
	}
	e.sink.ReportDecryptionFailure(ctx, err)
	return true
}
