package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when authenticated decryption fails.
	// A wrong key, a tampered ciphertext and a bad tag are indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrCiphertextTooShort is returned when a sealed message cannot hold
	// a nonce and an authentication tag.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrInvalidEncoding is returned when a blob is not valid base64.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidKeyEncoding is returned when persisted key material is not
	// a list of decimal byte values.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")
)
