package crypto

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-512.
//
// Parameters:
//   - secret: the input key material
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// Fingerprint returns a short hex identifier for key that is safe to log.
// It is one-way: the key cannot be recovered from it.
func Fingerprint(key []byte) string {
	fp, err := DeriveKey(key, nil, []byte(FingerprintContext), FingerprintSize)
	if err != nil {
		// HKDF only fails when asked for more than 255*64 bytes.
		return ""
	}
	return hex.EncodeToString(fp)
}
