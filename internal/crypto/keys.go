package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// randReader is the random source used for keys and nonces.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// GenerateKey returns a new random AES-256 key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(reader(), key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// EncodeKey renders raw key bytes as comma-separated decimal values,
// e.g. "12,0,255". This is the persisted form of a key.
func EncodeKey(key []byte) string {
	var b strings.Builder
	b.Grow(len(key) * 4)
	for i, v := range key {
		if i > 0 {
			b.WriteString(keyByteSeparator)
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// DecodeKey parses the output of EncodeKey. Every element must be a decimal
// integer in 0..255 and the result must be exactly AESKeySize bytes long.
func DecodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKeyEncoding)
	}

	parts := strings.Split(s, keyByteSeparator)
	if len(parts) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(parts), AESKeySize)
	}

	key := make([]byte, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d %q", ErrInvalidKeyEncoding, i, p)
		}
		key[i] = byte(v)
	}
	return key, nil
}

// SetRandReaderForTesting replaces the source of keys and nonces until the
// returned func is called.
func SetRandReaderForTesting(r io.Reader) (restore func()) {
	prev := randReader
	randReader = r
	return func() { randReader = prev }
}
