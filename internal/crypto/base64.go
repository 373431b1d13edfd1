package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ToBase64 encodes bytes to standard base64 with padding.
// This is the alphabet browsers produce with btoa, so blobs written by
// either side stay readable by the other.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64. Missing padding and surrounding
// whitespace are tolerated.
func FromBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// Try without padding
	data, rawErr := base64.RawStdEncoding.DecodeString(s)
	if rawErr == nil {
		return data, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
}
