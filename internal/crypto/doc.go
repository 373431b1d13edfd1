// Package crypto provides the primitives behind encrypted local storage.
//
// # Algorithm Suite
//
//   - AES-256-GCM: authenticated encryption of stored values. Keys are 32
//     bytes, nonces 12 bytes, tags 16 bytes. These sizes are fixed.
//
//   - HKDF-SHA-512 (RFC 5869): used only to derive short, one-way key
//     fingerprints for diagnostics.
//
// # Framing
//
// A sealed value is nonce (12 bytes) || ciphertext || tag (16 bytes).
// [ToBase64] turns it into the text stored in the key-value store; it uses
// the standard alphabet with padding, the same output browsers produce with
// btoa.
//
// AES-GCM nonces MUST be unique for each encryption with the same key. [Seal]
// draws a fresh random nonce on every call; prefer it over [EncryptAES].
//
// # Key Material
//
// Keys are persisted as comma-separated decimal byte values ("12,0,255,...").
// [EncodeKey] and [DecodeKey] convert between that form and raw bytes.
// [DecodeKey] is strict: exactly 32 elements, each in 0..255.
package crypto
