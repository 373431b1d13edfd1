package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// FingerprintContext is the HKDF info string used when deriving key
	// fingerprints for diagnostics.
	FingerprintContext = "securestore:fingerprint:v1"
	// FingerprintSize is the number of derived bytes in a key fingerprint.
	FingerprintSize = 8

	// keyByteSeparator separates the decimal byte values of a persisted key.
	keyByteSeparator = ","
)

// Algorithm is the canonical name of the only supported cipher.
const Algorithm = "AES-256-GCM"
