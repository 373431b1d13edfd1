package securestore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vaultsandbox/securestore/internal/crypto"
	"github.com/vaultsandbox/securestore/kv"
)

func newTestEngine(t *testing.T, store kv.Store, namespace string) (*CipherEngine, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return NewCipherEngine(NewKeyProvider(store, namespace), sink), sink
}

func TestCipherEngine_RoundTrip(t *testing.T) {
	ctx := context.Background()
	engine, sink := newTestEngine(t, kv.NewMemory(), "app")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"ascii", "abc123"},
		{"json", `{"access_token":"x","expires_in":3600}`},
		{"latin", "héllo wörld"},
		{"cjk", "日本語のテキスト"},
		{"emoji", "🔐🗝️"},
		{"nul bytes", "a\x00b"},
		{"large", strings.Repeat("0123456789", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := engine.Encrypt(ctx, tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			got, err := engine.Decrypt(ctx, blob)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if got != tt.plaintext {
				t.Errorf("Decrypt() = %q, want %q", got, tt.plaintext)
			}
		})
	}

	if n := len(sink.reports()); n != 0 {
		t.Errorf("sink received %d reports for valid blobs", n)
	}
}

func TestCipherEngine_BlobFormat(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, kv.NewMemory(), "app")

	plaintext := "hello"
	blob, err := engine.Encrypt(ctx, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := crypto.FromBase64(blob)
	if err != nil {
		t.Fatalf("blob is not standard base64: %v", err)
	}
	if want := crypto.AESNonceSize + len(plaintext) + crypto.AESTagSize; len(raw) != want {
		t.Errorf("decoded blob length = %d, want %d", len(raw), want)
	}
	if !utf8.ValidString(blob) || strings.ContainsAny(blob, "\n\r ") {
		t.Errorf("blob %q is not text-safe", blob)
	}
}

func TestCipherEngine_NonceUniqueness(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, kv.NewMemory(), "app")

	seen := make(map[string]bool)
	nonces := make(map[string]bool)
	for i := 0; i < 100; i++ {
		blob, err := engine.Encrypt(ctx, "same plaintext")
		if err != nil {
			t.Fatal(err)
		}
		if seen[blob] {
			t.Fatalf("iteration %d produced a repeated blob", i)
		}
		seen[blob] = true

		raw, _ := crypto.FromBase64(blob)
		nonce := string(raw[:crypto.AESNonceSize])
		if nonces[nonce] {
			t.Fatalf("iteration %d reused a nonce", i)
		}
		nonces[nonce] = true
	}
}

func TestCipherEngine_TamperDetection(t *testing.T) {
	ctx := context.Background()
	engine, sink := newTestEngine(t, kv.NewMemory(), "app")

	blob, err := engine.Encrypt(ctx, "sensitive data")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := crypto.FromBase64(blob)
	if err != nil {
		t.Fatal(err)
	}

	for i := range raw {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x80

		got, err := engine.Decrypt(ctx, crypto.ToBase64(tampered))
		if err != nil {
			t.Fatalf("byte %d: Decrypt() error = %v, want nil", i, err)
		}
		if got != "" {
			t.Fatalf("byte %d: Decrypt() = %q, want empty", i, got)
		}
	}

	if n := len(sink.reports()); n != len(raw) {
		t.Errorf("sink received %d reports, want %d", n, len(raw))
	}
}

func TestCipherEngine_Open_Stages(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, kv.NewMemory(), "app")

	valid, err := engine.Encrypt(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := crypto.FromBase64(valid)
	raw[len(raw)-1] ^= 0x01

	tests := []struct {
		name  string
		blob  string
		stage string
	}{
		{"not base64", "%%%not-base64%%%", StageDecode},
		{"empty", "", StageFrame},
		{"too short", crypto.ToBase64(make([]byte, crypto.AESNonceSize+crypto.AESTagSize-1)), StageFrame},
		{"bad tag", crypto.ToBase64(raw), StageAEAD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Open(ctx, tt.blob)
			if !errors.Is(err, ErrDecryptionFailed) {
				t.Fatalf("Open() error = %v, want ErrDecryptionFailed", err)
			}
			var decErr *DecryptionError
			if !errors.As(err, &decErr) {
				t.Fatalf("Open() error = %T, want *DecryptionError", err)
			}
			if decErr.Stage != tt.stage {
				t.Errorf("Stage = %s, want %s", decErr.Stage, tt.stage)
			}
		})
	}
}

func TestCipherEngine_AEADFailureCarriesFingerprint(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a, _ := newTestEngine(t, store, "a")
	b, _ := newTestEngine(t, store, "b")

	blob, err := a.Encrypt(ctx, "secret")
	if err != nil {
		t.Fatal(err)
	}

	_, err = b.Open(ctx, blob)
	var decErr *DecryptionError
	if !errors.As(err, &decErr) {
		t.Fatalf("Open() error = %v, want *DecryptionError", err)
	}

	bKey, _ := NewKeyProvider(store, "b").GetOrCreateKey(ctx)
	if decErr.KeyFingerprint != bKey.Fingerprint() {
		t.Errorf("KeyFingerprint = %s, want %s", decErr.KeyFingerprint, bKey.Fingerprint())
	}
}

func TestCipherEngine_KeyPersistenceAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	first, _ := newTestEngine(t, store, "app")
	blob, err := first.Encrypt(ctx, "persisted")
	if err != nil {
		t.Fatal(err)
	}

	second, sink := newTestEngine(t, store, "app")
	got, err := second.Decrypt(ctx, blob)
	if err != nil {
		t.Fatal(err)
	}
	if got != "persisted" {
		t.Errorf("second instance decrypted %q, want %q", got, "persisted")
	}
	if len(sink.reports()) != 0 {
		t.Error("unexpected decryption failure report")
	}
}

func TestCipherEngine_CrossNamespaceFails(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a, _ := newTestEngine(t, store, "a")
	b, sink := newTestEngine(t, store, "b")

	blob, err := a.Encrypt(ctx, "for a only")
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.Decrypt(ctx, blob)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("namespace b decrypted %q from a's blob", got)
	}
	if len(sink.reports()) != 1 {
		t.Errorf("sink received %d reports, want 1", len(sink.reports()))
	}
}

func TestCipherEngine_PropagatesKeyErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("storage unavailable", func(t *testing.T) {
		store := newFlakyStore()
		engine, sink := newTestEngine(t, store, "app")
		blob, err := engine.Encrypt(ctx, "x")
		if err != nil {
			t.Fatal(err)
		}

		store.fail(true, true, false, false)
		if _, err := engine.Encrypt(ctx, "y"); !errors.Is(err, ErrStorageUnavailable) {
			t.Errorf("Encrypt() error = %v, want ErrStorageUnavailable", err)
		}
		if _, err := engine.Decrypt(ctx, blob); !errors.Is(err, ErrStorageUnavailable) {
			t.Errorf("Decrypt() error = %v, want ErrStorageUnavailable", err)
		}
		if len(sink.reports()) != 0 {
			t.Error("storage failures must not be reported as decryption failures")
		}
	})

	t.Run("corrupt key", func(t *testing.T) {
		store := kv.NewMemory()
		engine, _ := newTestEngine(t, store, "app")
		blob, err := engine.Encrypt(ctx, "x")
		if err != nil {
			t.Fatal(err)
		}

		store.Set(ctx, "app_encryption_key", "garbage")
		if _, err := engine.Decrypt(ctx, blob); !errors.Is(err, ErrKeyMaterialCorrupt) {
			t.Errorf("Decrypt() error = %v, want ErrKeyMaterialCorrupt", err)
		}
		if _, err := engine.Encrypt(ctx, "y"); !errors.Is(err, ErrKeyMaterialCorrupt) {
			t.Errorf("Encrypt() error = %v, want ErrKeyMaterialCorrupt", err)
		}
	})
}

func TestCipherEngine_NilSink(t *testing.T) {
	engine := NewCipherEngine(NewKeyProvider(kv.NewMemory(), "app"), nil)
	got, err := engine.Decrypt(context.Background(), "!!!")
	if err != nil || got != "" {
		t.Errorf("Decrypt() = %q, %v; want empty, nil", got, err)
	}
}
