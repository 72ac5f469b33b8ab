package encryption

import (
	"bytes"
	"errors"
	"testing"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"aes", AES, false},
		{"AES", AES, false},
		{" chacha20 ", ChaCha20, false},
		{"chacha", ChaCha20, false},
		{"fernet", Fernet, false},
		{"caesar", Caesar, false},
		{"rot13", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				if !errors.Is(err, cerrors.ErrUnsupportedAlgorithm) {
					t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != map[Algorithm]string{AES: "aes", ChaCha20: "chacha20", Fernet: "fernet", Caesar: "caesar"}[got] {
				t.Errorf("unexpected String() %q", got.String())
			}
		})
	}
}

func TestCipherRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("x"),
		[]byte("0123456789abcdef"),
		bytes.Repeat([]byte{0x00, 0xff, 0x10}, 333),
	}

	for _, payload := range []Payload{PayloadText, PayloadImage} {
		for _, alg := range []Algorithm{AES, ChaCha20, Fernet} {
			t.Run(payload.String()+"/"+alg.String(), func(t *testing.T) {
				c, err := NewCipher(alg, payload)
				if err != nil {
					t.Fatalf("NewCipher() unexpected error: %v", err)
				}
				if !c.Secure() {
					t.Errorf("%s should report Secure()", alg)
				}
				if c.Algorithm() != alg {
					t.Errorf("Algorithm() = %v, want %v", c.Algorithm(), alg)
				}

				key, err := DeriveKey(alg, payload, "hunter22")
				if err != nil {
					t.Fatalf("DeriveKey() unexpected error: %v", err)
				}

				for _, p := range payloads {
					ct, err := c.Encrypt(key, p)
					if err != nil {
						t.Fatalf("Encrypt() unexpected error: %v", err)
					}
					pt, err := c.Decrypt(key, ct)
					if err != nil {
						t.Fatalf("Decrypt() unexpected error: %v", err)
					}
					if !bytes.Equal(pt, p) {
						t.Fatalf("round trip mismatch for %d byte payload", len(p))
					}
				}
			})
		}
	}
}

func TestChaChaNonceSizes(t *testing.T) {
	tests := []struct {
		payload   Payload
		nonceSize int
	}{
		{PayloadImage, 8},
		{PayloadText, 12},
	}

	for _, tt := range tests {
		t.Run(tt.payload.String(), func(t *testing.T) {
			c, _ := NewCipher(ChaCha20, tt.payload)
			key, _ := DeriveKey(ChaCha20, tt.payload, "hunter22")
			ct, err := c.Encrypt(key, []byte("twelve bytes"))
			if err != nil {
				t.Fatalf("Encrypt() unexpected error: %v", err)
			}
			if len(ct) != tt.nonceSize+12 {
				t.Errorf("expected %d bytes, got %d", tt.nonceSize+12, len(ct))
			}
		})
	}
}

func TestCaesarIsNotSecure(t *testing.T) {
	c, err := NewCipher(Caesar, PayloadText)
	if err != nil {
		t.Fatalf("NewCipher() unexpected error: %v", err)
	}
	if c.Secure() {
		t.Error("Caesar must report Secure() == false")
	}
	if Caesar.RequiresPassword() {
		t.Error("Caesar must not require a password")
	}

	if _, err := NewCipher(Caesar, PayloadImage); !errors.Is(err, cerrors.ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm for Caesar images, got %v", err)
	}
	if _, err := DeriveKey(Caesar, PayloadImage, "pw"); !errors.Is(err, cerrors.ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestDeriveKeyShapes(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		payload Payload
		length  int
	}{
		{AES, PayloadText, 32},
		{ChaCha20, PayloadText, 32},
		{Fernet, PayloadText, 44},
		{AES, PayloadImage, 32},
		{ChaCha20, PayloadImage, 32},
		{Fernet, PayloadImage, 44},
	}

	for _, tt := range tests {
		t.Run(tt.payload.String()+"/"+tt.alg.String(), func(t *testing.T) {
			key, err := DeriveKey(tt.alg, tt.payload, "secret")
			if err != nil {
				t.Fatalf("DeriveKey() unexpected error: %v", err)
			}
			if len(key) != tt.length {
				t.Errorf("expected %d byte key, got %d", tt.length, len(key))
			}
			again, _ := DeriveKey(tt.alg, tt.payload, "secret")
			if !bytes.Equal(key, again) {
				t.Error("DeriveKey is not deterministic")
			}
		})
	}
}

func TestFernetCipherDetectsTampering(t *testing.T) {
	c, _ := NewCipher(Fernet, PayloadText)
	key, _ := DeriveKey(Fernet, PayloadText, "secret")
	token, err := c.Encrypt(key, []byte("do not touch"))
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}

	for i := range token {
		mutated := append([]byte{}, token...)
		mutated[i] ^= 0x01
		if _, err := c.Decrypt(key, mutated); !errors.Is(err, cerrors.ErrAuthentication) {
			t.Fatalf("mutation at %d: expected ErrAuthentication, got %v", i, err)
		}
	}
}
