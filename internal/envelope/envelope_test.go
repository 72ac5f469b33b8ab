package envelope

import (
	"bytes"
	"crypto/rsa"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
	"github.com/substantialcattle5/cipherdesk/internal/progress"
	"github.com/substantialcattle5/cipherdesk/testutil"
)

func TestSealOpenRoundTrip(t *testing.T) {
	priv, pub := testutil.CreateTestRSAKeyPair(t, 2048)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("hello")},
		{"unaligned", bytes.Repeat([]byte{0xAB}, 1000)},
		{"large", testutil.GenerateTestData(256 * 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Seal(tt.plaintext, pub)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			if got := binary.BigEndian.Uint32(env[:4]); got != 256 {
				t.Errorf("wrapped_len = %d, want 256", got)
			}
			if len(env) != 4+256+16+len(tt.plaintext) {
				t.Errorf("envelope length = %d, want %d", len(env), 4+256+16+len(tt.plaintext))
			}

			plain, err := Open(env, priv)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			testutil.CompareBytes(t, tt.plaintext, plain, "round trip")
		})
	}
}

func TestSealFreshSessionKeys(t *testing.T) {
	_, pub := testutil.CreateTestRSAKeyPair(t, 2048)

	a, _ := Seal([]byte("same input"), pub)
	b, _ := Seal([]byte("same input"), pub)
	if bytes.Equal(a, b) {
		t.Error("two envelopes of the same input are identical")
	}
}

func TestWrappedLengthMatchesModulus(t *testing.T) {
	testutil.SkipIfShort(t, "4096-bit key generation is slow")

	priv, pub := testutil.CreateTestRSAKeyPair(t, 4096)
	env, err := Seal([]byte("x"), pub)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if got := binary.BigEndian.Uint32(env[:4]); got != 512 {
		t.Errorf("wrapped_len = %d, want 512", got)
	}
	if _, err := Open(env, priv); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	priv, pub := testutil.CreateTestRSAKeyPair(t, 2048)
	otherPriv, _ := testutil.CreateTestRSAKeyPair(t, 2048)

	env, err := Seal([]byte("secret payload"), pub)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	mutate := func(i int) []byte {
		m := append([]byte{}, env...)
		m[i] ^= 0x01
		return m
	}
	badLen := append([]byte{}, env...)
	binary.BigEndian.PutUint32(badLen[:4], 255)

	tests := []struct {
		name string
		env  []byte
		key  *rsa.PrivateKey
	}{
		{"empty", nil, priv},
		{"short prefix", env[:3], priv},
		{"wrong length prefix", badLen, priv},
		{"truncated wrapped key", env[:100], priv},
		{"missing iv", env[:4+256+8], priv},
		{"mutated wrapped key first byte", mutate(4), priv},
		{"mutated wrapped key last byte", mutate(4 + 255), priv},
		{"wrong private key", env, otherPriv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.env, tt.key)
			if !errors.Is(err, cerrors.ErrKeyUnwrap) {
				t.Errorf("expected ErrKeyUnwrap, got %v", err)
			}
		})
	}
}

// The format has no integrity tag: flipping a ciphertext byte changes the
// output without an error.
func TestOpenIsMalleable(t *testing.T) {
	priv, pub := testutil.CreateTestRSAKeyPair(t, 2048)
	plaintext := []byte("transfer 100 coins")

	env, _ := Seal(plaintext, pub)
	env[len(env)-1] ^= 0x01

	got, err := Open(env, priv)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if bytes.Equal(got, plaintext) {
		t.Error("expected modified plaintext")
	}
}

func TestPathConventions(t *testing.T) {
	tests := []struct {
		input         string
		wantEncrypted string
		wantDecrypted string
	}{
		{"report.pdf", "report.pdf.rsa.enc", "report.pdf.dec"},
		{"report.pdf.rsa.enc", "report.pdf.rsa.enc.rsa.enc", "report.pdf.dec"},
		{"dir/data.bin", "dir/data.bin.rsa.enc", "dir/data.bin.dec"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EncryptedPath(tt.input); got != tt.wantEncrypted {
				t.Errorf("EncryptedPath(%q) = %q, want %q", tt.input, got, tt.wantEncrypted)
			}
			if got := DecryptedPath(tt.input); got != tt.wantDecrypted {
				t.Errorf("DecryptedPath(%q) = %q, want %q", tt.input, got, tt.wantDecrypted)
			}
		})
	}
}

func TestEncryptDecryptFile(t *testing.T) {
	priv, pub := testutil.CreateTestRSAKeyPair(t, 2048)
	dir := testutil.TempDir(t, "envelope-files")
	src := testutil.CreateTestFileWithSize(t, dir, "report.pdf", 64*1024)

	pm := progress.NewManager(progress.Options{Quiet: true})
	encPath, err := EncryptFile(src, pub, WithProgress(pm))
	if err != nil {
		t.Fatalf("EncryptFile() error = %v", err)
	}
	if encPath != src+".rsa.enc" {
		t.Errorf("unexpected output path %q", encPath)
	}
	testutil.AssertFileExists(t, encPath)

	decPath, err := DecryptFile(encPath, priv)
	if err != nil {
		t.Fatalf("DecryptFile() error = %v", err)
	}
	if decPath != filepath.Join(dir, "report.pdf.dec") {
		t.Errorf("unexpected output path %q", decPath)
	}

	want, _ := os.ReadFile(src)
	got, _ := os.ReadFile(decPath)
	testutil.CompareBytes(t, want, got, "decrypted file")
}

func TestFileErrors(t *testing.T) {
	priv, pub := testutil.CreateTestRSAKeyPair(t, 2048)
	dir := testutil.TempDir(t, "envelope-errors")

	if _, err := EncryptFile("", pub); !errors.Is(err, cerrors.ErrValidation) {
		t.Errorf("EncryptFile(\"\") expected ErrValidation, got %v", err)
	}
	if _, err := DecryptFile("", priv); !errors.Is(err, cerrors.ErrValidation) {
		t.Errorf("DecryptFile(\"\") expected ErrValidation, got %v", err)
	}
	if _, err := EncryptFile(dir, pub); !errors.Is(err, cerrors.ErrValidation) {
		t.Errorf("EncryptFile(dir) expected ErrValidation, got %v", err)
	}
	if _, err := EncryptFile(filepath.Join(dir, "missing"), pub); err == nil {
		t.Error("EncryptFile() expected error for missing file")
	}

	garbage := testutil.CreateTestFile(t, dir, "junk.rsa.enc", "not an envelope")
	if _, err := DecryptFile(garbage, priv); !errors.Is(err, cerrors.ErrKeyUnwrap) {
		t.Errorf("expected ErrKeyUnwrap, got %v", err)
	}
	testutil.AssertFileNotExists(t, filepath.Join(dir, "junk.dec"))
}
