package encryption

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/substantialcattle5/cipherdesk/internal/atomic"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/kdf"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// SealedImage is an encrypted image blob together with the SHA-256 password
// hash stored in its sidecar file.
//
// The sidecar is only a password pre-check. AES and ChaCha20 blobs carry no
// integrity tag of their own.
type SealedImage struct {
	Algorithm Algorithm
	Blob      []byte
	Sidecar   [constants.PasswordHashSize]byte
}

// SidecarPath returns the password-hash path that accompanies an encrypted image.
func SidecarPath(encryptedPath string) string {
	return encryptedPath + constants.PasswordHashSuffix
}

// SealImage encrypts already-normalised image bytes.
func SealImage(alg Algorithm, password string, imageBytes []byte) (*SealedImage, error) {
	c, err := NewCipher(alg, PayloadImage)
	if err != nil {
		return nil, err
	}
	key, err := DeriveKey(alg, PayloadImage, password)
	if err != nil {
		return nil, err
	}

	blob, err := c.Encrypt(key, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("%s image encryption failed: %w", alg, err)
	}

	return &SealedImage{
		Algorithm: alg,
		Blob:      blob,
		Sidecar:   kdf.HashPassword(password),
	}, nil
}

// OpenImage checks password against sidecar before attempting to decrypt blob.
func OpenImage(alg Algorithm, password string, blob, sidecar []byte) ([]byte, error) {
	if !kdf.VerifyPassword(password, sidecar) {
		return nil, cerrors.ErrIncorrectPassword
	}

	c, err := NewCipher(alg, PayloadImage)
	if err != nil {
		return nil, err
	}
	key, err := DeriveKey(alg, PayloadImage, password)
	if err != nil {
		return nil, err
	}

	out, err := c.Decrypt(key, blob)
	if err != nil {
		return nil, fmt.Errorf("%s image decryption failed: %w", alg, err)
	}
	return out, nil
}

// NormalizeImage decodes any supported image format and re-encodes it as PNG.
func NormalizeImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image: %w", cerrors.ErrValidation)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncryptImage reads the image at inPath, normalises it to PNG and writes the
// encrypted blob to outPath with its sidecar beside it. Both files are written
// or neither is.
func EncryptImage(alg Algorithm, inPath, outPath, password string) error {
	if inPath == "" || outPath == "" {
		return fmt.Errorf("input and output paths are required: %w", cerrors.ErrValidation)
	}

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", inPath, err)
	}
	normalized, err := NormalizeImage(raw)
	if err != nil {
		return err
	}

	sealed, err := SealImage(alg, password, normalized)
	if err != nil {
		return err
	}

	txn := atomic.Begin()
	if err := txn.StageBytes(outPath, sealed.Blob, constants.SecureFilePerms); err != nil {
		_ = txn.Rollback()
		return fmt.Errorf("failed to write encrypted image: %w", err)
	}
	if err := txn.StageBytes(SidecarPath(outPath), sealed.Sidecar[:], constants.SecureFilePerms); err != nil {
		_ = txn.Rollback()
		return fmt.Errorf("failed to write password hash: %w", err)
	}
	return txn.Commit()
}

// DecryptImage verifies the password against the sidecar of inPath, decrypts
// the blob and writes the image to outPath in the format implied by its
// extension (PNG by default).
func DecryptImage(alg Algorithm, inPath, outPath, password string) error {
	if inPath == "" || outPath == "" {
		return fmt.Errorf("input and output paths are required: %w", cerrors.ErrValidation)
	}

	sidecar, err := os.ReadFile(SidecarPath(inPath))
	if err != nil {
		return fmt.Errorf("failed to read password hash: %w", err)
	}
	blob, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted image %s: %w", inPath, err)
	}

	plain, err := OpenImage(alg, password, blob, sidecar)
	if err != nil {
		return err
	}

	img, _, err := image.Decode(bytes.NewReader(plain))
	if err != nil {
		return fmt.Errorf("decrypted data is not a valid image: %w", err)
	}

	encoded, err := encodeForPath(img, outPath)
	if err != nil {
		return err
	}
	return atomic.WriteFile(outPath, encoded, constants.StandardFilePerms)
}

func encodeForPath(img image.Image, path string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image for %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
