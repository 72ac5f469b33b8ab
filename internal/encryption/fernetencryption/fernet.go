// Package fernetencryption produces and verifies Fernet tokens: version byte,
// timestamp, IV, AES-128-CBC ciphertext and an HMAC-SHA256 tag over all of it.
package fernetencryption

import (
	"crypto/aes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/fernet/fernet-go"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

const (
	tokenVersion = 0x80
	headerSize   = 1 + 8 + aes.BlockSize
	minTokenSize = headerSize + aes.BlockSize + sha256.Size
)

// noTTL disables the timestamp freshness check.
const noTTL = -1

// ParseKey decodes a base64 Fernet key.
func ParseKey(encoded string) (*fernet.Key, error) {
	key, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid Fernet key: %w", cerrors.ErrValidation)
	}
	return key, nil
}

// Encrypt returns the base64url token for plaintext.
func Encrypt(encodedKey string, plaintext []byte) ([]byte, error) {
	key, err := ParseKey(encodedKey)
	if err != nil {
		return nil, err
	}

	token, err := fernet.EncryptAndSign(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create Fernet token: %w", err)
	}
	return token, nil
}

// Decrypt verifies token and returns its plaintext. Any malformed, tampered or
// foreign-key token fails with ErrAuthentication.
func Decrypt(encodedKey string, token []byte) ([]byte, error) {
	key, err := ParseKey(encodedKey)
	if err != nil {
		return nil, err
	}

	// Strict decoding rejects non-canonical trailing bits so every character
	// of the token is covered by the HMAC.
	raw, err := base64.URLEncoding.Strict().DecodeString(string(token))
	if err != nil {
		return nil, fmt.Errorf("token is not valid base64url: %w", cerrors.ErrAuthentication)
	}
	if len(raw) < minTokenSize || raw[0] != tokenVersion || (len(raw)-headerSize-sha256.Size)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("malformed token: %w", cerrors.ErrAuthentication)
	}

	msg := fernet.VerifyAndDecrypt(token, noTTL, []*fernet.Key{key})
	if msg == nil {
		return nil, fmt.Errorf("token verification failed: %w", cerrors.ErrAuthentication)
	}
	return msg, nil
}
