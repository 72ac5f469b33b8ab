// Package aesencryption holds the AES block-mode primitives: CBC with PKCS#7
// padding for password payloads and CFB for the hybrid file envelope.
package aesencryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// EncryptCBC pads plaintext, encrypts it under a fresh IV and returns IV || ciphertext.
func EncryptCBC(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	iv, err := GenerateIV()
	if err != nil {
		return nil, err
	}

	padded := Pad(plaintext)
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return out, nil
}

// DecryptCBC splits IV || ciphertext, decrypts and strips the padding.
func DecryptCBC(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(data) < 2*aes.BlockSize {
		return nil, fmt.Errorf("encrypted data too short: got %d bytes: %w", len(data), cerrors.ErrPadding)
	}

	iv := data[:aes.BlockSize]
	ciphertext := data[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext is not a multiple of the block size: %w", cerrors.ErrPadding)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return Unpad(plaintext)
}

// GenerateIV returns a random 16-byte IV.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, constants.AESIVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}
	return iv, nil
}
