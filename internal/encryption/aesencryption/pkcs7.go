package aesencryption

import (
	"bytes"
	"crypto/aes"
	"fmt"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// Pad appends PKCS#7 padding. A full block is added when data is already aligned.
func Pad(data []byte) []byte {
	padLength := aes.BlockSize - (len(data) % aes.BlockSize)
	padText := bytes.Repeat([]byte{byte(padLength)}, padLength)

	padded := make([]byte, 0, len(data)+padLength)
	padded = append(padded, data...)
	return append(padded, padText...)
}

// Unpad strips PKCS#7 padding after checking every pad byte.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("padded length %d is not a positive multiple of %d: %w",
			len(data), aes.BlockSize, cerrors.ErrPadding)
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize {
		return nil, fmt.Errorf("pad length %d out of range: %w", padLen, cerrors.ErrPadding)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent pad bytes: %w", cerrors.ErrPadding)
		}
	}

	return data[:len(data)-padLen], nil
}
