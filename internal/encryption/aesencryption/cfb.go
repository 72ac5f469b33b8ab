package aesencryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptCFB encrypts plaintext with AES-CFB under key and iv. The output has
// the same length as the input.
func EncryptCFB(key, iv, plaintext []byte) ([]byte, error) {
	stream, err := newCFB(key, iv, true)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	stream.XORKeyStream(out, plaintext)
	return out, nil
}

// DecryptCFB reverses EncryptCFB. CFB carries no integrity check.
func DecryptCFB(key, iv, ciphertext []byte) ([]byte, error) {
	stream, err := newCFB(key, iv, false)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	stream.XORKeyStream(out, ciphertext)
	return out, nil
}

func newCFB(key, iv []byte, encrypt bool) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("IV length must be %d bytes for CFB mode, got %d", aes.BlockSize, len(iv))
	}
	if encrypt {
		return cipher.NewCFBEncrypter(block, iv), nil
	}
	return cipher.NewCFBDecrypter(block, iv), nil
}
