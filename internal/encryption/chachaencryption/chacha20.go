// Package chachaencryption wraps the unauthenticated ChaCha20 stream cipher.
//
// Ciphertexts carry no tag: decrypting with the wrong key or nonce yields
// garbage rather than an error.
package chachaencryption

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// LegacyNonceSize is the 64-bit nonce of the original ChaCha20 construction.
const LegacyNonceSize = 8

// Encrypt XORs plaintext with the keystream for a fresh nonce of nonceSize
// bytes and returns nonce || ciphertext.
func Encrypt(key, plaintext []byte, nonceSize int) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("error generating nonce: %w", err)
	}

	stream, err := newStream(key, nonce)
	if err != nil {
		return nil, err
	}

	out := make([]byte, nonceSize+len(plaintext))
	copy(out, nonce)
	stream.XORKeyStream(out[nonceSize:], plaintext)
	return out, nil
}

// Decrypt splits nonce || ciphertext and XORs the keystream back out.
func Decrypt(key, data []byte, nonceSize int) ([]byte, error) {
	if len(data) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short: got %d bytes, need at least %d for nonce",
			len(data), nonceSize)
	}

	stream, err := newStream(key, data[:nonceSize])
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data)-nonceSize)
	stream.XORKeyStream(out, data[nonceSize:])
	return out, nil
}

// newStream accepts 8, 12 and 24 byte nonces. An 8-byte nonce is placed in the
// low words of a 12-byte IETF nonce, which reproduces the 64-bit-counter
// keystream for the first 2^32 blocks.
func newStream(key, nonce []byte) (*chacha20.Cipher, error) {
	if len(nonce) == LegacyNonceSize {
		ietf := make([]byte, chacha20.NonceSize)
		copy(ietf[chacha20.NonceSize-LegacyNonceSize:], nonce)
		nonce = ietf
	}

	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("error creating ChaCha20 cipher: %w", err)
	}
	return stream, nil
}
