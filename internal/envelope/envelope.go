// Package envelope implements hybrid public-key file encryption.
//
// A fresh AES-256 key encrypts the payload in CFB mode and is itself wrapped
// with RSA-OAEP (SHA-256, MGF1-SHA-256) under the recipient's public key:
//
//	u32be wrapped_len | wrapped_key | iv[16] | ciphertext
//
// wrapped_len always equals the recipient modulus size in bytes. The format
// carries no authentication tag; a modified ciphertext decrypts to modified
// plaintext without error.
package envelope

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/aesencryption"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// Seal encrypts plaintext for the holder of the private half of pub.
func Seal(plaintext []byte, pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, fmt.Errorf("no public key: %w", cerrors.ErrValidation)
	}

	sessionKey := make([]byte, constants.AESKeySize)
	if _, err := rand.Read(sessionKey); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, sessionKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap session key: %w", err)
	}

	iv, err := aesencryption.GenerateIV()
	if err != nil {
		return nil, err
	}
	ct, err := aesencryption.EncryptCFB(sessionKey, iv, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, constants.EnvelopeLenPrefix+len(wrapped)+len(iv)+len(ct))
	out = binary.BigEndian.AppendUint32(out, uint32(len(wrapped)))
	out = append(out, wrapped...)
	out = append(out, iv...)
	out = append(out, ct...)
	return out, nil
}

// Open decrypts an envelope produced by Seal. Malformed framing and key
// unwrap failures are reported as ErrKeyUnwrap.
func Open(env []byte, priv *rsa.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("no private key: %w", cerrors.ErrValidation)
	}
	if len(env) < constants.EnvelopeLenPrefix {
		return nil, fmt.Errorf("envelope too short: %w", cerrors.ErrKeyUnwrap)
	}

	wrappedLen := int(binary.BigEndian.Uint32(env[:constants.EnvelopeLenPrefix]))
	if wrappedLen != priv.Size() {
		return nil, fmt.Errorf("wrapped key length %d does not match %d-byte key: %w",
			wrappedLen, priv.Size(), cerrors.ErrKeyUnwrap)
	}

	body := env[constants.EnvelopeLenPrefix:]
	if len(body) < wrappedLen+constants.AESIVSize {
		return nil, fmt.Errorf("envelope truncated: %w", cerrors.ErrKeyUnwrap)
	}

	wrapped := body[:wrappedLen]
	iv := body[wrappedLen : wrappedLen+constants.AESIVSize]
	ct := body[wrappedLen+constants.AESIVSize:]

	sessionKey, err := rsa.DecryptOAEP(sha256.New(), nil, priv, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap session key: %w", cerrors.ErrKeyUnwrap)
	}
	if len(sessionKey) != constants.AESKeySize {
		return nil, fmt.Errorf("unwrapped key has %d bytes: %w", len(sessionKey), cerrors.ErrKeyUnwrap)
	}

	return aesencryption.DecryptCFB(sessionKey, iv, ct)
}
