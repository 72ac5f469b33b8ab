// Package kdf turns passwords into symmetric keys.
//
// Text payloads use PBKDF2-SHA256 with a fixed all-zero salt so that files
// written by earlier releases stay readable. Image payloads use a single
// unsalted SHA-256, which also doubles as the sidecar verification hash.
package kdf

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
)

// zeroSalt is shared by every derivation; identical passwords derive identical keys.
var zeroSalt = make([]byte, constants.PBKDF2SaltSize)

// Derive returns the 32-byte PBKDF2-SHA256 key for password.
func Derive(password string) [constants.AESKeySize]byte {
	var key [constants.AESKeySize]byte
	copy(key[:], pbkdf2.Key(
		[]byte(password),
		zeroSalt,
		constants.PBKDF2Iterations,
		constants.AESKeySize,
		sha256.New,
	))
	return key
}

// DeriveFernetKey returns Derive(password) encoded as base64url, the form a
// Fernet key is exchanged in.
func DeriveFernetKey(password string) string {
	key := Derive(password)
	return base64.URLEncoding.EncodeToString(key[:])
}

// DeriveTextAESKey returns the AES-256 key used for text tokens: the first 32
// bytes of the base64url Fernet key string.
func DeriveTextAESKey(password string) []byte {
	return []byte(DeriveFernetKey(password))[:constants.AESKeySize]
}

// HashPassword returns SHA-256(password).
func HashPassword(password string) [constants.PasswordHashSize]byte {
	return sha256.Sum256([]byte(password))
}

// ImageKey returns the raw AES/ChaCha20 key for image payloads.
func ImageKey(password string) []byte {
	sum := HashPassword(password)
	return sum[:]
}

// ImageFernetKey returns the base64url Fernet key for image payloads.
func ImageFernetKey(password string) string {
	return base64.URLEncoding.EncodeToString(ImageKey(password))
}

// VerifyPassword reports whether password hashes to digest.
func VerifyPassword(password string, digest []byte) bool {
	sum := HashPassword(password)
	return subtle.ConstantTimeCompare(sum[:], digest) == 1
}
