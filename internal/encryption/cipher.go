package encryption

import (
	"fmt"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/aesencryption"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/caesar"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/chachaencryption"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/fernetencryption"
	"github.com/substantialcattle5/cipherdesk/internal/encryption/kdf"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// Cipher is the common capability of every payload transform.
//
// Secure reports false for transforms that provide no confidentiality; such
// output must never be treated as protected.
type Cipher interface {
	Algorithm() Algorithm
	Secure() bool
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, ciphertext []byte) ([]byte, error)
}

// NewCipher returns the transform for alg configured for payload.
func NewCipher(alg Algorithm, payload Payload) (Cipher, error) {
	switch alg {
	case AES:
		return aesCBCCipher{}, nil
	case ChaCha20:
		nonceSize := constants.TextChaChaNonce
		if payload == PayloadImage {
			nonceSize = constants.ImageChaChaNonce
		}
		return chachaCipher{nonceSize: nonceSize}, nil
	case Fernet:
		return fernetCipher{}, nil
	case Caesar:
		if payload == PayloadImage {
			return nil, fmt.Errorf("caesar cannot protect %s payloads: %w", payload, cerrors.ErrUnsupportedAlgorithm)
		}
		return caesarCipher{shift: constants.CaesarShift}, nil
	default:
		return nil, fmt.Errorf("%s: %w", alg, cerrors.ErrUnsupportedAlgorithm)
	}
}

// DeriveKey returns the key material alg expects for payload. Caesar has no key.
func DeriveKey(alg Algorithm, payload Payload, password string) ([]byte, error) {
	switch payload {
	case PayloadText:
		switch alg {
		case AES:
			return kdf.DeriveTextAESKey(password), nil
		case ChaCha20:
			key := kdf.Derive(password)
			return key[:], nil
		case Fernet:
			return []byte(kdf.DeriveFernetKey(password)), nil
		case Caesar:
			return nil, nil
		}
	case PayloadImage:
		switch alg {
		case AES, ChaCha20:
			return kdf.ImageKey(password), nil
		case Fernet:
			return []byte(kdf.ImageFernetKey(password)), nil
		}
	}
	return nil, fmt.Errorf("no key derivation for %s %s payloads: %w", alg, payload, cerrors.ErrUnsupportedAlgorithm)
}

type aesCBCCipher struct{}

func (aesCBCCipher) Algorithm() Algorithm { return AES }
func (aesCBCCipher) Secure() bool         { return true }

func (aesCBCCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	return aesencryption.EncryptCBC(key, plaintext)
}

func (aesCBCCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	return aesencryption.DecryptCBC(key, ciphertext)
}

type chachaCipher struct {
	nonceSize int
}

func (chachaCipher) Algorithm() Algorithm { return ChaCha20 }
func (chachaCipher) Secure() bool         { return true }

func (c chachaCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	return chachaencryption.Encrypt(key, plaintext, c.nonceSize)
}

func (c chachaCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	return chachaencryption.Decrypt(key, ciphertext, c.nonceSize)
}

// fernetCipher takes the base64url-encoded Fernet key as its key bytes.
type fernetCipher struct{}

func (fernetCipher) Algorithm() Algorithm { return Fernet }
func (fernetCipher) Secure() bool         { return true }

func (fernetCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	return fernetencryption.Encrypt(string(key), plaintext)
}

func (fernetCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	return fernetencryption.Decrypt(string(key), ciphertext)
}

// caesarCipher ignores the key.
type caesarCipher struct {
	shift int
}

func (caesarCipher) Algorithm() Algorithm { return Caesar }
func (caesarCipher) Secure() bool         { return false }

func (c caesarCipher) Encrypt(_, plaintext []byte) ([]byte, error) {
	return caesar.Shift(plaintext, c.shift), nil
}

func (c caesarCipher) Decrypt(_, ciphertext []byte) ([]byte, error) {
	return caesar.Unshift(ciphertext, c.shift), nil
}
