package encryption

import (
	"encoding/base64"
	"fmt"
	"strings"

	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// EncryptText encrypts message under password and returns a printable token.
// AES and ChaCha20 tokens are base64url(nonce || ciphertext); Fernet tokens
// are already printable; Caesar output is the shifted text.
func EncryptText(alg Algorithm, password, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is empty: %w", cerrors.ErrValidation)
	}

	c, key, err := textCipher(alg, password)
	if err != nil {
		return "", err
	}

	out, err := c.Encrypt(key, []byte(message))
	if err != nil {
		return "", fmt.Errorf("%s encryption failed: %w", alg, err)
	}

	switch alg {
	case AES, ChaCha20:
		return base64.URLEncoding.EncodeToString(out), nil
	default:
		return string(out), nil
	}
}

// DecryptText reverses EncryptText. Surrounding whitespace is stripped from
// AES, ChaCha20 and Fernet tokens; Caesar text is used verbatim.
func DecryptText(alg Algorithm, password, token string) (string, error) {
	if alg != Caesar {
		token = strings.TrimSpace(token)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("token is empty: %w", cerrors.ErrValidation)
	}

	c, key, err := textCipher(alg, password)
	if err != nil {
		return "", err
	}

	data := []byte(token)
	if alg == AES || alg == ChaCha20 {
		data, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return "", fmt.Errorf("token is not valid base64url: %w", cerrors.ErrValidation)
		}
	}

	out, err := c.Decrypt(key, data)
	if err != nil {
		return "", fmt.Errorf("%s decryption failed: %w", alg, err)
	}
	return string(out), nil
}

func textCipher(alg Algorithm, password string) (Cipher, []byte, error) {
	c, err := NewCipher(alg, PayloadText)
	if err != nil {
		return nil, nil, err
	}
	key, err := DeriveKey(alg, PayloadText, password)
	if err != nil {
		return nil, nil, err
	}
	return c, key, nil
}
