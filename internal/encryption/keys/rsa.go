package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/substantialcattle5/cipherdesk/internal/atomic"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

const (
	pemTypePrivate       = "PRIVATE KEY"
	pemTypePrivateLegacy = "RSA PRIVATE KEY"
	pemTypePublic        = "PUBLIC KEY"
)

// KeyPair holds an RSA private key and its public half.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// GenerateKeyPair generates an RSA key pair with public exponent 65537.
// A bits value of 0 selects the default size.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	if bits == 0 {
		bits = constants.DefaultRSAKeyBits
	}
	if bits < constants.MinRSAKeyBits {
		return nil, fmt.Errorf("RSA key size %d too small, minimum is %d bits: %w",
			bits, constants.MinRSAKeyBits, cerrors.ErrValidation)
	}

	// Generate private key
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	if err = privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("invalid RSA private key: %w", err)
	}

	return &KeyPair{Private: privateKey, Public: &privateKey.PublicKey}, nil
}

// PrivateKeyPath appends "_private.pem" unless path already ends in ".pem".
func PrivateKeyPath(path string) string {
	return withPEMSuffix(path, constants.PrivateKeySuffix)
}

// PublicKeyPath appends "_public.pem" unless path already ends in ".pem".
func PublicKeyPath(path string) string {
	return withPEMSuffix(path, constants.PublicKeySuffix)
}

func withPEMSuffix(path, suffix string) string {
	if strings.HasSuffix(path, constants.PEMExtension) {
		return path
	}
	return path + suffix
}

// SaveKeyPair writes the private key (PKCS#8, mode 0600) and the public key
// (SubjectPublicKeyInfo, mode 0644). Both files are written or neither is.
// It returns the final paths after the suffix rule is applied.
func SaveKeyPair(kp *KeyPair, privPath, pubPath string) (string, string, error) {
	if kp == nil || kp.Private == nil {
		return "", "", fmt.Errorf("no key pair to save: %w", cerrors.ErrValidation)
	}
	if privPath == "" || pubPath == "" {
		return "", "", fmt.Errorf("key paths are required: %w", cerrors.ErrValidation)
	}

	privPath = PrivateKeyPath(privPath)
	pubPath = PublicKeyPath(pubPath)

	privPEM, err := EncodeRSAPrivateKeyToPEM(kp.Private)
	if err != nil {
		return "", "", err
	}
	pubPEM, err := EncodeRSAPublicKeyToPEM(kp.Public)
	if err != nil {
		return "", "", err
	}

	txn := atomic.Begin()
	if err := txn.StageBytes(privPath, privPEM, constants.SecureFilePerms); err != nil {
		_ = txn.Rollback()
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}
	if err := txn.StageBytes(pubPath, pubPEM, constants.StandardFilePerms); err != nil {
		_ = txn.Rollback()
		return "", "", fmt.Errorf("failed to write public key: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return "", "", err
	}

	return privPath, pubPath, nil
}

// LoadPrivateKey reads a private key from path after applying the suffix rule.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(PrivateKeyPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	return ParseRSAPrivateKeyFromPEM(data)
}

// LoadPublicKey reads a public key from path after applying the suffix rule.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(PublicKeyPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	return ParseRSAPublicKeyFromPEM(data)
}

// ParseRSAPrivateKeyFromPEM parses a PKCS#8 "PRIVATE KEY" block, or a legacy
// PKCS#1 "RSA PRIVATE KEY" block.
func ParseRSAPrivateKeyFromPEM(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in private key: %w", cerrors.ErrKeyFormat)
	}

	switch block.Type {
	case pemTypePrivate:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %v: %w", err, cerrors.ErrKeyFormat)
		}
		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key: %w", cerrors.ErrKeyFormat)
		}
		return privateKey, nil
	case pemTypePrivateLegacy:
		privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %v: %w", err, cerrors.ErrKeyFormat)
		}
		return privateKey, nil
	default:
		return nil, fmt.Errorf("unexpected PEM block %q for private key: %w", block.Type, cerrors.ErrKeyFormat)
	}
}

// ParseRSAPublicKeyFromPEM parses an RSA public key from PEM format
func ParseRSAPublicKeyFromPEM(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil || block.Type != pemTypePublic {
		return nil, fmt.Errorf("failed to decode PEM block containing public key: %w", cerrors.ErrKeyFormat)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %v: %w", err, cerrors.ErrKeyFormat)
	}

	publicKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key is not an RSA public key: %w", cerrors.ErrKeyFormat)
	}

	return publicKey, nil
}

// EncodeRSAPrivateKeyToPEM encodes an RSA private key as unencrypted PKCS#8
func EncodeRSAPrivateKeyToPEM(privateKey *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivate, Bytes: der}), nil
}

// EncodeRSAPublicKeyToPEM encodes an RSA public key to PEM format
func EncodeRSAPublicKeyToPEM(publicKey *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der}), nil
}

// Fingerprint returns the base64 SHA-256 of the public key's DER encoding.
func Fingerprint(publicKey *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	hash := sha256.Sum256(der)
	return base64.StdEncoding.EncodeToString(hash[:]), nil
}

// ValidateRSAKeyPair validates that the private and public keys form a valid pair
func ValidateRSAKeyPair(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) error {
	if err := privateKey.Validate(); err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	if privateKey.N.Cmp(publicKey.N) != 0 || privateKey.E != publicKey.E {
		return fmt.Errorf("private and public keys do not form a valid pair: %w", cerrors.ErrKeyFormat)
	}

	return nil
}
