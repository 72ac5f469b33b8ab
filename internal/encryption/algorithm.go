package encryption

import (
	"fmt"
	"strings"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
)

// Algorithm selects one of the payload transforms.
type Algorithm int

const (
	AES Algorithm = iota + 1
	ChaCha20
	Fernet
	// Caesar is a toy substitution with no security value.
	Caesar
)

// Algorithms lists every algorithm in display order.
var Algorithms = []Algorithm{AES, ChaCha20, Fernet, Caesar}

func (a Algorithm) String() string {
	switch a {
	case AES:
		return constants.AlgorithmAES
	case ChaCha20:
		return constants.AlgorithmChaCha20
	case Fernet:
		return constants.AlgorithmFernet
	case Caesar:
		return constants.AlgorithmCaesar
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case constants.AlgorithmAES:
		return AES, nil
	case constants.AlgorithmChaCha20, "chacha":
		return ChaCha20, nil
	case constants.AlgorithmFernet:
		return Fernet, nil
	case constants.AlgorithmCaesar:
		return Caesar, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (must be aes, chacha20, fernet or caesar): %w",
			name, cerrors.ErrUnsupportedAlgorithm)
	}
}

// Payload is the kind of data being protected; it decides key derivation,
// nonce sizes and which algorithms are allowed.
type Payload int

const (
	PayloadText Payload = iota
	PayloadImage
)

func (p Payload) String() string {
	if p == PayloadImage {
		return "image"
	}
	return "text"
}

// RequiresPassword reports whether the algorithm derives its key from a password.
func (a Algorithm) RequiresPassword() bool {
	return a != Caesar
}
