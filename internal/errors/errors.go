package errors

import "errors"

// Key errors indicate problems with RSA key material.
var (
	// ErrKeyFormat indicates a key file is malformed or holds an unsupported key type.
	ErrKeyFormat = errors.New("malformed or unsupported key")

	// ErrKeyUnwrap indicates the RSA-OAEP wrapped session key could not be recovered.
	ErrKeyUnwrap = errors.New("failed to unwrap session key")
)

// Cipher errors indicate a ciphertext could not be turned back into plaintext.
var (
	// ErrPadding indicates PKCS#7 padding was missing or inconsistent.
	ErrPadding = errors.New("invalid padding")

	// ErrAuthentication indicates an authenticated token failed verification.
	ErrAuthentication = errors.New("authentication failed")

	// ErrIncorrectPassword indicates the password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Caller errors indicate a precondition was not met.
var (
	// ErrValidation indicates a caller-supplied parameter is invalid.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedAlgorithm indicates the algorithm cannot be used for the payload.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)

// ErrNetwork indicates the breach lookup could not be completed.
var ErrNetwork = errors.New("network error")

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
