// Package errors provides typed error values for cipherdesk.
//
// Every failure surfaced by the crypto core wraps exactly one of these
// sentinels so callers can branch with errors.Is rather than matching
// strings.
//
// # Error Categories
//
//   - Key errors: ErrKeyFormat, ErrKeyUnwrap
//   - Cipher errors: ErrPadding, ErrAuthentication, ErrIncorrectPassword
//   - Caller errors: ErrValidation, ErrUnsupportedAlgorithm
//   - Transport errors: ErrNetwork (breach lookups only)
//
// # Usage
//
// Wrap with context inside internal packages:
//
//	return nil, fmt.Errorf("unwrapping session key: %w", errors.ErrKeyUnwrap)
//
// Branch in the CLI layer:
//
//	if errors.Is(err, cerrors.ErrAuthentication) {
//	    // wrong password or tampered token
//	}
package errors
