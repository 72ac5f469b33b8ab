// Package caesar implements the classic letter-shift substitution.
//
// It is NOT encryption: the shift is public and the transform offers no
// confidentiality. It exists for the text tool's teaching mode only.
package caesar

// Shift rotates ASCII letters by n positions, preserving case. All other
// bytes pass through unchanged.
func Shift(text []byte, n int) []byte {
	n %= 26
	if n < 0 {
		n += 26
	}

	out := make([]byte, len(text))
	for i, c := range text {
		switch {
		case c >= 'A' && c <= 'Z':
			out[i] = 'A' + (c-'A'+byte(n))%26
		case c >= 'a' && c <= 'z':
			out[i] = 'a' + (c-'a'+byte(n))%26
		default:
			out[i] = c
		}
	}
	return out
}

// Unshift reverses Shift.
func Unshift(text []byte, n int) []byte {
	return Shift(text, -n)
}
