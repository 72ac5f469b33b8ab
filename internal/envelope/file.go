package envelope

import (
	"crypto/rsa"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/substantialcattle5/cipherdesk/internal/atomic"
	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
	"github.com/substantialcattle5/cipherdesk/internal/progress"
)

// FileOption customises EncryptFile and DecryptFile.
type FileOption func(*fileOptions)

type fileOptions struct {
	progress *progress.Manager
}

// WithProgress reports read progress of the input file through pm.
func WithProgress(pm *progress.Manager) FileOption {
	return func(o *fileOptions) {
		o.progress = pm
	}
}

// EncryptedPath returns the output path EncryptFile writes for path.
func EncryptedPath(path string) string {
	return path + constants.EnvelopeSuffix
}

// DecryptedPath returns the output path DecryptFile writes for path: the
// ".rsa.enc" suffix is replaced by ".dec", or ".dec" is appended.
func DecryptedPath(path string) string {
	return strings.TrimSuffix(path, constants.EnvelopeSuffix) + constants.DecryptedSuffix
}

// EncryptFile seals the file at path for pub and writes the envelope beside
// it. It returns the output path.
func EncryptFile(path string, pub *rsa.PublicKey, opts ...FileOption) (string, error) {
	o := applyOptions(opts)
	data, err := readInput(path, o, "Encrypting")
	if err != nil {
		return "", err
	}

	sealed, err := Seal(data, pub)
	if err != nil {
		return "", err
	}

	outPath := EncryptedPath(path)
	if err := atomic.WriteFile(outPath, sealed, constants.StandardFilePerms); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}

// DecryptFile opens the envelope at path with priv and writes the plaintext
// beside it. It returns the output path.
func DecryptFile(path string, priv *rsa.PrivateKey, opts ...FileOption) (string, error) {
	o := applyOptions(opts)
	data, err := readInput(path, o, "Decrypting")
	if err != nil {
		return "", err
	}

	plain, err := Open(data, priv)
	if err != nil {
		return "", err
	}

	outPath := DecryptedPath(path)
	if err := atomic.WriteFile(outPath, plain, constants.SecureFilePerms); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}

func applyOptions(opts []FileOption) *fileOptions {
	o := &fileOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func readInput(path string, o *fileOptions, verb string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required: %w", cerrors.ErrValidation)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, cerrors.ErrValidation)
	}

	var r io.Reader = f
	if o.progress != nil {
		r = o.progress.WrapReader(f, info.Size(), fmt.Sprintf("%s %s", verb, filepath.Base(path)))
		defer o.progress.Finish()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
