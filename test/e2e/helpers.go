// Package e2e provides end-to-end testing utilities for the cipherdesk CLI
package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce   sync.Once
	builtBinary string
	buildErr    error
	buildOutput []byte
)

// Workspace is a temporary directory the CLI runs in.
type Workspace struct {
	Path       string
	binaryPath string
	env        []string
}

// NewWorkspace creates a temporary workspace and builds the binary on first use.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping end-to-end test in short mode")
	}

	path := t.TempDir()
	return &Workspace{
		Path:       path,
		binaryPath: ensureBinary(t),
		env: []string{
			"HOME=" + path,
			"PATH=" + os.Getenv("PATH"),
		},
	}
}

// ensureBinary builds the cipherdesk binary once per test run and returns its path
func ensureBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "cipherdesk-e2e")
		if err != nil {
			buildErr = err
			return
		}
		builtBinary = filepath.Join(dir, "cipherdesk")

		cmd := exec.Command("go", "build", "-o", builtBinary, ".")
		cmd.Dir = getProjectRoot(t)
		buildOutput, buildErr = cmd.CombinedOutput()
	})

	if buildErr != nil {
		t.Fatalf("Failed to build cipherdesk binary: %v\nOutput: %s", buildErr, buildOutput)
	}
	return builtBinary
}

// getProjectRoot finds the project root directory
func getProjectRoot(t *testing.T) string {
	t.Helper()

	// Start from current directory and walk up to find go.mod
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// Setenv adds an environment variable for later commands.
func (w *Workspace) Setenv(key, value string) {
	w.env = append(w.env, key+"="+value)
}

// RunCommand runs cipherdesk in the workspace with no stdin
func (w *Workspace) RunCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return w.RunWithInput(t, "", args...)
}

// RunWithInput runs cipherdesk in the workspace feeding input on stdin
func (w *Workspace) RunWithInput(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := exec.Command(w.binaryPath, args...)
	cmd.Dir = w.Path
	cmd.Env = w.env
	cmd.Stdin = strings.NewReader(input)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	// Log command execution for debugging
	if t.Failed() || testing.Verbose() {
		t.Logf("Command: cipherdesk %s", strings.Join(args, " "))
		t.Logf("Exit Code: %v", err)
		if stdout != "" {
			t.Logf("Stdout:\n%s", stdout)
		}
		if stderr != "" {
			t.Logf("Stderr:\n%s", stderr)
		}
	}

	return stdout, stderr, err
}

// CreateFile creates a test file in the workspace
func (w *Workspace) CreateFile(t *testing.T, relativePath, content string, perm os.FileMode) string {
	t.Helper()

	fullPath := filepath.Join(w.Path, relativePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("Failed to create directories for %s: %v", relativePath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), perm); err != nil {
		t.Fatalf("Failed to create file %s: %v", relativePath, err)
	}
	if err := os.Chmod(fullPath, perm); err != nil {
		t.Fatalf("Failed to chmod %s: %v", relativePath, err)
	}
	return fullPath
}

// AssertOutputContains checks if output contains expected string
func AssertOutputContains(t *testing.T, output, expected, context string) {
	t.Helper()

	if !strings.Contains(output, expected) {
		t.Errorf("%s: output does not contain expected string.\nExpected substring: %q\nActual output:\n%s",
			context, expected, output)
	}
}

// AssertCommandSuccess checks if command succeeded
func AssertCommandSuccess(t *testing.T, err error, stderr, context string) {
	t.Helper()

	if err != nil {
		t.Fatalf("%s: command failed: %v\nStderr: %s", context, err, stderr)
	}
}

// AssertCommandFails checks if command failed as expected
func AssertCommandFails(t *testing.T, err error, context string) {
	t.Helper()

	if err == nil {
		t.Fatalf("%s: expected command to fail, but it succeeded", context)
	}
}
