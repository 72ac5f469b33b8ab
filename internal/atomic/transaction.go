// Package atomic groups output files so that either all of them appear at
// their final paths or none do. Each file is staged beside its destination
// and promoted with a rename on Commit.
package atomic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

type State string

const (
	StatePending    State = "pending"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
	StateFailed     State = "failed"
)

// ErrNotPending is returned when staging or committing a finished transaction.
var ErrNotPending = errors.New("transaction is not pending")

type entry struct {
	finalPath  string
	stagedPath string
	perm       os.FileMode
	closed     bool
}

// Transaction stages output files until Commit or Rollback.
type Transaction struct {
	mu      sync.Mutex
	state   State
	entries []*entry
}

// Begin starts an empty transaction.
func Begin() *Transaction {
	return &Transaction{state: StatePending}
}

// State returns the current transaction state.
func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// StageCreate opens a staging file for finalPath. The caller must Close the
// writer before Commit.
func (t *Transaction) StageCreate(finalPath string, perm os.FileMode) (io.WriteCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePending {
		return nil, ErrNotPending
	}

	dir := filepath.Dir(finalPath)
	staged := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(finalPath), uuid.New().String()))
	f, err := os.OpenFile(staged, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return nil, fmt.Errorf("stage create open: %w", err)
	}

	e := &entry{finalPath: finalPath, stagedPath: staged, perm: perm}
	t.entries = append(t.entries, e)
	return &stagedWriter{f: f, t: t, e: e}, nil
}

// StageBytes stages data for finalPath in one call.
func (t *Transaction) StageBytes(finalPath string, data []byte, perm os.FileMode) error {
	w, err := t.StageCreate(finalPath, perm)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("stage write %s: %w", finalPath, err)
	}
	return w.Close()
}

type stagedWriter struct {
	f *os.File
	t *Transaction
	e *entry
}

func (sw *stagedWriter) Write(b []byte) (int, error) { return sw.f.Write(b) }
func (sw *stagedWriter) Close() error {
	if err := sw.f.Sync(); err != nil {
		_ = sw.f.Close()
		return err
	}
	if err := sw.f.Close(); err != nil {
		return err
	}
	sw.t.mu.Lock()
	sw.e.closed = true
	sw.t.mu.Unlock()
	return nil
}

// Commit promotes every staged file to its final path. On failure the files
// already promoted are removed and the remaining staging files discarded.
func (t *Transaction) Commit() error {
	t.mu.Lock()
	if t.state != StatePending {
		t.mu.Unlock()
		return fmt.Errorf("cannot commit in state %s: %w", t.state, ErrNotPending)
	}
	entries := append([]*entry(nil), t.entries...)
	t.mu.Unlock()

	for _, e := range entries {
		if !e.closed {
			return t.fail(fmt.Errorf("staged file for %s was not closed", e.finalPath), nil)
		}
	}

	var promoted []*entry
	for _, e := range entries {
		if err := os.Rename(e.stagedPath, e.finalPath); err != nil {
			return t.fail(fmt.Errorf("commit promote %s: %w", e.finalPath, err), promoted)
		}
		promoted = append(promoted, e)
	}

	t.mu.Lock()
	t.state = StateCommitted
	t.mu.Unlock()
	return nil
}

// Rollback discards every staging file. It is a no-op after Commit.
func (t *Transaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePending && t.state != StateFailed {
		return nil
	}

	var errs []error
	for _, e := range t.entries {
		if err := os.Remove(e.stagedPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	t.state = StateRolledBack
	return errors.Join(errs...)
}

func (t *Transaction) fail(err error, promoted []*entry) error {
	for _, e := range promoted {
		_ = os.Remove(e.finalPath)
	}
	t.mu.Lock()
	t.state = StateFailed
	t.mu.Unlock()
	_ = t.Rollback()
	return err
}

// WriteFile writes data to path through a single-file transaction.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	txn := Begin()
	if err := txn.StageBytes(path, data, perm); err != nil {
		_ = txn.Rollback()
		return err
	}
	return txn.Commit()
}
