package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"
)

// Options configures progress bar behavior
type Options struct {
	Quiet   bool
	Verbose bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Manager handles progress bars and cancellation
type Manager struct {
	options    Options
	bar        *progressbar.ProgressBar
	cancelFunc context.CancelFunc
	cancelled  bool
	cancelMux  sync.Mutex
	signalChan chan os.Signal
}

// NewManager creates a new progress manager
func NewManager(options Options) *Manager {
	if options.Output == nil {
		options.Output = os.Stderr
	}
	return &Manager{
		options:    options,
		signalChan: make(chan os.Signal, 1),
	}
}

// SetupCancellation sets up signal handling for cancellation
func (pm *Manager) SetupCancellation(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	pm.cancelFunc = cancel

	signal.Notify(pm.signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-pm.signalChan:
			pm.cancelMux.Lock()
			pm.cancelled = true
			pm.cancelMux.Unlock()
			fmt.Fprintln(pm.options.Output, "\nOperation cancelled by user")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// IsCancelled checks if the operation was cancelled
func (pm *Manager) IsCancelled() bool {
	pm.cancelMux.Lock()
	defer pm.cancelMux.Unlock()
	return pm.cancelled
}

// Cleanup removes signal handlers
func (pm *Manager) Cleanup() {
	signal.Stop(pm.signalChan)
	if pm.cancelFunc != nil {
		pm.cancelFunc()
	}
}

// WrapReader returns r wrapped so that reads advance a byte-count progress
// bar of totalBytes. In quiet mode r is returned unchanged.
func (pm *Manager) WrapReader(r io.Reader, totalBytes int64, description string) io.Reader {
	if pm == nil || pm.options.Quiet {
		return r
	}

	out := pm.options.Output
	pm.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)

	reader := progressbar.NewReader(r, pm.bar)
	return &reader
}

// Finish marks the current bar as complete
func (pm *Manager) Finish() {
	if pm == nil || pm.options.Quiet || pm.bar == nil {
		return
	}
	// #nosec G104 - progress bar errors are not critical for functionality
	pm.bar.Finish()
}

// PrintVerbose prints verbose information if verbose mode is enabled
func (pm *Manager) PrintVerbose(format string, args ...interface{}) {
	if !pm.options.Verbose {
		return
	}
	if pm.bar != nil {
		// #nosec G104 - progress bar clear is not critical for functionality
		pm.bar.Clear()
	}

	fmt.Fprintf(pm.options.Output, format, args...)
	if len(format) == 0 || format[len(format)-1] != '\n' {
		fmt.Fprintln(pm.options.Output)
	}
}

// PrintInfo prints informational messages (unless quiet mode)
func (pm *Manager) PrintInfo(format string, args ...interface{}) {
	if pm.options.Quiet {
		return
	}
	if pm.bar != nil {
		// #nosec G104 - progress bar clear is not critical for functionality
		pm.bar.Clear()
	}
	fmt.Fprintf(pm.options.Output, format, args...)
}
