package watch

import "github.com/agilira/go-errors"

// Error codes for the watch package.
const (
	ErrCodeSignal errors.ErrorCode = "WATCH_SIGNAL_ERROR"
)

// NewErrSignal wraps a failure from the OS-notify backend, surfaced at
// Watcher construction time.
func NewErrSignal(cause error) error {
	return errors.Wrap(cause, ErrCodeSignal, "filesystem watch backend failed")
}

// IsSignalError reports whether err is a SignalError.
func IsSignalError(err error) bool {
	return errors.HasCode(err, ErrCodeSignal)
}
