package live

import "github.com/agilira/go-errors"

// Error codes for the live package's controllers.
const (
	ErrCodeBuilder       errors.ErrorCode = "LIVE_BUILDER"
	ErrCodeNotLoaded     errors.ErrorCode = "LIVE_NOT_LOADED"
	ErrCodeLimitExceeded errors.ErrorCode = "LIVE_LIMIT_EXCEEDED"
)

// NewErrBuilder reports a missing required field on a controller builder.
func NewErrBuilder(missing string) error {
	return errors.NewWithField(ErrCodeBuilder, "missing required builder field", "field", missing)
}

// NewErrNotLoaded reports that Watch was called before Load established a
// source path to watch.
func NewErrNotLoaded() error {
	return errors.NewWithContext(ErrCodeNotLoaded, "config not loaded yet; call Load before Watch", nil)
}

// NewErrLimitExceeded reports that a directory scan exceeded MaxEntries.
func NewErrLimitExceeded(dir string, max int) error {
	return errors.NewWithContext(ErrCodeLimitExceeded, "directory exceeds configured entry limit", map[string]any{
		"dir": dir,
		"max": max,
	})
}

// IsBuilderError reports whether err came from an incomplete builder.
func IsBuilderError(err error) bool {
	return errors.HasCode(err, ErrCodeBuilder)
}

// IsNotLoaded reports whether err is a premature-Watch error.
func IsNotLoaded(err error) bool {
	return errors.HasCode(err, ErrCodeNotLoaded)
}

// IsLimitExceeded reports whether err is a MaxEntries violation.
func IsLimitExceeded(err error) bool {
	return errors.HasCode(err, ErrCodeLimitExceeded)
}
