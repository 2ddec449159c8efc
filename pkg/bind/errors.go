package bind

import "errors"

// Sentinel reasons for construction failures. Wrap checks go through
// errors.Is against the ConfigError returned by the constructors.
var (
	// ErrEmptyGroup is returned when a binding is constructed over zero
	// cells. Behavior of an empty group is undefined, so construction
	// rejects it outright.
	ErrEmptyGroup = errors.New("bind: empty cell group")

	// ErrLengthMismatch is returned when dependents and sinks do not
	// pair up one-to-one.
	ErrLengthMismatch = errors.New("bind: dependents and sinks length mismatch")

	// ErrNilCell is returned when a cell reference in the configuration
	// is nil and therefore cannot support change notification.
	ErrNilCell = errors.New("bind: nil cell")

	// ErrNilFunc is returned when a derivation, predicate, combine
	// function, or sink is nil.
	ErrNilFunc = errors.New("bind: nil derivation or sink")
)

// ConfigError reports an unusable binding configuration. It is returned
// synchronously at construction time, never during a recompute, and
// aborts only the offending binding.
type ConfigError struct {
	Op  string // the constructor that rejected the configuration
	Err error  // the sentinel reason
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the sentinel reason for errors.Is support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// configErr builds a *ConfigError for the given constructor and reason.
func configErr(op string, reason error) error {
	return &ConfigError{Op: op, Err: reason}
}
