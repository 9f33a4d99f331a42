package matching

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound signals the talent has no profile to match against. It
// is an expected outcome for unregistered talents, not a system failure.
var ErrProfileNotFound = errors.New("talent profile not found")

// DataUnavailableError reports a failed or timed-out collaborator read. The
// current matching request cannot proceed; the engine never retries or
// returns partial results.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable: %s: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ConfigurationError reports a malformed weight profile at construction time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "weight configuration: " + e.Reason
}
