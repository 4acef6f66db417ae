// Package simerr defines the error-kind taxonomy shared across jobsim's
// packages: input errors, configuration inconsistencies, and invariant
// violations, per the propagation policy of the simulation's error design.
package simerr

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", ErrX) so callers can
// still errors.Is/errors.As across package boundaries.
var (
	// ErrInput marks a malformed duration, unreadable configuration file,
	// or invalid scenario file. Surfaced to the CLI layer; never recovered
	// inside the core.
	ErrInput = errors.New("input error")

	// ErrConfig marks a configuration inconsistency caught at load time:
	// duplicate tier tags, negative capacities, nonpositive lambda.
	ErrConfig = errors.New("configuration error")
)

// Invariant is panicked with when a simulation invariant is violated
// (dispatch to a busy worker, double transition, lost pending job). It is
// always a programming error, never recovered by the core.
type Invariant struct {
	Event string // event type / operation that detected the violation
	Msg   string
}

func (e *Invariant) Error() string {
	if e.Event == "" {
		return "invariant violation: " + e.Msg
	}
	return "invariant violation during " + e.Event + ": " + e.Msg
}

// Raise panics with an *Invariant diagnostic. The core never recovers
// from this itself; a CLI-layer recover may translate it into a clean
// nonzero exit.
func Raise(event, msg string) {
	panic(&Invariant{Event: event, Msg: msg})
}
