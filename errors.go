package tzkit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrDetachedBigMap indicates a keyed lookup on a big-map reference
	// that carries no on-chain identifier.
	ErrDetachedBigMap = errors.New("tzkit: big map reference has no identifier")

	// ErrNilScript indicates a contract was constructed without a script.
	ErrNilScript = errors.New("tzkit: contract script is nil")
)

// ScriptError indicates a contract script is missing a required toplevel
// section.
type ScriptError struct {
	Section string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("tzkit: contract script has no %s section", e.Section)
}

// MethodNotFoundError indicates the contract doesn't expose the requested
// entrypoint.
type MethodNotFoundError struct {
	Contract string
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("tzkit: method %q not found in contract %s", e.Method, e.Contract)
}

// ArityError indicates an entrypoint was invoked with the wrong number of
// arguments for its schema.
type ArityError struct {
	Entrypoint string
	Got        int
	Want       int
	Keys       []string
}

func (e *ArityError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("tzkit: entrypoint %q expects %d argument(s) (%s), got %d",
			e.Entrypoint, e.Want, strings.Join(e.Keys, ", "), e.Got)
	}
	return fmt.Sprintf("tzkit: entrypoint %q expects %d argument(s), got %d",
		e.Entrypoint, e.Want, e.Got)
}

// CounterError indicates the chain fetch backing a counter's lazy
// initialization failed.
type CounterError struct {
	Account string
	Err     error
}

func (e *CounterError) Error() string {
	return fmt.Sprintf("tzkit: fetching counter for %s: %v", e.Account, e.Err)
}

func (e *CounterError) Unwrap() error {
	return e.Err
}

// PrepareError indicates batch preparation failed at a specific request.
// The batch is discarded whole; no partially annotated output is produced.
type PrepareError struct {
	Index int
	Kind  OpKind
	Err   error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("tzkit: preparing operation %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}

// EncodingError indicates the external schema rejected the captured
// arguments while building a transfer request.
type EncodingError struct {
	Entrypoint string
	Err        error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tzkit: encoding arguments for entrypoint %q: %v", e.Entrypoint, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
