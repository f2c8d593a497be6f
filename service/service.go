package service

import (
	"context"
	"fmt"
)

// Params is the read-only view of accumulated scoping parameters a transport
// consults while building the wire request. Each accessor reports whether the
// value was ever supplied; an absent mask yields ("", false), never "".
type Params interface {
	// ObjectID returns the identifier scoping the call to one remote object.
	ObjectID() (any, bool)

	// ObjectMask returns the reduced, canonically rendered object mask.
	ObjectMask() (string, bool)

	// ResultOffset and ResultLimit describe the pagination window. They are
	// always set or unset together.
	ResultOffset() (int, bool)
	ResultLimit() (int, bool)

	// ObjectFilter returns the filter predicate as a plain key/value
	// structure ready for transmission.
	ObjectFilter() (map[string]any, bool)
}

// Service executes remote-object method invocations. Implementations are
// expected to be safe for use from a single goroutine at a time; callers that
// share one across goroutines must synchronize externally.
type Service interface {
	// Name identifies which remote service an eventual call targets.
	Name() string

	// Invoke executes method with the accumulated parameters and positional
	// arguments, returning the decoded result or a *TransportError.
	Invoke(ctx context.Context, method string, params Params, args []any) (any, error)
}

// TransportError reports a wire-level or remote-side failure. The scoping
// layer never produces one; it only passes them through unchanged.
type TransportError struct {
	Service string
	Method  string
	Status  int    // HTTP status or transport-specific code, 0 if unknown
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("transport error [%d] in %s.%s: %s", e.Status, e.Service, e.Method, msg)
	}
	return fmt.Sprintf("transport error in %s.%s: %s", e.Service, e.Method, msg)
}

func (e *TransportError) Unwrap() error { return e.Cause }
