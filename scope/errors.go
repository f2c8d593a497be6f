package scope

import "fmt"

// ArgumentError reports locally detectable misuse of a scoping operation.
// It is always raised before any new parameter set is constructed, so the
// operation either succeeds completely or leaves no partial state.
type ArgumentError struct {
	Op      string // scoping operation that rejected the argument
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument in %s: %s", e.Op, e.Message)
}

// UnhandledCallError reports a call that could not be recognized as a scoping
// operation and could not be forwarded to the remote service. This is a
// terminal condition at this layer.
type UnhandledCallError struct {
	Method string
	Reason string
}

func (e *UnhandledCallError) Error() string {
	return fmt.Sprintf("unhandled call %q: %s", e.Method, e.Reason)
}
