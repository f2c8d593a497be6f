package scope

import (
	"context"
	"reflect"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/hupe1980/remoteobj/logging"
	"github.com/hupe1980/remoteobj/mask"
	"github.com/hupe1980/remoteobj/service"
)

// Options configure a Scope chain.
type Options struct {
	// Logger receives debug/outcome records for forwarded calls. Defaults to
	// NoOpLogger if nil.
	Logger logging.Logger
}

// Scope is one link of a parameter filter chain: a service target plus an
// immutable parameter set. Scoping methods return a new Scope sharing the
// same target; Call forwards a method invocation carrying the accumulated
// parameters. A Scope is stateless beyond those two references and safe to
// share once handed out.
type Scope struct {
	target service.Service
	params Params
	logger logging.Logger
}

// Scope exposes the render accessors transports consult at request-build time.
var _ service.Params = (*Scope)(nil)

// New creates an empty Scope over a service target.
func New(target service.Service, optFns ...func(o *Options)) *Scope {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Scope{target: target, logger: opts.Logger}
}

// ServiceName relays the target's service name.
func (s *Scope) ServiceName() string { return s.target.Name() }

func (s *Scope) derive(p Params) *Scope {
	return &Scope{target: s.target, params: p, logger: s.logger}
}

// WithObjectID returns a new Scope restricted to one remote object.
func (s *Scope) WithObjectID(id any) (*Scope, error) {
	if id == nil {
		return nil, &ArgumentError{Op: "WithObjectID", Message: "object id must not be nil"}
	}
	return s.derive(s.params.withObjectID(id)), nil
}

// WithMasks parses each extended mask string and returns a new Scope with the
// resulting trees appended to the accumulated mask sequence. The sequence is
// not reduced here; reduction happens when the mask is rendered. Validation
// and parsing complete before any new set is built, so a failure leaves the
// receiving Scope fully usable.
func (s *Scope) WithMasks(masks ...string) (*Scope, error) {
	if len(masks) == 0 {
		return nil, &ArgumentError{Op: "WithMasks", Message: "at least one mask string is required"}
	}
	var nodes []mask.Node
	for _, m := range masks {
		if m == "" {
			return nil, &ArgumentError{Op: "WithMasks", Message: "mask strings must be non-empty"}
		}
		parsed, err := mask.Parse(m)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, parsed...)
	}
	return s.derive(s.params.withMasks(nodes)), nil
}

// WithResultWindow returns a new Scope with the pagination window set. Offset
// and limit are always set together; range enforcement beyond non-negativity
// is the remote side's business.
func (s *Scope) WithResultWindow(offset, limit int) (*Scope, error) {
	if offset < 0 || limit < 0 {
		return nil, &ArgumentError{Op: "WithResultWindow", Message: "offset and limit must be non-negative"}
	}
	return s.derive(s.params.withWindow(offset, limit)), nil
}

// WithObjectFilter returns a new Scope with the object filter replaced. An
// earlier filter is discarded, never merged.
func (s *Scope) WithObjectFilter(f Filter) (*Scope, error) {
	if f == nil {
		return nil, &ArgumentError{Op: "WithObjectFilter", Message: "filter must not be nil"}
	}
	return s.derive(s.params.withFilter(f)), nil
}

// Call forwards a remote method invocation to the target, carrying this
// scope's accumulated parameters and the positional arguments. Method names
// without a single alphanumeric character, and func-valued arguments (a
// continuation cannot travel over a wire), are refused with
// *UnhandledCallError. Transport and service errors from the target propagate
// unchanged.
func (s *Scope) Call(ctx context.Context, method string, args ...any) (any, error) {
	if !forwardable(method) {
		return nil, &UnhandledCallError{Method: method, Reason: "method name contains no alphanumeric characters"}
	}
	for _, a := range args {
		if a != nil && reflect.TypeOf(a).Kind() == reflect.Func {
			return nil, &UnhandledCallError{Method: method, Reason: "func arguments cannot be forwarded"}
		}
	}

	callID := uuid.NewString()
	s.logger.Debug("forwarding call", "service", s.target.Name(), "method", method, "call_id", callID)

	start := time.Now()
	res, err := s.target.Invoke(ctx, method, s, args)
	if err != nil {
		s.logger.Error("call failed", "service", s.target.Name(), "method", method, "call_id", callID, "duration", time.Since(start), "error", err)
		return nil, err
	}
	s.logger.Debug("call completed", "service", s.target.Name(), "method", method, "call_id", callID, "duration", time.Since(start))
	return res, nil
}

func forwardable(method string) bool {
	for _, r := range method {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ObjectID implements service.Params.
func (s *Scope) ObjectID() (any, bool) { return s.params.ObjectID() }

// ObjectMask implements service.Params.
func (s *Scope) ObjectMask() (string, bool) { return s.params.ObjectMask() }

// ResultOffset implements service.Params.
func (s *Scope) ResultOffset() (int, bool) { return s.params.ResultOffset() }

// ResultLimit implements service.Params.
func (s *Scope) ResultLimit() (int, bool) { return s.params.ResultLimit() }

// ObjectFilter implements service.Params.
func (s *Scope) ObjectFilter() (map[string]any, bool) { return s.params.ObjectFilter() }
