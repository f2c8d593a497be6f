package service

import "context"

// RecordedCall is a snapshot of one forwarded invocation as seen by a Mock.
// Parameter values are captured at invoke time so later chaining on the
// caller side cannot alter the record.
type RecordedCall struct {
	Method string
	Args   []any

	ObjectID    any
	HasObjectID bool

	Mask    string
	HasMask bool

	Offset    int
	Limit     int
	HasWindow bool

	Filter    map[string]any
	HasFilter bool
}

// Mock is a lightweight in-memory Service useful for tests & examples. It
// returns canned results per method name and records every invocation.
type Mock struct {
	name      string
	responses map[string]any
	failures  map[string]error

	// Calls holds one entry per Invoke in arrival order.
	Calls []RecordedCall
}

// NewMock constructs a Mock service with the given service name.
func NewMock(name string) *Mock {
	return &Mock{
		name:      name,
		responses: make(map[string]any),
		failures:  make(map[string]error),
	}
}

// AddResponse registers a deterministic canned result for a method.
func (m *Mock) AddResponse(method string, result any) { m.responses[method] = result }

// FailWith makes a method return err instead of a result.
func (m *Mock) FailWith(method string, err error) { m.failures[method] = err }

// Name implements Service.
func (m *Mock) Name() string { return m.name }

// Invoke implements Service; it snapshots the parameter view, records the
// call and returns the canned result (nil if none was registered).
func (m *Mock) Invoke(_ context.Context, method string, params Params, args []any) (any, error) {
	rec := RecordedCall{Method: method, Args: args}
	if params != nil {
		rec.ObjectID, rec.HasObjectID = params.ObjectID()
		rec.Mask, rec.HasMask = params.ObjectMask()
		if off, ok := params.ResultOffset(); ok {
			rec.Offset = off
			rec.Limit, _ = params.ResultLimit()
			rec.HasWindow = true
		}
		rec.Filter, rec.HasFilter = params.ObjectFilter()
	}
	m.Calls = append(m.Calls, rec)

	if err, ok := m.failures[method]; ok {
		return nil, err
	}
	return m.responses[method], nil
}
