package scope

// Filter is the capability a value must carry to act as an object filter:
// conversion to a plain key/value structure for transmission. A scope keeps
// at most one filter; a later WithObjectFilter replaces an earlier one.
type Filter interface {
	FilterMap() map[string]any
}

// MapFilter is the plain map implementation of Filter. Nested maps express
// per-property predicates, e.g.:
//
//	scope.MapFilter{"domain": map[string]any{"operation": "example.org"}}
type MapFilter map[string]any

// FilterMap implements Filter. The returned map is a shallow copy so the
// rendered structure handed to a transport cannot mutate the filter itself.
func (f MapFilter) FilterMap() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// PropertyFilter builds a MapFilter matching one property against an
// operation value, the most common single-predicate case.
func PropertyFilter(property string, operation any) MapFilter {
	return MapFilter{property: map[string]any{"operation": operation}}
}
