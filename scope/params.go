package scope

import "github.com/hupe1980/remoteobj/mask"

// window is a pagination window. Offset and limit are only ever set together.
type window struct {
	offset int
	limit  int
}

// Params is the immutable bag of scoping parameters accumulated along a
// chain. It is never mutated after construction; every derivation copies the
// existing value and overrides one field. The zero value is a valid empty set.
type Params struct {
	objectID any
	masks    []mask.Node
	window   *window
	filter   Filter
}

// withObjectID derives a set scoped to one remote object.
func (p Params) withObjectID(id any) Params {
	np := p
	np.objectID = id
	return np
}

// withMasks derives a set with nodes appended to the mask sequence. The
// original backing array is never written through: the append always targets
// a fresh slice.
func (p Params) withMasks(nodes []mask.Node) Params {
	np := p
	merged := make([]mask.Node, 0, len(p.masks)+len(nodes))
	merged = append(merged, p.masks...)
	merged = append(merged, nodes...)
	np.masks = merged
	return np
}

// withWindow derives a set with the pagination window set.
func (p Params) withWindow(offset, limit int) Params {
	np := p
	np.window = &window{offset: offset, limit: limit}
	return np
}

// withFilter derives a set with the filter replaced.
func (p Params) withFilter(f Filter) Params {
	np := p
	np.filter = f
	return np
}

// ObjectID returns the accumulated object identifier, if any.
func (p Params) ObjectID() (any, bool) {
	return p.objectID, p.objectID != nil
}

// ObjectMask reduces the accumulated mask sequence and renders its canonical
// string form. Reduction happens here, lazily, so duplicate requests across
// the chain collapse exactly once, at render time. An empty sequence reports
// absent rather than an empty string.
func (p Params) ObjectMask() (string, bool) {
	if len(p.masks) == 0 {
		return "", false
	}
	return mask.Render(mask.Reduce(p.masks)), true
}

// ResultOffset returns the pagination offset, if a window was set.
func (p Params) ResultOffset() (int, bool) {
	if p.window == nil {
		return 0, false
	}
	return p.window.offset, true
}

// ResultLimit returns the pagination limit, if a window was set.
func (p Params) ResultLimit() (int, bool) {
	if p.window == nil {
		return 0, false
	}
	return p.window.limit, true
}

// ObjectFilter converts the filter capability to its plain key/value form.
func (p Params) ObjectFilter() (map[string]any, bool) {
	if p.filter == nil {
		return nil, false
	}
	return p.filter.FilterMap(), true
}
