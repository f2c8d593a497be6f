package mask

// Reduce merges a sequence of mask trees into a minimal, duplicate-free
// sequence. A single left-to-right pass places each incoming node into the
// first accumulator node sharing its type scope (untyped matches untyped),
// unioning their properties by name and merging nested sub-masks recursively;
// a node with an unseen scope is appended. The pass is stable and
// deterministic: accumulator order wins, new properties are appended.
//
// Reduce never mutates its input; merged output is built from cloned nodes,
// so sequences held elsewhere are unaffected. Reducing an already-reduced
// sequence yields an equal sequence.
func Reduce(nodes []Node) []Node {
	var acc []Node
	for _, in := range nodes {
		merged := false
		for i := range acc {
			if acc[i].TypeScope == in.TypeScope {
				for _, p := range in.Properties {
					acc[i].Properties = addProperty(acc[i].Properties, p)
				}
				merged = true
				break
			}
		}
		if !merged {
			acc = append(acc, in.Clone())
		}
	}
	return acc
}

// addProperty unions one incoming property into an owned property list. When
// the name is already present the two sub-mask sequences are merged with
// Reduce; otherwise a clone of the property is appended. The list passed in
// must be owned by the caller (cloned), as the merge writes into it.
func addProperty(props []Property, in Property) []Property {
	for i := range props {
		if props[i].Name != in.Name {
			continue
		}
		if len(in.SubMask) == 0 {
			return props
		}
		combined := make([]Node, 0, len(props[i].SubMask)+len(in.SubMask))
		combined = append(combined, props[i].SubMask...)
		combined = append(combined, in.SubMask...)
		props[i].SubMask = Reduce(combined)
		return props
	}
	return append(props, in.Clone())
}

// Render produces the canonical string form of a reduced mask sequence: a
// single node renders as itself, several nodes render as a bracketed
// comma-joined list, and an empty sequence renders as the empty string
// (callers treat that as an absent mask).
func Render(nodes []Node) string {
	switch len(nodes) {
	case 0:
		return ""
	case 1:
		return nodes[0].String()
	}
	out := "["
	for i, n := range nodes {
		if i > 0 {
			out += ","
		}
		out += n.String()
	}
	return out + "]"
}
