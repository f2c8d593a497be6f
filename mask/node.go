package mask

import "strings"

// Node is one top-level fragment of an extended object mask: an optional type
// scope plus an ordered list of requested properties. Property names are
// unique within a node; Parse and Reduce both maintain that invariant.
type Node struct {
	// TypeScope is the type name the fragment is scoped to. Empty for the
	// default (untyped) mask.
	TypeScope string

	// Properties holds the requested properties in insertion order.
	Properties []Property
}

// Property is a single requested property, optionally carrying a nested
// sub-mask describing which of its own fields to return.
type Property struct {
	Name    string
	SubMask []Node
}

// Clone returns a deep copy of the node. Reduce merges into freshly cloned
// nodes so that caller-held sequences are never mutated.
func (n Node) Clone() Node {
	c := Node{TypeScope: n.TypeScope}
	if n.Properties != nil {
		c.Properties = make([]Property, len(n.Properties))
		for i, p := range n.Properties {
			c.Properties[i] = p.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the property and its sub-mask.
func (p Property) Clone() Property {
	c := Property{Name: p.Name}
	if p.SubMask != nil {
		c.SubMask = make([]Node, len(p.SubMask))
		for i, sub := range p.SubMask {
			c.SubMask[i] = sub.Clone()
		}
	}
	return c
}

// String renders the node in canonical form: mask[a,b[c]] for untyped nodes,
// mask(Type).prop for a typed node with a single property and
// mask(Type)[a,b] when a typed node has accumulated several.
func (n Node) String() string {
	var b strings.Builder
	b.WriteString("mask")
	n.writeBody(&b)
	return b.String()
}

func (n Node) writeBody(b *strings.Builder) {
	if n.TypeScope != "" {
		b.WriteByte('(')
		b.WriteString(n.TypeScope)
		b.WriteByte(')')
		if len(n.Properties) == 1 {
			b.WriteByte('.')
			n.Properties[0].write(b)
			return
		}
	}
	writePropertyList(b, n.Properties)
}

// writeInner renders the node as it appears inside a sub-mask bracket list,
// where the enclosing property already supplies the brackets.
func (n Node) writeInner(b *strings.Builder) {
	if n.TypeScope != "" {
		n.writeBody(b)
		return
	}
	for i, p := range n.Properties {
		if i > 0 {
			b.WriteByte(',')
		}
		p.write(b)
	}
}

func (p Property) write(b *strings.Builder) {
	b.WriteString(p.Name)
	if len(p.SubMask) == 0 {
		return
	}
	b.WriteByte('[')
	for i, sub := range p.SubMask {
		if i > 0 {
			b.WriteByte(',')
		}
		sub.writeInner(b)
	}
	b.WriteByte(']')
}

func writePropertyList(b *strings.Builder, props []Property) {
	b.WriteByte('[')
	for i, p := range props {
		if i > 0 {
			b.WriteByte(',')
		}
		p.write(b)
	}
	b.WriteByte(']')
}
