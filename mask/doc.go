// Package mask implements the extended object mask language used to describe
// which fields and subobjects a remote-object call should return.
//
// A mask is a small tree-structured expression. The two fragment forms are:
//
//	mask[prop1,prop2[nestedA,nestedB]]   // default (untyped) mask
//	mask(TypeName).prop[nestedA]         // mask scoped to a named type
//
// Several independent fragments may appear in one string, concatenated or
// comma-separated. Parse turns such a string into one Node per top-level
// fragment; Reduce merges any number of parsed trees into a minimal,
// duplicate-free set; Render produces the canonical string sent to the remote
// side. Remote services reject a mask that names the same property twice
// within one type scope, so callers should always render through Reduce.
package mask
