package schema

// Node is the capability a competence's resolver must produce: a type
// tag plus an opaque value that can be serialized back to output text.
//
// A node's value identity is immutable after construction; the registry
// relies on this to cache serialization per node instance. Implementers
// should use pointer receivers so node instances are comparable and
// cacheable.
type Node interface {
	// Type returns the tag the node is validated and registered under.
	Type() string

	// Value returns the structural value checked against the schema
	// registered for Type.
	Value() any

	// Serialize renders the node back to output text.
	Serialize() string

	// Clone returns an independent copy of the node.
	Clone() Node
}
