package schema

import (
	"log/slog"
	"reflect"
	"sync"
)

// Registry maps node type tags to schemas and memoizes node
// serialization by node identity. It is a composition over private maps
// so registration can warn on overwrites instead of silently replacing
// entries.
//
// The serialization cache assumes single-writer access for the
// registry's lifetime and is never invalidated; bypass it per call with
// Resolve's skipCache argument.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	cache   map[Node]string
	log     *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards the
// non-fatal registration warnings.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		schemas: make(map[string]*Schema),
		cache:   make(map[Node]string),
		log:     logger,
	}
}

// Register adds schemas to the registry. Re-registering a type tag
// overwrites the previous schema with a non-fatal warning.
func (r *Registry) Register(schemas ...*Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range schemas {
		if _, ok := r.schemas[s.ID]; ok {
			r.log.Warn("overwriting registered schema", "type", s.ID)
		}
		r.schemas[s.ID] = s
	}
}

// Lookup returns the schema registered for a type tag.
func (r *Registry) Lookup(tag string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[tag]
	return s, ok
}

// Check reports whether the node's type tag has a registered schema.
// It is a membership test only; the node's value is not compared.
func (r *Registry) Check(n Node) bool {
	_, ok := r.Lookup(n.Type())
	return ok
}

// Validate compares the node's value against its registered schema.
// An unregistered type tag is an error; a shape mismatch is not, it
// simply reports false.
func (r *Registry) Validate(n Node) (bool, error) {
	s, ok := r.Lookup(n.Type())
	if !ok {
		return false, &NotFoundError{Type: n.Type()}
	}
	return s.Compare(n.Value()), nil
}

// Batch validates a collection of nodes, reporting one boolean per
// node. Errors (including unregistered tags) convert to false and never
// propagate.
func (r *Registry) Batch(nodes []Node) []bool {
	out := make([]bool, len(nodes))
	for i, n := range nodes {
		ok, err := r.Validate(n)
		out[i] = err == nil && ok
	}
	return out
}

// Resolve validates the node and returns its serialization, memoized by
// node identity unless skipCache is set. Validation failure is fatal:
// an unregistered tag returns a *NotFoundError and a shape mismatch a
// *ValidationError.
func (r *Registry) Resolve(n Node, skipCache bool) (string, error) {
	s, ok := r.Lookup(n.Type())
	if !ok {
		return "", &NotFoundError{Type: n.Type()}
	}
	if !s.Compare(n.Value()) {
		return "", &ValidationError{
			Type:     n.Type(),
			Expected: s.String("  "),
			Got:      Describe(n.Value()),
		}
	}

	cacheable := reflect.TypeOf(n).Comparable()
	if !skipCache && cacheable {
		r.mu.RLock()
		cached, hit := r.cache[n]
		r.mu.RUnlock()
		if hit {
			return cached, nil
		}
	}

	out := n.Serialize()
	if cacheable {
		r.mu.Lock()
		r.cache[n] = out
		r.mu.Unlock()
	}
	return out, nil
}
