// Package schema provides structural type descriptors for node values
// and a registry that validates nodes and memoizes their serialization.
package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Spec is a structural type specification. Exactly four kinds are
// understood:
//
//   - a primitive kind name string ("string", "number", "bool",
//     "array", "object", "func", "nil"): the value must report that
//     kind;
//   - a []Spec: the value must be an array or slice; with one element
//     spec every element must match it, with several each element must
//     match at least one (union);
//   - a map[string]Spec: the value must be a non-nil keyed structure
//     containing every spec key, each compared recursively;
//   - a reflect.Type capability reference: interface types accept any
//     implementation, concrete types require assignability.
//
// Anything else compares false; no fifth kind silently passes.
type Spec = any

// Schema pairs an identifier with a structural specification. Schemas
// are pure comparators and hold no mutable state.
type Schema struct {
	ID   string
	Spec Spec
}

// New creates a schema for the given type tag.
func New(id string, spec Spec) *Schema {
	return &Schema{ID: id, Spec: spec}
}

// primitiveKinds is the vocabulary KindOf reports.
var primitiveKinds = map[string]struct{}{
	"string": {},
	"number": {},
	"bool":   {},
	"array":  {},
	"object": {},
	"func":   {},
	"nil":    {},
}

// KindOf reports the primitive kind name of a value.
func KindOf(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "bool"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Func:
		return "func"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return KindOf(rv.Elem().Interface())
	default:
		return rv.Kind().String()
	}
}

// Capability returns a capability reference spec for T. T is usually an
// interface type, in which case any implementation satisfies it.
func Capability[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NodeCapability is the capability reference for the base Node
// interface. Satisfaction is structural: any value implementing the
// four Node operations matches, regardless of its concrete type.
func NodeCapability() reflect.Type {
	return Capability[Node]()
}

// Compare reports whether the value matches the schema's spec. It never
// panics and never errors; unknown spec kinds compare false.
//
// A string spec is compared as a primitive kind name only. A string
// that is not a kind name is rendered quoted by String but matches no
// value; literal-value equality is intentionally not performed.
func (s *Schema) Compare(value any) bool {
	return match(s.Spec, value)
}

func match(spec Spec, value any) bool {
	switch sp := spec.(type) {
	case string:
		return KindOf(value) == sp

	case []Spec:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return false
		}
		if len(sp) == 0 {
			return true
		}
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if len(sp) == 1 {
				if !match(sp[0], elem) {
					return false
				}
				continue
			}
			if !matchAny(sp, elem) {
				return false
			}
		}
		return true

	case map[string]Spec:
		return matchObject(sp, value)

	case reflect.Type:
		t := reflect.TypeOf(value)
		if t == nil {
			return false
		}
		if sp.Kind() == reflect.Interface {
			return t.Implements(sp)
		}
		return t.AssignableTo(sp)

	default:
		return false
	}
}

func matchAny(specs []Spec, value any) bool {
	for _, sp := range specs {
		if match(sp, value) {
			return true
		}
	}
	return false
}

// matchObject checks a plain-object spec against a string-keyed map or
// a struct. Every key present in the spec must exist in the value.
func matchObject(spec map[string]Spec, value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return false
		}
		for key, sub := range spec {
			fv := rv.MapIndex(reflect.ValueOf(key))
			if !fv.IsValid() {
				return false
			}
			if !match(sub, fv.Interface()) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for key, sub := range spec {
			fv := rv.FieldByName(key)
			if !fv.IsValid() || !fv.CanInterface() {
				return false
			}
			if !match(sub, fv.Interface()) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// String renders the spec as a readable pseudo-type for diagnostics.
// The rendering is not used during comparison.
func (s *Schema) String(indent string) string {
	return renderSpec(s.Spec, indent, 0)
}

func renderSpec(spec Spec, indent string, depth int) string {
	switch sp := spec.(type) {
	case string:
		if _, ok := primitiveKinds[sp]; ok {
			return sp
		}
		return fmt.Sprintf("%q", sp)

	case []Spec:
		if len(sp) == 0 {
			return "[]"
		}
		parts := make([]string, len(sp))
		for i, sub := range sp {
			parts[i] = renderSpec(sub, indent, depth)
		}
		return "[" + strings.Join(parts, " | ") + "]"

	case map[string]Spec:
		if len(sp) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(sp))
		for key := range sp {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		pad := strings.Repeat(indent, depth)
		var b strings.Builder
		b.WriteString("{\n")
		for _, key := range keys {
			fmt.Fprintf(&b, "%s%s%s: %s\n", pad, indent, key, renderSpec(sp[key], indent, depth+1))
		}
		b.WriteString(pad + "}")
		return b.String()

	case reflect.Type:
		return sp.String()

	default:
		return fmt.Sprintf("<invalid spec %T>", spec)
	}
}

// Describe renders a short type description of a received value for
// mismatch diagnostics.
func Describe(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%s (%T)", KindOf(value), value)
}
