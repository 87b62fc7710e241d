package schema

import "fmt"

// NotFoundError reports a validate or resolve against a type tag that
// has no registered schema.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no schema registered for type %q", e.Type)
}

// ValidationError reports a node whose value disagrees with its
// registered schema. Expected holds the rendered structural shape and
// Got a type description of the received value.
type ValidationError struct {
	Type     string
	Expected string
	Got      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("value of node type %q does not match its schema: expected %s, got %s", e.Type, e.Expected, e.Got)
}
