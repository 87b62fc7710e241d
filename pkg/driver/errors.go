package driver

import (
	"fmt"

	"github.com/KodekoStudios/akore/pkg/token"
)

// EaterError reports an adjacency dependency that could not be
// satisfied: a declared eater found a token with the wrong identifier,
// or nothing at all where a preceding token was required.
type EaterError struct {
	Expected string // competence identifier the eater declared
	Got      string // identifier actually found, empty when none
	Text     string // offending token's text
	Pos      token.Position
	Excerpt  string
}

func (e *EaterError) Error() string {
	msg := fmt.Sprintf("unexpected token %q at %s: expected %q", e.Text, e.Pos, e.Expected)
	if e.Got == "" {
		msg = fmt.Sprintf("illegal token %q at %s: expected a preceding %q token", e.Text, e.Pos, e.Expected)
	}
	if e.Excerpt != "" {
		msg += "\n" + e.Excerpt
	}
	return msg
}

// EndOfInputError reports a stream exhausted mid-expectation while an
// after-eater was still pulling tokens.
type EndOfInputError struct {
	Expected string
	Text     string // token whose eater ran out of input
	Pos      token.Position
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input: expected %q after token %q at %s", e.Expected, e.Text, e.Pos)
}

// ResolveError reports a competence's resolve operation failing on a
// token. Further synthesis stops; previously yielded nodes remain
// valid.
type ResolveError struct {
	Competence string
	Text       string
	Pos        token.Position
	Excerpt    string
	Err        error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("competence %q failed to resolve token %q at %s: %v", e.Competence, e.Text, e.Pos, e.Err)
	if e.Excerpt != "" {
		msg += "\n" + e.Excerpt
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
