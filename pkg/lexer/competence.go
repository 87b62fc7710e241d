// Package lexer scans source text into tokens using the union of the
// patterns declared by registered competences, extracting nested
// delimiter-balanced content as it goes.
package lexer

import (
	"regexp"

	"github.com/KodekoStudios/akore/pkg/schema"
)

// Flags configure how a competence tokenizes nested content.
type Flags uint8

const (
	// Unstoppable keeps the nested scan going past characters that
	// match neither delimiter nor inside pattern, dropping them instead
	// of stopping extraction.
	Unstoppable Flags = 1 << iota

	// DirectEntry starts nested extraction immediately after the
	// foremost match without consuming an opener character. It requires
	// a closer pattern.
	DirectEntry
)

// Has reports whether all the given flags are set.
func (f Flags) Has(flags Flags) bool {
	return f&flags == flags
}

// Patterns is the pattern set a competence matches with. Foremost is
// how the lexer finds a token start; the other three drive nested
// extraction and match a single character at a time.
type Patterns struct {
	Foremost *regexp.Regexp // required
	Opener   *regexp.Regexp
	Closer   *regexp.Regexp
	Inside   *regexp.Regexp
}

// Eaters declares adjacency dependencies: identifiers of competences
// whose tokens this competence consumes from its immediate
// neighborhood instead of letting them emit independently.
type Eaters struct {
	Before []string
	After  []string
}

// Resolver converts a matched token into a node. It must be a
// deterministic pure function of the token's content.
type Resolver func(*Token) (schema.Node, error)

// Competence pairs a matching pattern set with the resolve operation
// producing a node from each matched token. Competences are immutable
// once constructed; the driving lexer and driver are passed the token,
// never captured.
type Competence struct {
	Identifier string
	Patterns   Patterns
	Flags      Flags
	Eaters     Eaters
	Resolve    Resolver
}

// validate checks the competence for configuration errors. It runs
// eagerly at declaration so grammar defects surface before any input is
// scanned.
func (c *Competence) validate() error {
	if c.Identifier == "" {
		return &ConfigurationError{Reason: "competence identifier must not be empty"}
	}
	if c.Patterns.Foremost == nil {
		return &ConfigurationError{Competence: c.Identifier, Reason: "foremost pattern is required"}
	}
	if c.Resolve == nil {
		return &ConfigurationError{Competence: c.Identifier, Reason: "resolve operation is required"}
	}
	if c.Flags.Has(DirectEntry) && c.Patterns.Closer == nil {
		return &ConfigurationError{Competence: c.Identifier, Reason: "direct entry requires a closer pattern"}
	}
	return nil
}
