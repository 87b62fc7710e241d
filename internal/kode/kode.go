// Package kode ships the built-in grammar the akore CLI drives: a
// literal(...) competence and a { ... } block competence, both
// producing plain text nodes. Library users declare their own
// competences against pkg/lexer instead.
package kode

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/KodekoStudios/akore/pkg/driver"
	"github.com/KodekoStudios/akore/pkg/lexer"
	"github.com/KodekoStudios/akore/pkg/schema"
)

// TypeText is the type tag of the text nodes both competences produce.
const TypeText = "kode.text"

// TextNode carries a plain text value serialized verbatim.
type TextNode struct {
	text string
}

// NewText creates a text node.
func NewText(text string) *TextNode {
	return &TextNode{text: text}
}

func (n *TextNode) Type() string { return TypeText }

func (n *TextNode) Value() any { return n.text }

func (n *TextNode) Serialize() string { return n.text }

func (n *TextNode) Clone() schema.Node {
	copied := *n
	return &copied
}

// Literal recognizes literal(...) and resolves to the extracted
// parenthesized content.
func Literal() *lexer.Competence {
	return &lexer.Competence{
		Identifier: "literal",
		Patterns: lexer.Patterns{
			Foremost: regexp.MustCompile(`literal`),
			Opener:   regexp.MustCompile(`\(`),
			Closer:   regexp.MustCompile(`\)`),
		},
		Flags: lexer.Unstoppable,
		Resolve: func(t *lexer.Token) (schema.Node, error) {
			return NewText(t.Inside), nil
		},
	}
}

// Block recognizes { ... } with balanced nesting and resolves to the
// block body with leading indentation dropped.
func Block() *lexer.Competence {
	return &lexer.Competence{
		Identifier: "block",
		Patterns: lexer.Patterns{
			Foremost: regexp.MustCompile(`\{`),
			Opener:   regexp.MustCompile(`\{`),
			Closer:   regexp.MustCompile(`\}`),
		},
		Flags: lexer.DirectEntry | lexer.Unstoppable,
		Resolve: func(t *lexer.Token) (schema.Node, error) {
			return NewText(strings.TrimLeft(t.Inside, " \t\n")), nil
		},
	}
}

// New assembles a ready-to-run driver over the built-in grammar.
func New(logger *slog.Logger, strict bool) (*driver.Driver, error) {
	lex := lexer.New(logger)
	if err := lex.Declare(Literal(), Block()); err != nil {
		return nil, err
	}

	reg := schema.NewRegistry(logger)
	reg.Register(schema.New(TypeText, "string"))

	return driver.New(driver.Config{
		Lexer:    lex,
		Registry: reg,
		Strict:   strict,
		Logger:   logger,
	})
}
