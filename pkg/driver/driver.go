// Package driver turns token streams into validated nodes: it resolves
// adjacency dependencies between tokens, invokes each competence's
// resolve operation and checks the produced nodes against the schema
// registry.
package driver

import (
	"errors"
	"log/slog"

	"github.com/KodekoStudios/akore/pkg/lexer"
	"github.com/KodekoStudios/akore/pkg/schema"
	"github.com/KodekoStudios/akore/pkg/token"
)

// Config configures a driver.
type Config struct {
	Lexer    *lexer.Lexer
	Registry *schema.Registry

	// Strict rejects non-whitespace text between recognized tokens.
	Strict bool

	// Logger receives resolve failures and defaults to discard.
	Logger *slog.Logger
}

// Driver synthesizes nodes from a lexer's token stream. A single driver
// processes one source string at a time; it keeps no state across
// calls.
type Driver struct {
	lex    *lexer.Lexer
	reg    *schema.Registry
	strict bool
	log    *slog.Logger
}

// New creates a driver from the config.
func New(cfg Config) (*Driver, error) {
	if cfg.Lexer == nil {
		return nil, errors.New("driver: lexer is required")
	}
	if cfg.Registry == nil {
		return nil, errors.New("driver: registry is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{lex: cfg.Lexer, reg: cfg.Registry, strict: cfg.Strict, log: logger}, nil
}

// Lexer returns the driver's lexer, for declaring competences.
func (d *Driver) Lexer() *lexer.Lexer {
	return d.lex
}

// Registry returns the driver's schema registry.
func (d *Driver) Registry() *schema.Registry {
	return d.reg
}

// Parse drains the token stream, resolving adjacency dependencies.
// Tokens consumed by an eater are removed from the result and reachable
// only through the consuming token's Eated lists. Parsing is eager
// because a later token's before-eater may claim any previously
// produced token; no token is final until the stream ends.
func (d *Driver) Parse(stream *lexer.Stream) ([]*lexer.Token, error) {
	var results []*lexer.Token
	for {
		tok, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return results, nil
		}
		if results, err = d.eat(tok, results, stream); err != nil {
			return nil, err
		}
		results = append(results, tok)
	}
}

// eat applies the token's eater declarations: before-eaters pop the
// most recently produced results in reverse, after-eaters pull forward
// from the still-lazy stream. Identifier mismatches are fatal.
func (d *Driver) eat(tok *lexer.Token, results []*lexer.Token, stream *lexer.Stream) ([]*lexer.Token, error) {
	before := tok.Comp.Eaters.Before
	for i := len(before) - 1; i >= 0; i-- {
		if len(results) == 0 {
			return nil, &EaterError{
				Expected: before[i],
				Text:     tok.Total(),
				Pos:      tok.Pos,
				Excerpt:  token.Excerpt(stream.Input(), tok.Pos),
			}
		}
		last := results[len(results)-1]
		results = results[:len(results)-1]
		if last.Comp.Identifier != before[i] {
			return nil, &EaterError{
				Expected: before[i],
				Got:      last.Comp.Identifier,
				Text:     last.Total(),
				Pos:      last.Pos,
				Excerpt:  token.Excerpt(stream.Input(), last.Pos),
			}
		}
		tok.Eated.Before = append([]*lexer.Token{last}, tok.Eated.Before...)
	}

	for _, want := range tok.Comp.Eaters.After {
		next, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, &EndOfInputError{Expected: want, Text: tok.Total(), Pos: tok.Pos}
		}
		if next.Comp.Identifier != want {
			return nil, &EaterError{
				Expected: want,
				Got:      next.Comp.Identifier,
				Text:     next.Total(),
				Pos:      next.Pos,
				Excerpt:  token.Excerpt(stream.Input(), next.Pos),
			}
		}
		tok.Eated.After = append(tok.Eated.After, next)
	}
	return results, nil
}

// Nodes returns a lazy node sequence over the input. Like the token
// stream it is one-shot and forward-only: a fatal error terminates it
// permanently and nodes already yielded remain valid.
func (d *Driver) Nodes(input string) *NodeStream {
	return &NodeStream{d: d, stream: d.lex.Tokenize(input, d.strict)}
}

// NodeStream lazily resolves and validates the surviving tokens of one
// input.
type NodeStream struct {
	d      *Driver
	stream *lexer.Stream
	toks   []*lexer.Token
	parsed bool
	next   int
	err    error
}

// Next produces the next validated node, or (nil, nil) when the input
// is exhausted. Adjacency resolution runs on the first call; resolve
// and schema validation run per node.
func (ns *NodeStream) Next() (schema.Node, error) {
	if ns.err != nil {
		return nil, ns.err
	}
	if !ns.parsed {
		toks, err := ns.d.Parse(ns.stream)
		if err != nil {
			ns.err = err
			return nil, err
		}
		ns.toks = toks
		ns.parsed = true
	}
	if ns.next >= len(ns.toks) {
		return nil, nil
	}

	tok := ns.toks[ns.next]
	ns.next++

	node, err := tok.Comp.Resolve(tok)
	if err != nil {
		rerr := &ResolveError{
			Competence: tok.Comp.Identifier,
			Text:       tok.Total(),
			Pos:        tok.Pos,
			Excerpt:    token.Excerpt(ns.stream.Input(), tok.Pos),
			Err:        err,
		}
		ns.d.log.Error("resolve failed",
			"competence", tok.Comp.Identifier,
			"text", tok.Total(),
			"line", tok.Pos.Line,
			"column", tok.Pos.Column,
			"error", err)
		ns.err = rerr
		return nil, rerr
	}

	if err := ns.nodify(node); err != nil {
		ns.err = err
		return nil, err
	}
	return node, nil
}

// nodify validates a freshly resolved node against the registry.
func (ns *NodeStream) nodify(node schema.Node) error {
	sch, ok := ns.d.reg.Lookup(node.Type())
	if !ok {
		return &schema.NotFoundError{Type: node.Type()}
	}
	if !sch.Compare(node.Value()) {
		return &schema.ValidationError{
			Type:     node.Type(),
			Expected: sch.String("  "),
			Got:      schema.Describe(node.Value()),
		}
	}
	return nil
}
