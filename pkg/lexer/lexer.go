package lexer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/KodekoStudios/akore/pkg/token"
)

// Lexer holds an ordered identifier→competence map. Registration order
// is precedence order when several competences accept the same match.
type Lexer struct {
	order []string
	comps map[string]*Competence
	log   *slog.Logger
}

// New creates an empty lexer. A nil logger discards the non-fatal
// warnings (redeclarations, unknown undeclarations, unmatched raw
// alternatives).
func New(logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lexer{comps: make(map[string]*Competence), log: logger}
}

// Declare registers competences. Each is validated eagerly; the first
// configuration error aborts the call. Re-declaring an identifier
// overwrites the previous competence with a non-fatal warning, keeping
// its registration position.
func (l *Lexer) Declare(comps ...*Competence) error {
	for _, c := range comps {
		if err := c.validate(); err != nil {
			return err
		}
		if _, ok := l.comps[c.Identifier]; ok {
			l.log.Warn("overwriting declared competence", "competence", c.Identifier)
		} else {
			l.order = append(l.order, c.Identifier)
		}
		l.comps[c.Identifier] = c
	}
	return nil
}

// Undeclare removes competences by identifier. Unknown identifiers warn
// without effect.
func (l *Lexer) Undeclare(ids ...string) {
	for _, id := range ids {
		if _, ok := l.comps[id]; !ok {
			l.log.Warn("undeclaring unknown competence", "competence", id)
			continue
		}
		delete(l.comps, id)
		for i, existing := range l.order {
			if existing == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Lookup returns the competence declared under an identifier.
func (l *Lexer) Lookup(id string) (*Competence, bool) {
	c, ok := l.comps[id]
	return c, ok
}

// Competences returns the declared competences in registration order.
func (l *Lexer) Competences() []*Competence {
	out := make([]*Competence, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.comps[id])
	}
	return out
}

// Tokenize scans the input lazily. The returned stream is forward-only
// and one-shot: scan state is mutated in place, so it cannot be
// restarted or iterated twice. In strict mode any non-whitespace text
// the combined pattern skipped over is a fatal gap error.
//
// The combined pattern is rebuilt per call from the foremost sources in
// registration order, so later declarations do not affect streams
// already handed out.
func (l *Lexer) Tokenize(input string, strict bool) *Stream {
	s := &Stream{lex: l, input: input, strict: strict, comps: l.Competences()}
	if len(s.comps) == 0 {
		return s
	}

	sources := make([]string, len(s.comps))
	for i, c := range s.comps {
		sources[i] = "(?:" + c.Patterns.Foremost.String() + ")"
	}
	re, err := regexp.Compile(strings.Join(sources, "|"))
	if err != nil {
		s.err = &ConfigurationError{Reason: fmt.Sprintf("cannot combine foremost patterns: %v", err)}
		return s
	}
	s.re = re
	return s
}

// Stream is a lazy, forward-only, non-restartable token sequence.
type Stream struct {
	lex    *Lexer
	input  string
	comps  []*Competence
	re     *regexp.Regexp
	strict bool

	pos     int // next search offset
	prevEnd int // end of the previous token's extracted content
	done    bool
	err     error
}

// Input returns the source text the stream scans.
func (s *Stream) Input() string {
	return s.input
}

// Next produces the next token, or (nil, nil) when the input is
// exhausted. A fatal error terminates the stream permanently; every
// subsequent call returns the same error.
func (s *Stream) Next() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.done {
		return nil, nil
	}

	for {
		if s.re == nil || s.pos > len(s.input) {
			return nil, s.finish()
		}

		loc := s.re.FindStringIndex(s.input[s.pos:])
		if loc == nil {
			return nil, s.finish()
		}
		start, end := s.pos+loc[0], s.pos+loc[1]
		match := s.input[start:end]

		comp := s.accept(match)
		if comp == nil {
			// Defensive: the combined pattern is built from the same
			// foremost sources, so a raw match nobody accepts signals a
			// construction inconsistency. Non-fatal; skip it.
			s.lex.log.Warn("no competence accepts matched text, skipping",
				"match", match, "offset", start)
			s.pos = max(end, start+1)
			s.prevEnd = s.pos
			continue
		}

		if err := s.gap(s.prevEnd, start); err != nil {
			s.err = err
			return nil, err
		}

		tok := newToken(comp, s.input, start, match)
		s.pos = max(tok.scanEnd, start+1)
		s.prevEnd = s.pos
		return tok, nil
	}
}

// accept picks the first competence, in registration order, whose
// foremost pattern accepts the matched text.
func (s *Stream) accept(match string) *Competence {
	for _, c := range s.comps {
		if c.Patterns.Foremost.MatchString(match) {
			return c
		}
	}
	return nil
}

// finish marks the stream exhausted, checking the trailing gap in
// strict mode.
func (s *Stream) finish() error {
	s.done = true
	if err := s.gap(s.prevEnd, len(s.input)); err != nil {
		s.err = err
		return err
	}
	return nil
}

// gap rejects non-whitespace text between recognized tokens in strict
// mode, reporting line/column and a short source excerpt.
func (s *Stream) gap(from, to int) error {
	if !s.strict || from >= to {
		return nil
	}
	segment := s.input[from:to]
	idx := strings.IndexFunc(segment, func(r rune) bool {
		return !strings.ContainsRune(" \t\r\n", r)
	})
	if idx < 0 {
		return nil
	}
	pos := token.PositionAt(s.input, from+idx)
	return &GapError{
		Text:    strings.TrimSpace(segment),
		Pos:     pos,
		Excerpt: token.Excerpt(s.input, pos),
	}
}
