package lexer

import (
	"unicode/utf8"

	"github.com/KodekoStudios/akore/pkg/token"
)

// Eated holds the neighboring tokens a token consumed through its
// competence's adjacency rules. Consumed tokens are removed from the
// externally visible stream and reachable only here.
type Eated struct {
	Before []*Token
	After  []*Token
}

// Token is a located, delimiter-extracted slice of the input tied to
// the competence that produced it. All fields derive from the backing
// match and extraction result at construction; only Eated is mutated
// afterwards, and only by the driver.
type Token struct {
	// Comp is the competence whose foremost pattern produced the token.
	Comp *Competence

	// Match is the text matched by the foremost pattern.
	Match string

	// Groups holds the foremost pattern's named capture groups, only
	// those that actually matched.
	Groups map[string]string

	// Start is the byte offset of the match in the input.
	Start int

	// Pos is the 1-based line/column of Start.
	Pos token.Position

	// Opener, Inside and Closer are the nested extraction result. They
	// are empty when no extraction ran; Extracted distinguishes an
	// extraction that captured the empty string.
	Opener string
	Inside string
	Closer string

	// Eated holds adjacent tokens consumed by eater rules.
	Eated Eated

	extracted bool
	scanEnd   int
}

// newToken constructs a token for a foremost match and runs nested
// extraction once against the input.
func newToken(c *Competence, input string, start int, match string) *Token {
	t := &Token{
		Comp:    c,
		Match:   match,
		Start:   start,
		Pos:     token.PositionAt(input, start),
		scanEnd: start + len(match),
	}
	t.captureGroups()
	t.extract(input)
	return t
}

// captureGroups records the foremost pattern's named groups that have
// defined values.
func (t *Token) captureGroups() {
	re := t.Comp.Patterns.Foremost
	idx := re.FindStringSubmatchIndex(t.Match)
	if idx == nil {
		return
	}
	for i, name := range re.SubexpNames() {
		if name == "" || 2*i >= len(idx) || idx[2*i] < 0 {
			continue
		}
		if t.Groups == nil {
			t.Groups = make(map[string]string)
		}
		t.Groups[name] = t.Match[idx[2*i]:idx[2*i+1]]
	}
}

// Total returns the full textual span of the token: the foremost match
// plus opener, extracted inside and closer when present. It is exactly
// reconstructible from those four parts.
func (t *Token) Total() string {
	return t.Match + t.Opener + t.Inside + t.Closer
}

// End returns Start plus the total length.
func (t *Token) End() int {
	return t.Start + len(t.Total())
}

// Extracted reports whether nested extraction ran, distinguishing an
// empty Inside from no extraction at all.
func (t *Token) Extracted() bool {
	return t.extracted
}

// extract scans forward from the foremost match, capturing nested
// depth-balanced content. Extraction begins when the competence forces
// direct entry, or when its opener pattern matches the next character.
// A closer only terminates the scan at depth zero; inner delimiter
// pairs are appended to the extracted content.
func (t *Token) extract(input string) {
	p := t.Comp.Patterns
	i := t.Start + len(t.Match)
	direct := t.Comp.Flags.Has(DirectEntry)

	if !direct {
		if p.Opener == nil || i >= len(input) {
			return
		}
		_, size := utf8.DecodeRuneInString(input[i:])
		ch := input[i : i+size]
		if !p.Opener.MatchString(ch) {
			return
		}
		t.Opener = ch
		i += size
	}
	t.extracted = true

	depth := 0
	unstoppable := t.Comp.Flags.Has(Unstoppable)
	var inside []byte

scan:
	for i < len(input) {
		_, size := utf8.DecodeRuneInString(input[i:])
		ch := input[i : i+size]

		switch {
		case p.Closer != nil && depth == 0 && p.Closer.MatchString(ch):
			t.Closer = ch
			i += size
			break scan
		case p.Opener != nil && p.Opener.MatchString(ch):
			depth++
			inside = append(inside, ch...)
			i += size
		case p.Closer != nil && p.Closer.MatchString(ch):
			depth--
			inside = append(inside, ch...)
			i += size
		case p.Inside == nil || p.Inside.MatchString(ch):
			inside = append(inside, ch...)
			i += size
		case unstoppable:
			// Skip the character: it is consumed but not captured.
			i += size
		default:
			break scan
		}
	}

	t.Inside = string(inside)
	t.scanEnd = i
}
