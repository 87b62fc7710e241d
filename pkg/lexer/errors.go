package lexer

import (
	"fmt"

	"github.com/KodekoStudios/akore/pkg/token"
)

// ConfigurationError reports an invalid competence declaration, such as
// forced nested entry without a closer pattern. It is raised eagerly at
// setup time.
type ConfigurationError struct {
	Competence string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.Competence == "" {
		return fmt.Sprintf("invalid competence: %s", e.Reason)
	}
	return fmt.Sprintf("invalid competence %q: %s", e.Competence, e.Reason)
}

// GapError reports non-whitespace text found between recognized tokens
// while tokenizing in strict mode.
type GapError struct {
	Text    string
	Pos     token.Position
	Excerpt string
}

func (e *GapError) Error() string {
	return fmt.Sprintf("unmatched text %q at %s\n%s", e.Text, e.Pos, e.Excerpt)
}
