package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// Placeholder marks where the generated statements are inserted.
const Placeholder = "<<!statements>>"

// DefaultTemplate wraps the statements in a C main function.
const DefaultTemplate = `
int main() {
    <<!statements>>
}
`

// ErrTemplate is returned (wrapped) for templates without exactly one
// statements placeholder.
var ErrTemplate = errors.New("invalid template")

// directiveRe matches <<!name>> directives, tolerating inner spaces.
var directiveRe = mustCompile(`<<!\s*[A-Za-z_]+\s*>>`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("codegen: compile %q: %v", pattern, err))
	}
	return re
}

// Template is a static output text with a single statements placeholder.
type Template struct {
	text       string
	start, end int // byte span of the placeholder in text
}

// ParseTemplate validates text and locates its placeholder.
// The placeholder may be written with inner spaces, as in <<! statements >>.
func ParseTemplate(text string) (*Template, error) {
	var spans [][]int
	for _, loc := range directiveRe.FindAllStringIndex(text, -1) {
		name := strings.TrimSpace(text[loc[0]+len("<<!") : loc[1]-len(">>")])
		if name != "statements" {
			return nil, fmt.Errorf("%w: unknown directive %q", ErrTemplate, text[loc[0]:loc[1]])
		}
		spans = append(spans, loc)
	}

	switch len(spans) {
	case 0:
		return nil, fmt.Errorf("%w: missing %s placeholder", ErrTemplate, Placeholder)
	case 1:
		return &Template{text: text, start: spans[0][0], end: spans[0][1]}, nil
	default:
		return nil, fmt.Errorf("%w: %d %s placeholders, want 1", ErrTemplate, len(spans), Placeholder)
	}
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(text string) *Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the parsed DefaultTemplate.
func Default() *Template {
	return defaultTemplate
}

var defaultTemplate = MustParseTemplate(DefaultTemplate)

// Expand returns the template with body substituted for the placeholder.
// The rest of the text is returned unchanged.
func (t *Template) Expand(body string) string {
	var sb strings.Builder
	sb.Grow(len(t.text) - (t.end - t.start) + len(body))
	sb.WriteString(t.text[:t.start])
	sb.WriteString(body)
	sb.WriteString(t.text[t.end:])
	return sb.String()
}

// String returns the template text.
func (t *Template) String() string {
	return t.text
}
