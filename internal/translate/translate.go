// Package translate derives names and metadata values from well-formed
// file paths.
//
// A translation expression has the form EXTRACT~FORMAT. EXTRACT is a
// regular expression with named capture groups matched against the absolute
// source path; FORMAT is a template whose {name} tokens expand to the
// captured values. {path} and {basename} are always available.
package translate

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrTranslation marks malformed expressions and paths an expression cannot
// translate.
var ErrTranslation = errors.New("translation failed")

var tokenRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Translator applies one compiled translation expression to paths.
type Translator struct {
	extract *regexp.Regexp
	format  string
}

// New compiles a translation expression. Unknown template tokens and
// invalid extraction patterns are rejected here, before any path is seen.
func New(expression string) (*Translator, error) {
	extract, format, ok := strings.Cut(expression, "~")
	if !ok {
		return nil, fmt.Errorf("%w: expression %q lacks the '~' separating extraction from format", ErrTranslation, expression)
	}
	re, err := regexp.Compile(extract)
	if err != nil {
		return nil, fmt.Errorf("%w: compile extraction: %w", ErrTranslation, err)
	}

	known := map[string]struct{}{"path": {}, "basename": {}}
	for _, name := range re.SubexpNames() {
		if name != "" {
			known[name] = struct{}{}
		}
	}
	for _, token := range tokenRe.FindAllStringSubmatch(format, -1) {
		if _, ok := known[token[1]]; !ok {
			return nil, fmt.Errorf("%w: format refers to unknown field %q", ErrTranslation, token[1])
		}
	}

	return &Translator{extract: re, format: format}, nil
}

// Translate expands the expression against path.
func (t *Translator) Translate(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	match := t.extract.FindStringSubmatch(abs)
	if match == nil {
		return "", fmt.Errorf("%w: %s does not match %s", ErrTranslation, abs, t.extract)
	}

	values := map[string]string{
		"path":     abs,
		"basename": filepath.Base(abs),
	}
	for i, name := range t.extract.SubexpNames() {
		if name != "" && i < len(match) {
			values[name] = match[i]
		}
	}

	return tokenRe.ReplaceAllStringFunc(t.format, func(token string) string {
		return values[tokenRe.FindStringSubmatch(token)[1]]
	}), nil
}
