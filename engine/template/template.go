// Package template implements Template and Citation (spec.md §3, §4.5,
// §4.6): the compiled pattern bundle for one kind of citation, and the
// individual matches it produces.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/citeurl-go/citeurl/engine/builder"
	"github.com/citeurl-go/citeurl/engine/citeerr"
	"github.com/citeurl-go/citeurl/engine/pattern"
	"github.com/citeurl-go/citeurl/engine/token"
)

// bareIDSource is the universal "bare id" regex appended to the idform
// list of every Citation (spec.md §4.6 step 3).
const bareIDSource = `[Ii](?:bi)?d\.(?:</(?:i|em|u)>)?`

var bareIDRegex = regexp.MustCompile(`\b(?:` + bareIDSource + `)\B`)

// Spec is the fully-resolved (post-`inherit`) declarative description of a
// template, as produced by engine/template/loader. Template.New compiles it.
type Spec struct {
	Name               string
	Meta               map[string]string
	Tokens             []token.Type
	Patterns           []string
	BroadPatterns      []string
	ShortformPatterns  []string
	IdformPatterns     []string
	URLBuilder         *builder.Builder
	NameBuilder        *builder.Builder
}

// processedPattern is a shortform/idform pattern after round-1 ({token},
// {meta}) substitution. If it references `{same X}` for any token X, re
// stays nil and Source is reprocessed per-Citation with parent-substituted
// values; otherwise re is compiled once and shared by identity across every
// Citation of this template (spec.md §4.6 step 3).
type processedPattern struct {
	Source  string
	re      *regexp.Regexp
	hasSame bool
}

// Template is a named, compiled bundle of tokens, metadata, and patterns
// (spec.md §3).
type Template struct {
	Name        string
	Meta        map[string]string
	Tokens      []token.Type
	tokenIndex  map[string]int
	URLBuilder  *builder.Builder
	NameBuilder *builder.Builder

	regexes      []*regexp.Regexp // longform, case-sensitive
	broadRegexes []*regexp.Regexp // longform+broad, case-insensitive

	shortforms []processedPattern
	idforms    []processedPattern
}

// New compiles a Spec into a Template, eagerly compiling every regex for
// error locality (spec.md §9, "Lazy regex compilation").
func New(spec Spec) (*Template, error) {
	t := &Template{
		Name:        spec.Name,
		Meta:        spec.Meta,
		Tokens:      spec.Tokens,
		tokenIndex:  make(map[string]int, len(spec.Tokens)),
		URLBuilder:  spec.URLBuilder,
		NameBuilder: spec.NameBuilder,
	}
	for i, tok := range spec.Tokens {
		t.tokenIndex[tok.Name] = i
	}

	replacements := make(map[string]string, len(spec.Meta)+len(spec.Tokens))
	for k, v := range spec.Meta {
		replacements[k] = v
	}
	for _, tok := range spec.Tokens {
		replacements[tok.Name] = "(?P<" + tok.Name + ">" + tok.Regex + ")"
	}

	for _, raw := range spec.Patterns {
		re, err := compilePattern(raw, replacements, false)
		if err != nil {
			return nil, &citeerr.PatternCompileError{Template: t.Name, Kind: "pattern", Pattern: raw, Err: err}
		}
		t.regexes = append(t.regexes, re)
	}

	broadSources := append(append([]string{}, spec.Patterns...), spec.BroadPatterns...)
	for _, raw := range broadSources {
		re, err := compilePattern(raw, replacements, true)
		if err != nil {
			kind := "pattern"
			for _, b := range spec.BroadPatterns {
				if b == raw {
					kind = "broad pattern"
				}
			}
			return nil, &citeerr.PatternCompileError{Template: t.Name, Kind: kind, Pattern: raw, Err: err}
		}
		t.broadRegexes = append(t.broadRegexes, re)
	}

	var err error
	t.shortforms, err = processChildPatterns(t.Name, "shortform pattern", spec.ShortformPatterns, replacements)
	if err != nil {
		return nil, err
	}
	t.idforms, err = processChildPatterns(t.Name, "idform pattern", spec.IdformPatterns, replacements)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func compilePattern(source string, replacements map[string]string, caseInsensitive bool) (*regexp.Regexp, error) {
	expanded := pattern.Process(source, replacements, "", true)
	if caseInsensitive {
		expanded = "(?i)" + expanded
	}
	return regexp.Compile(expanded)
}

func processChildPatterns(templateName, kind string, sources []string, replacements map[string]string) ([]processedPattern, error) {
	out := make([]processedPattern, 0, len(sources))
	for _, raw := range sources {
		processed := pattern.Process(raw, replacements, "", true)
		hasSame := referencesSame(processed)
		pp := processedPattern{Source: processed, hasSame: hasSame}
		if !hasSame {
			re, err := regexp.Compile(processed)
			if err != nil {
				return nil, &citeerr.PatternCompileError{Template: templateName, Kind: kind, Pattern: raw, Err: err}
			}
			pp.re = re
		} else if _, err := regexp.Compile(sameMarker.ReplaceAllString(processed, "(?:)")); err != nil {
			return nil, &citeerr.PatternCompileError{Template: templateName, Kind: kind, Pattern: raw, Err: err}
		}
		out = append(out, pp)
	}
	return out, nil
}

var sameMarker = regexp.MustCompile(`\{same\s+[a-zA-Z_][a-zA-Z0-9_]*\}`)

func referencesSame(source string) bool {
	return sameMarker.MatchString(source)
}

// TokenIndex returns the declared-order index of a token name, and whether
// it exists.
func (t *Template) TokenIndex(name string) (int, bool) {
	i, ok := t.tokenIndex[name]
	return i, ok
}

// Cite finds the first longform Citation within text[start:end] (spec.md
// §4.5).
func (t *Template) Cite(text string, broad bool, start, end int) (*Citation, bool) {
	cites := t.ListLongformCites(text, broad, start, end)
	if len(cites) == 0 {
		return nil, false
	}
	return cites[0], true
}

// ListLongformCites returns every non-overlapping longform Citation within
// text[start:end] (spec.md §4.5), tie-breaking per §4.5/§4.7.
func (t *Template) ListLongformCites(text string, broad bool, start, end int) []*Citation {
	regexes := t.regexes
	if broad {
		regexes = t.broadRegexes
	}
	if end <= 0 || end > len(text) {
		end = len(text)
	}

	var out []*Citation
	cursor := start
	for cursor < end {
		m, ok := nextMatch(text[:end], cursor, regexes)
		if !ok {
			break
		}
		raw := namedGroups(m.re, text[:end], m.submatches)
		cite, valid := newLongformCitation(t, text, m.start, m.end, raw)
		cursor = m.end
		if cursor <= m.start {
			cursor = m.start + 1 // never loop on a zero-width match
		}
		if !valid {
			continue
		}
		out = append(out, cite)
	}
	return out
}

// shortformRegexes returns parent's shortform regex handles: the Template's
// shared compiled objects, or per-parent reprocessed ones for patterns that
// reference `{same X}`.
func (t *Template) shortformRegexes(parent *Citation) []*regexp.Regexp {
	return parent.childRegexes(t.shortforms)
}

func (t *Template) idformRegexes(parent *Citation) []*regexp.Regexp {
	return parent.childRegexes(t.idforms)
}

func (t *Template) String() string {
	return fmt.Sprintf("template(%s)", t.Name)
}

// JSRegexSources returns this template's longform regex sources, broad
// variants first when any exist (matching the source's export ordering),
// rewritten from Go/RE2's (?P<name>...) named-group syntax to the
// (?<name>...) form JavaScript's regex dialect uses. Used only by the
// lookup-only browser export (spec.md §10.3); nothing in the engine itself
// reads this.
func (t *Template) JSRegexSources() []string {
	sources := t.regexes
	if len(t.broadRegexes) > 0 {
		sources = append(append([]*regexp.Regexp{}, t.broadRegexes...), t.regexes...)
	}
	out := make([]string, len(sources))
	for i, re := range sources {
		out[i] = strings.ReplaceAll(re.String(), "(?P<", "(?<")
	}
	return out
}
