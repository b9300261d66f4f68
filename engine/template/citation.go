package template

import (
	"regexp"

	"github.com/citeurl-go/citeurl/engine/pattern"
	"github.com/citeurl-go/citeurl/engine/token"
)

// Citation is a single match: span, raw captures, normalized tokens, parent
// link, and precompiled shortform/idform regex handles for child scanning
// (spec.md §3).
type Citation struct {
	Template *Template
	Start    int
	End      int
	Text     string

	RawTokens map[string]*string
	Tokens    map[string]*string

	URL  *string
	Name *string

	Parent *Citation

	// IsIDForm is true when this Citation was produced by matching one of
	// its parent's idform regexes rather than a longform/shortform pattern.
	IsIDForm bool
	// MatchedHasCaptures is true when the regex that produced this Citation
	// has at least one named capture group — used by the Rewriter to
	// distinguish "detailed" from "plain" id-forms (spec.md §4.8).
	MatchedHasCaptures bool

	shortformRegexes []*regexp.Regexp
	idformRegexes    []*regexp.Regexp
}

// Span returns the citation's [start, end) byte offsets in the scanned text.
func (c *Citation) Span() (int, int) { return c.Start, c.End }

// PublicTokens returns Tokens with underscore-prefixed keys removed, per
// spec.md §4.6 invariant I1 ("hidden from clients").
func (c *Citation) PublicTokens() map[string]*string {
	out := make(map[string]*string, len(c.Tokens))
	for k, v := range c.Tokens {
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		out[k] = v
	}
	return out
}

// ShortformRegexes returns this citation's compiled shortform regex
// handles, for the Scanner to search subsequent text with.
func (c *Citation) ShortformRegexes() []*regexp.Regexp { return c.shortformRegexes }

// IDRegexes returns this citation's compiled idform regex handles,
// including the universal bare-id regex appended to every citation.
func (c *Citation) IDRegexes() []*regexp.Regexp { return c.idformRegexes }

// newLongformCitation builds a parentless Citation from a longform match.
func newLongformCitation(t *Template, text string, start, end int, raw map[string]*string) (*Citation, bool) {
	return construct(t, nil, text, start, end, raw, 0)
}

// newChildCitation builds a Citation from a shortform/idform match against
// parent's compiled regex handles.
func newChildCitation(parent *Citation, text string, start, end int, raw map[string]*string, hasCaptures bool, isID bool) (*Citation, bool) {
	cite, ok := construct(parent.Template, parent, text, start, end, raw, 0)
	if !ok {
		return nil, false
	}
	cite.IsIDForm = isID
	cite.MatchedHasCaptures = hasCaptures
	return cite, true
}

func construct(t *Template, parent *Citation, text string, start, end int, raw map[string]*string, _ int) (*Citation, bool) {
	rawTokens := raw
	if parent != nil {
		rawTokens = inheritRawTokens(t.Tokens, parent.RawTokens, raw)
	}

	tokens := make(map[string]*string, len(t.Tokens))
	for _, tok := range t.Tokens {
		v, ok := tok.Normalize(rawTokens[tok.Name])
		if !ok {
			return nil, false
		}
		tokens[tok.Name] = v
	}

	cite := &Citation{
		Template:  t,
		Start:     start,
		End:       end,
		Text:      text[start:end],
		RawTokens: rawTokens,
		Tokens:    tokens,
		Parent:    parent,
	}

	cite.shortformRegexes = cite.childRegexes(t.shortforms)
	cite.idformRegexes = append(cite.childRegexes(t.idforms), bareIDRegex)

	if t.URLBuilder != nil {
		cite.URL = t.URLBuilder.Build(tokens)
	}
	if t.NameBuilder != nil {
		cite.Name = t.NameBuilder.Build(tokens)
	}

	return cite, true
}

// inheritRawTokens walks token names in declared order, inheriting the
// parent's raw value up to (exclusive of) the first token name the child
// itself captured; thereafter it uses the child's own captures verbatim
// (spec.md §4.6 step 1, invariant I4).
func inheritRawTokens(tokens []token.Type, parentRaw, childRaw map[string]*string) map[string]*string {
	out := make(map[string]*string, len(tokens))
	inheriting := true
	for _, tok := range tokens {
		if v, captured := childRaw[tok.Name]; captured && v != nil {
			inheriting = false
			out[tok.Name] = v
			continue
		}
		if inheriting {
			out[tok.Name] = parentRaw[tok.Name]
		} else {
			out[tok.Name] = nil
		}
	}
	return out
}

// childRegexes resolves a processedPattern list into compiled regex
// handles for this specific citation: patterns with no `{same X}`
// reference reuse the Template's shared compiled object by identity;
// patterns that do reference `{same X}` are reprocessed against this
// citation's own raw token values and compiled fresh (spec.md §4.6 step 3).
func (c *Citation) childRegexes(list []processedPattern) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(list))
	for _, pp := range list {
		if !pp.hasSame {
			out = append(out, pp.re)
			continue
		}
		same := make(map[string]string, len(c.RawTokens))
		for name, v := range c.RawTokens {
			if v != nil {
				same[name] = regexp.QuoteMeta(*v)
			}
		}
		expanded := pattern.Process(pp.Source, same, "same", false)
		re, err := regexp.Compile(expanded)
		if err != nil {
			// A pattern that was valid before {same X} substitution (it
			// compiled successfully modulo the marker) cannot fail here in
			// practice since QuoteMeta output is always syntactically
			// inert; skip defensively rather than let a malformed
			// citation abort the scan.
			continue
		}
		out = append(out, re)
	}
	return out
}
