// Package jsexport builds the browser-embeddable lookup projection named in
// SPEC_FULL.md §10.3: a one-way, lookup-only JSON snapshot of a Citator's
// loaded templates, grounded on original_source/citeurl/makejs.py. It
// exports only what a client-side search bar needs to find a citation's URL
// — longform regex sources (JS-dialect named groups), the template's flat
// URL-builder operation list, and its URL/name builder parts. Shortform and
// id-form scanning, and the chained-citation machinery those require, are
// never exported, matching spec.md's longform-only "cite" semantics.
package jsexport

import (
	"encoding/json"

	"github.com/citeurl-go/citeurl/citator"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/engine/token"
)

// lookupEntry is the JSON-serializable form of token.LookupEntry.
type lookupEntry struct {
	Pattern string `json:"pattern"`
	Value   string `json:"value"`
}

// operation is the JSON-serializable form of token.Operation: whichever
// fields its Kind uses, keyed by name rather than Go's tagged-union Kind
// constant so a JS interpreter can switch on a string.
type operation struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
	Output string `json:"output,omitempty"`

	Pattern     string `json:"pattern,omitempty"`
	Replacement string `json:"replacement,omitempty"`

	Lookup    []lookupEntry `json:"lookup,omitempty"`
	Mandatory bool          `json:"mandatory,omitempty"`

	Case string `json:"case,omitempty"`

	MinLen int    `json:"min_len,omitempty"`
	Fill   string `json:"fill,omitempty"`

	Style   string `json:"style,omitempty"`
	Spacing string `json:"spacing,omitempty"`
}

var kindNames = map[token.Kind]string{
	token.KindSub:         "sub",
	token.KindLookup:      "lookup",
	token.KindCase:        "case",
	token.KindLpad:        "lpad",
	token.KindNumberStyle: "number_style",
}

var caseNames = map[token.CaseStyle]string{
	token.CaseUpper: "upper",
	token.CaseLower: "lower",
	token.CaseTitle: "title",
}

var numberStyleNames = map[token.NumberStyle]string{
	token.NumberRoman:    "roman",
	token.NumberDigit:    "digit",
	token.NumberCardinal: "cardinal",
	token.NumberOrdinal:  "ordinal",
}

func toOperation(op token.Operation) operation {
	out := operation{
		Kind:      kindNames[op.Kind],
		Target:    op.Target,
		Output:    op.Output,
		Mandatory: op.Mandatory,
	}
	switch op.Kind {
	case token.KindSub:
		if op.SubPattern != nil {
			out.Pattern = op.SubPattern.String()
		}
		out.Replacement = op.SubReplacement
	case token.KindLookup:
		out.Lookup = make([]lookupEntry, len(op.Lookup))
		for i, entry := range op.Lookup {
			pattern := ""
			if entry.Key != nil {
				pattern = entry.Key.String()
			}
			out.Lookup[i] = lookupEntry{Pattern: pattern, Value: entry.Value}
		}
	case token.KindCase:
		out.Case = caseNames[op.Case]
	case token.KindLpad:
		out.MinLen = op.MinLen
		fill := op.Fill
		if fill == 0 {
			fill = '0'
		}
		out.Fill = string(fill)
	case token.KindNumberStyle:
		out.Style = numberStyleNames[op.Style]
		out.Spacing = op.Spacing
	}
	return out
}

func toOperations(edits []token.Operation) []operation {
	if len(edits) == 0 {
		return nil
	}
	out := make([]operation, len(edits))
	for i, e := range edits {
		out[i] = toOperation(e)
	}
	return out
}

// templateExport is one template's projection. Field names mirror
// makejs.py's JSON keys (name, defaults, regexes, operations, url) so a
// hand-authored JS runtime built against the Python export needs only
// trivial changes to consume this one.
type templateExport struct {
	Name       string            `json:"name"`
	Defaults   map[string]string `json:"defaults,omitempty"`
	Regexes    []string          `json:"regexes"`
	Operations []operation       `json:"operations,omitempty"`
	URLParts   []string          `json:"url_parts"`
	NameParts  []string          `json:"name_parts,omitempty"`
}

func toTemplateExport(t *template.Template) (templateExport, bool) {
	if t.URLBuilder == nil {
		return templateExport{}, false
	}
	exp := templateExport{
		Name:       t.Name,
		Defaults:   t.URLBuilder.Defaults,
		Regexes:    t.JSRegexSources(),
		Operations: toOperations(t.URLBuilder.Edits),
		URLParts:   append([]string{}, t.URLBuilder.Parts...),
	}
	if t.NameBuilder != nil {
		exp.NameParts = append([]string{}, t.NameBuilder.Parts...)
	}
	return exp, true
}

// Export builds the JSON projection of every template in c that has a URL
// builder (templates with no URLBuilder can't produce a link and are
// skipped, matching makejs.py's `if 'URL' not in template.__dict__` guard).
func Export(c *citator.Citator) ([]byte, error) {
	var out []templateExport
	for _, name := range c.Names() {
		t, ok := c.Template(name)
		if !ok {
			continue
		}
		exp, ok := toTemplateExport(t)
		if !ok {
			continue
		}
		out = append(out, exp)
	}
	return json.MarshalIndent(out, "", "    ")
}
