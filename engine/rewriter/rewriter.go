// Package rewriter implements insert_links (spec.md §4.8): splicing
// hyperlink elements for a list of Citations back into their source text.
package rewriter

import (
	"html"
	"sort"
	"strings"

	"github.com/citeurl-go/citeurl/engine/scanner"
	"github.com/citeurl-go/citeurl/engine/template"
)

// Policy controls which citations get linked and how the anchor element is
// built (spec.md §4.8).
type Policy struct {
	// Attrs are the key/value attributes on the anchor element. A non-nil
	// map replaces the default class="citation" entirely; nil means just
	// that class.
	Attrs map[string]string
	// URLOptional emits an anchor even for a citation with no URL.
	URLOptional bool
	// RedundantLinks, when false, suppresses a citation whose URL equals
	// the immediately previous emitted link's URL.
	RedundantLinks bool
	// LinkPlainIDs controls linking of id-form citations whose matching
	// regex had no named capture group (e.g. a bare "Id.").
	LinkPlainIDs bool
	// LinkDetailedIDs controls linking of id-form citations whose
	// matching regex did have named capture groups.
	LinkDetailedIDs bool
}

func defaultAttrs(p Policy) map[string]string {
	if p.Attrs != nil {
		return p.Attrs
	}
	return map[string]string{"class": "citation"}
}

// Insert splices an <a> element for each surviving citation into text,
// using a running cumulative offset so later spans still index into the
// original text plus everything spliced so far (spec.md §4.8). Citation
// spans must already be in text's coordinate space — see
// InsertIgnoringMarkup for text containing tolerated inline markup.
func Insert(text string, citations []*template.Citation, policy Policy) string {
	var out strings.Builder
	cursor := 0
	var lastURL *string

	for _, c := range citations {
		if !shouldLink(c, policy) {
			continue
		}
		if c.URL == nil && !policy.URLOptional {
			continue
		}
		if !policy.RedundantLinks && lastURL != nil && c.URL != nil && *c.URL == *lastURL {
			continue
		}

		out.WriteString(text[cursor:c.Start])
		out.WriteString(anchor(c, policy))
		cursor = c.End
		if c.URL != nil {
			lastURL = c.URL
		}
	}
	out.WriteString(text[cursor:])
	return out.String()
}

// InsertIgnoringMarkup strips the tolerated inline tags from text, scans
// the resulting view, maps every resulting citation's span back onto text,
// and splices into the ORIGINAL (unstripped) text — implementing
// ignore_markup (spec.md §4.8, §9).
func InsertIgnoringMarkup(text string, templates scanner.Templates, scanOpts scanner.Options, policy Policy) string {
	view, toOriginal := StripInlineTags(text)
	cites := scanner.Scan(view, templates, scanOpts)
	for _, c := range cites {
		c.Start, c.End = MapSpan(toOriginal, c.Start, c.End)
		c.Text = text[c.Start:c.End]
	}
	return Insert(text, cites, policy)
}

func shouldLink(c *template.Citation, policy Policy) bool {
	if !c.IsIDForm {
		return true
	}
	if c.MatchedHasCaptures {
		return policy.LinkDetailedIDs
	}
	return policy.LinkPlainIDs
}

func anchor(c *template.Citation, policy Policy) string {
	attrs := defaultAttrs(policy)
	keys := make([]string, 0, len(attrs)+1)
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<a")
	if c.URL != nil {
		b.WriteString(` href="`)
		b.WriteString(html.EscapeString(*c.URL))
		b.WriteString(`"`)
	}
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[k]))
		b.WriteString(`"`)
	}
	if c.Name != nil {
		b.WriteString(` title="`)
		b.WriteString(html.EscapeString(*c.Name))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(c.Text)
	b.WriteString("</a>")
	return b.String()
}
