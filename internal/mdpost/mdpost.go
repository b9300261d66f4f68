// Package mdpost is the Markdown post-processor named in SPEC_FULL.md
// §10.4, grounded on original_source/citeurl/mdx.py's CitationPostprocessor
// (a python-markdown Postprocessor run once the document's block structure
// — including fenced/indented code — is already resolved). Rather than
// reimplement Markdown block parsing by hand, it parses the document with
// goldmark, the one Markdown library present in the example pack, just far
// enough to find every code block's byte range, then runs InsertLinks over
// everything else and stitches the untouched code back in.
package mdpost

import (
	"regexp"
	"sort"
	"strings"

	"github.com/citeurl-go/citeurl/citator"
	"github.com/citeurl-go/citeurl/engine/rewriter"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// Options configures Process.
type Options struct {
	// IDBreak interrupts id-form citation chains, same as citator.Cite*'s
	// idBreak parameter. Defaults to citator.DefaultIDBreak when nil.
	IDBreak *regexp.Regexp
	Policy  rewriter.Policy
}

type byteSpan struct{ start, end int }

// Process finds every citation in doc's prose and splices in links, leaving
// fenced and indented code blocks byte-for-byte untouched.
func Process(doc string, c *citator.Citator, opts Options) (string, error) {
	idBreak := opts.IDBreak
	if idBreak == nil {
		idBreak = citator.DefaultIDBreak
	}

	source := []byte(doc)
	root := goldmark.DefaultParser().Parse(gtext.NewReader(source))

	var protected []byteSpan
	err := gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		var lines *gtext.Segments
		switch tn := n.(type) {
		case *gast.FencedCodeBlock:
			lines = tn.Lines()
		case *gast.CodeBlock:
			lines = tn.Lines()
		default:
			return gast.WalkContinue, nil
		}
		if lines == nil || lines.Len() == 0 {
			return gast.WalkSkipChildren, nil
		}
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		protected = append(protected, byteSpan{first.Start, last.Stop})
		return gast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", err
	}

	sort.Slice(protected, func(i, j int) bool { return protected[i].start < protected[j].start })

	var out strings.Builder
	cursor := 0
	for _, sp := range protected {
		if sp.start < cursor {
			continue // nested/overlapping span already covered by an ancestor
		}
		out.WriteString(c.InsertLinks(doc[cursor:sp.start], idBreak, opts.Policy))
		out.WriteString(doc[sp.start:sp.end])
		cursor = sp.end
	}
	out.WriteString(c.InsertLinks(doc[cursor:], idBreak, opts.Policy))

	return out.String(), nil
}
