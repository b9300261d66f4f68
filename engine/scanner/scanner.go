// Package scanner implements list_cites (spec.md §4.7): the multi-pass
// longform → shortform → id-form scan over a text, with overlap resolution
// and id-chain breakpoints.
package scanner

import (
	"regexp"
	"sort"

	"github.com/citeurl-go/citeurl/engine/template"
)

// Templates is the ordered set of templates a Scan walks, matching the
// citator's declared order (spec.md §4.7 step 1).
type Templates []*template.Template

// Options configures one Scan call.
type Options struct {
	// Broad selects each template's broad (case-insensitive + permissive)
	// regex set instead of its strict longform set.
	Broad bool
	// IDBreak, if non-nil, is matched against the whole text; every match
	// start is an additional id-chain breakpoint (spec.md §4.7 step 4).
	IDBreak *regexp.Regexp
	// Start and End bound the scan, like Template.ListLongformCites.
	Start, End int
}

// Scan runs the full six-step algorithm and returns citations in final,
// overlap-resolved, start-ascending order.
func Scan(text string, templates Templates, opts Options) []*template.Citation {
	end := opts.End
	if end <= 0 || end > len(text) {
		end = len(text)
	}

	longforms := scanLongforms(text, templates, opts.Broad, opts.Start, end)
	shortforms := scanShortforms(text, longforms, end)

	committed := resolveOverlaps(append(append([]*template.Citation{}, longforms...), shortforms...))

	breakpoints := idBreakpoints(text, committed, opts.IDBreak, end)
	idforms := scanIDForms(text, committed, breakpoints, end)

	all := append(committed, idforms...)
	return resolveOverlaps(all)
}

// scanLongforms enumerates non-overlapping longform matches per template,
// in template declaration order; sorting/overlap resolution happens later.
func scanLongforms(text string, templates Templates, broad bool, start, end int) []*template.Citation {
	var out []*template.Citation
	for _, t := range templates {
		out = append(out, t.ListLongformCites(text, broad, start, end)...)
	}
	return out
}

// scanShortforms walks each longform's compiled shortform regexes against
// the tail of the text following it, chaining matches until the tail is
// exhausted (spec.md §4.7 step 2).
func scanShortforms(text string, longforms []*template.Citation, end int) []*template.Citation {
	var out []*template.Citation
	for _, l := range longforms {
		cursor := l.End
		for cursor < end {
			child, ok := l.NextShortform(text, cursor, end)
			if !ok {
				break
			}
			cursor = child.End
			if cursor <= child.Start {
				cursor = child.Start + 1 // never loop on a zero-width match
			}
			out = append(out, child)
		}
	}
	return out
}

// idBreakpoints computes the sorted-unique set of committed-citation starts
// plus id-break pattern match starts (spec.md §4.7 step 4), with end
// appended as the implicit final boundary.
func idBreakpoints(text string, committed []*template.Citation, idBreak *regexp.Regexp, end int) []int {
	set := make(map[int]struct{}, len(committed)+1)
	for _, c := range committed {
		set[c.Start] = struct{}{}
	}
	if idBreak != nil {
		for _, loc := range idBreak.FindAllStringIndex(text[:end], -1) {
			set[loc[0]] = struct{}{}
		}
	}
	set[end] = struct{}{}

	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// nextBreakpoint returns the smallest breakpoint strictly >= from.
func nextBreakpoint(breakpoints []int, from int) int {
	i := sort.SearchInts(breakpoints, from)
	if i < len(breakpoints) {
		return breakpoints[i]
	}
	return breakpoints[len(breakpoints)-1]
}

// scanIDForms chains id-form matches from every committed citation until
// the next breakpoint or end of text (spec.md §4.7 step 5).
func scanIDForms(text string, committed []*template.Citation, breakpoints []int, end int) []*template.Citation {
	var out []*template.Citation
	for _, c := range committed {
		cur := c
		for {
			boundary := nextBreakpoint(breakpoints, cur.End)
			if boundary > end {
				boundary = end
			}
			if cur.End >= boundary {
				break
			}
			child, ok := cur.NextIDForm(text, cur.End, boundary)
			if !ok {
				break
			}
			out = append(out, child)
			cur = child
		}
	}
	return out
}

// resolveOverlaps sorts by start ascending and, wherever two spans overlap,
// keeps the longer one (ties keep whichever was encountered first in the
// stable sort) — spec.md §4.7 steps 3 and 6.
func resolveOverlaps(cites []*template.Citation) []*template.Citation {
	sort.SliceStable(cites, func(i, j int) bool {
		if cites[i].Start != cites[j].Start {
			return cites[i].Start < cites[j].Start
		}
		return (cites[i].End - cites[i].Start) > (cites[j].End - cites[j].Start)
	})

	var out []*template.Citation
	for _, c := range cites {
		if len(out) == 0 {
			out = append(out, c)
			continue
		}
		last := out[len(out)-1]
		if c.Start >= last.End {
			out = append(out, c)
			continue
		}
		if (c.End - c.Start) > (last.End - last.Start) {
			out[len(out)-1] = c
		}
	}
	return out
}
