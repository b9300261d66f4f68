// Package authority groups Citations into Authorities: equivalence classes
// of citations judged to refer to the same underlying source (spec.md §3).
package authority

import (
	"strings"
	"unicode"

	"github.com/citeurl-go/citeurl/engine/template"
)

// Authority is a group of Citations that share a template name and agree
// on every "identity" token (spec.md §3's Open Question, resolved in
// SPEC_FULL.md §9: a token is an identity token when at least one of its
// normalized values anywhere in the group contains an upper-case letter).
type Authority struct {
	TemplateName string
	Citations    []*template.Citation
}

// Group partitions citations into Authorities. Citations from different
// templates never share a group. Within a template, two citations join
// the same group when every identity token matches — exactly equal, or,
// for a token its TokenType declares severable, one value a prefix of the
// other.
func Group(citations []*template.Citation) []*Authority {
	byTemplate := make(map[string][]*template.Citation)
	var order []string
	for _, c := range citations {
		name := c.Template.Name
		if _, seen := byTemplate[name]; !seen {
			order = append(order, name)
		}
		byTemplate[name] = append(byTemplate[name], c)
	}

	var out []*Authority
	for _, name := range order {
		out = append(out, groupOne(name, byTemplate[name])...)
	}
	return out
}

func groupOne(name string, citations []*template.Citation) []*Authority {
	severable := make(map[string]bool)
	for _, tok := range citations[0].Template.Tokens {
		severable[tok.Name] = tok.Severable
	}
	identity := identityTokens(citations)
	if len(identity) == 0 {
		// The upper-case heuristic degenerates to nothing on a template
		// whose tokens are all numeric (no token value ever contains a
		// letter) — e.g. a bare volume/page citation. Falling back to
		// "every non-severable token must match" keeps such a template's
		// citations from all collapsing into a single Authority.
		for _, tok := range citations[0].Template.Tokens {
			if !tok.Severable {
				identity[tok.Name] = true
			}
		}
	}

	var groups []*Authority
	for _, c := range citations {
		placed := false
		for _, g := range groups {
			if sameAuthority(g.Citations[0], c, identity, severable) {
				g.Citations = append(g.Citations, c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &Authority{TemplateName: name, Citations: []*template.Citation{c}})
		}
	}
	return groups
}

// identityTokens returns the set of token names that carry at least one
// upper-case letter in at least one citation's normalized value, across
// the whole group.
func identityTokens(citations []*template.Citation) map[string]bool {
	out := make(map[string]bool)
	for _, c := range citations {
		for name, v := range c.Tokens {
			if v == nil {
				continue
			}
			if out[name] {
				continue
			}
			if containsUpper(*v) {
				out[name] = true
			}
		}
	}
	return out
}

func containsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func sameAuthority(a, b *template.Citation, identity map[string]bool, severable map[string]bool) bool {
	for name := range identity {
		av, bv := a.Tokens[name], b.Tokens[name]
		if !tokenMatches(av, bv, severable[name]) {
			return false
		}
	}
	return true
}

func tokenMatches(a, b *string, severable bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if *a == *b {
		return true
	}
	if severable {
		return strings.HasPrefix(*a, *b) || strings.HasPrefix(*b, *a)
	}
	return false
}
