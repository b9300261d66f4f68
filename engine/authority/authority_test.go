package authority

import (
	"testing"

	"github.com/citeurl-go/citeurl/engine/builder"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/engine/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riversideTemplate(t *testing.T) *template.Template {
	t.Helper()
	spec := template.Spec{
		Name: "U.S. Reports",
		Tokens: []token.Type{
			{Name: "volume", Regex: "[0-9]+"},
			{Name: "case", Regex: "[A-Z][a-zA-Z.]*", Severable: false},
			{Name: "page", Regex: "[0-9]+"},
		},
		Patterns: []string{`{case}, {volume} U\.? ?S\.? ?{page}`},
		URLBuilder: &builder.Builder{
			Parts: []string{"https://cite.case.law/us/{volume}/{page}"},
		},
	}
	tmpl, err := template.New(spec)
	require.NoError(t, err)
	return tmpl
}

func allNumericTemplate(t *testing.T) *template.Template {
	t.Helper()
	spec := template.Spec{
		Name: "U.S. Reports (bare)",
		Tokens: []token.Type{
			{Name: "volume", Regex: "[0-9]+"},
			{Name: "page", Regex: "[0-9]+"},
		},
		Patterns: []string{`{volume} U\.? ?S\.? ?{page}`},
	}
	tmpl, err := template.New(spec)
	require.NoError(t, err)
	return tmpl
}

func cite(t *testing.T, tmpl *template.Template, text string) *template.Citation {
	t.Helper()
	c, ok := tmpl.Cite(text, false, 0, 0)
	require.True(t, ok)
	return c
}

func TestGroupSeparatesDifferentTemplates(t *testing.T) {
	a := cite(t, riversideTemplate(t), "Riverside, 477 U.S. 561")
	b := cite(t, allNumericTemplate(t), "477 U.S. 561")

	groups := Group([]*template.Citation{a, b})
	assert.Len(t, groups, 2)
}

func TestGroupMergesSameNamedParty(t *testing.T) {
	tmpl := riversideTemplate(t)
	a := cite(t, tmpl, "Riverside, 477 U.S. 561")
	b := cite(t, tmpl, "Riverside, 477 U.S. 574")

	groups := Group([]*template.Citation{a, b})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Citations, 2)
}

func TestGroupSeparatesDifferentNamedParties(t *testing.T) {
	tmpl := riversideTemplate(t)
	a := cite(t, tmpl, "Riverside, 477 U.S. 561")
	b := cite(t, tmpl, "Chevron, 467 U.S. 837")

	groups := Group([]*template.Citation{a, b})
	assert.Len(t, groups, 2)
}

func TestGroupAllNumericTemplateFallsBackToNonSeverableTokens(t *testing.T) {
	tmpl := allNumericTemplate(t)
	a := cite(t, tmpl, "477 U.S. 561")
	b := cite(t, tmpl, "410 U.S. 113")

	groups := Group([]*template.Citation{a, b})
	require.Len(t, groups, 2, "an empty identity-token set must not collapse every citation of an all-numeric template into one Authority")
}

func TestGroupAllNumericTemplateSameVolumePageJoins(t *testing.T) {
	tmpl := allNumericTemplate(t)
	a := cite(t, tmpl, "477 U.S. 561")
	b := cite(t, tmpl, "477 U.S. 561")

	groups := Group([]*template.Citation{a, b})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Citations, 2)
}

func TestGroupSeverableTokenMatchesByPrefix(t *testing.T) {
	spec := template.Spec{
		Name: "U.S. Code",
		Tokens: []token.Type{
			{Name: "title", Regex: "[0-9]+"},
			{Name: "section", Regex: "[0-9]+[A-Za-z]*", Severable: true},
		},
		Patterns: []string{`{title} U\.?S\.?C\.? §§? ?{section}`},
	}
	tmpl, err := template.New(spec)
	require.NoError(t, err)

	// "1988A" carries an upper-case letter, so "section" becomes this
	// group's identity token; "1988" is a prefix of it, and section is
	// severable, so the two citations must join.
	a := cite(t, tmpl, "42 U.S.C. § 1988A")
	b := cite(t, tmpl, "42 U.S.C. § 1988")

	groups := Group([]*template.Citation{a, b})
	require.Len(t, groups, 1, "severable token values that are prefixes of one another must join the same authority")
}

func TestGroupSeverableTokenMismatchSeparates(t *testing.T) {
	spec := template.Spec{
		Name: "U.S. Code",
		Tokens: []token.Type{
			{Name: "title", Regex: "[0-9]+"},
			{Name: "section", Regex: "[0-9]+[A-Za-z]*", Severable: true},
		},
		Patterns: []string{`{title} U\.?S\.?C\.? §§? ?{section}`},
	}
	tmpl, err := template.New(spec)
	require.NoError(t, err)

	a := cite(t, tmpl, "42 U.S.C. § 1988A")
	b := cite(t, tmpl, "42 U.S.C. § 2000")

	groups := Group([]*template.Citation{a, b})
	assert.Len(t, groups, 2)
}
