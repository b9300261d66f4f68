package jsexport

import (
	"encoding/json"
	"testing"

	"github.com/citeurl-go/citeurl/citator"
	"github.com/citeurl-go/citeurl/engine/builder"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/engine/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestCitator(t *testing.T) *citator.Citator {
	t.Helper()
	tmpl, err := template.New(template.Spec{
		Name:   "U.S. Code",
		Tokens: []token.Type{{Name: "title", Regex: "[0-9]+"}, {Name: "section", Regex: "[0-9]+"}},
		Patterns: []string{
			`{title} U\.S\.C\. §§? ?{section}`,
		},
		URLBuilder: &builder.Builder{
			Parts: []string{"https://uscode.house.gov/view.xhtml?req=", "{title}", "/", "{section}"},
		},
	})
	require.NoError(t, err)

	noURL, err := template.New(template.Spec{
		Name:     "Unlinked Set",
		Tokens:   []token.Type{{Name: "x", Regex: "[0-9]+"}},
		Patterns: []string{`x{x}`},
	})
	require.NoError(t, err)

	c := citator.New()
	c.AddTemplate(tmpl)
	c.AddTemplate(noURL)
	return c
}

func TestExportSkipsTemplatesWithoutURLBuilder(t *testing.T) {
	c := buildTestCitator(t)
	data, err := Export(c)
	require.NoError(t, err)

	var out []templateExport
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "U.S. Code", out[0].Name)
}

func TestExportRenamesNamedCaptureGroupsForJSDialect(t *testing.T) {
	c := buildTestCitator(t)
	data, err := Export(c)
	require.NoError(t, err)

	var out []templateExport
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out[0].Regexes)
	for _, src := range out[0].Regexes {
		assert.NotContains(t, src, "(?P<")
	}
}

func TestExportIncludesURLParts(t *testing.T) {
	c := buildTestCitator(t)
	data, err := Export(c)
	require.NoError(t, err)

	var out []templateExport
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, []string{"https://uscode.house.gov/view.xhtml?req=", "{title}", "/", "{section}"}, out[0].URLParts)
}
