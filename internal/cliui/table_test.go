package cliui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTableRendersHeadersAndRows(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Template", "Span", "URL"}, &TableOptions{NoColor: true})
	table.AddRow("U.S. Code", "42 U.S.C. § 1988", "https://www.law.cornell.edu/uscode/text/42/1988")

	table.Render()
	output := buf.String()

	if !strings.Contains(output, "Template") {
		t.Errorf("table output missing header 'Template'")
	}
	if !strings.Contains(output, "U.S. Code") {
		t.Errorf("table output missing row data 'U.S. Code'")
	}
}

func TestHighlightCitationNoColor(t *testing.T) {
	out := HighlightCitation("42 U.S.C. § 1988", true)
	if out != "42 U.S.C. § 1988" {
		t.Errorf("expected no-color highlight to pass text through unchanged, got %q", out)
	}
}
