package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTypeNormalizeNilUsesDefault(t *testing.T) {
	def := strPtr("en banc")
	typ := Type{Name: "panel", Default: def}

	got, ok := typ.Normalize(nil)
	assert.True(t, ok)
	assert.Equal(t, def, got)
}

func TestTypeNormalizeAppliesEditsInOrder(t *testing.T) {
	upperOp := Operation{Kind: KindCase, Case: CaseUpper}
	subOp := Operation{
		Kind:           KindSub,
		SubPattern:     regexp.MustCompile("A"),
		SubReplacement: "4",
	}
	typ := Type{Name: "section", Edits: []Operation{upperOp, subOp}}

	got, ok := typ.Normalize(strPtr("abc"))
	assert.True(t, ok)
	assert.Equal(t, "4BC", *got)
}

func TestTypeNormalizeMandatoryFailureCollapses(t *testing.T) {
	lookup := Operation{
		Kind:      KindLookup,
		Mandatory: true,
		Lookup:    []LookupEntry{{Key: regexp.MustCompile("(?i)^foo$"), Value: "bar"}},
	}
	typ := Type{Name: "court", Edits: []Operation{lookup}}

	got, ok := typ.Normalize(strPtr("unmatched"))
	assert.False(t, ok)
	assert.Nil(t, got)
}
