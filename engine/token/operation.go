package token

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind discriminates the TokenOperation variants. Modeled as a closed tagged
// variant (spec.md §9, "Tagged variants") rather than an interface with one
// struct per operation, matching the single-field-plus-switch shape the
// teacher uses for Severity in compiler/errors.
type Kind int

const (
	// KindSub performs a pure regex substitution; it never fails.
	KindSub Kind = iota
	// KindLookup maps a value through an ordered table of regex keys.
	KindLookup
	// KindCase folds a value's case.
	KindCase
	// KindLpad left-pads a value to a minimum length.
	KindLpad
	// KindNumberStyle reparses and re-renders a numeral 1-40.
	KindNumberStyle
)

// CaseStyle selects the case-folding performed by a KindCase operation.
type CaseStyle int

const (
	CaseUpper CaseStyle = iota
	CaseLower
	CaseTitle
)

// NumberStyle selects the numeral rendering performed by a KindNumberStyle
// operation.
type NumberStyle int

const (
	NumberRoman NumberStyle = iota
	NumberDigit
	NumberCardinal
	NumberOrdinal
)

// LookupEntry is one row of a KindLookup table. Key must already be compiled
// case-insensitive and anchored to a full match (the loader wraps raw
// pattern source as `(?i)^(?:raw)$`); entries are tried in insertion order
// and the first match wins.
type LookupEntry struct {
	Key   *regexp.Regexp
	Value string
}

// Operation is a single string transform: a tagged variant over sub, lookup,
// case, lpad, and number_style (spec.md §3, §4.2). Target/Output name the
// token(s) it reads from and writes to when run by a StringBuilder over a
// shared token map (spec.md §4.3); TokenType-level edits (spec.md §4.1)
// ignore Target/Output and thread a single value directly.
type Operation struct {
	Kind Kind

	// Target is the token this operation reads when run by a StringBuilder.
	Target string
	// Output is the token this operation writes; "" means "rewrite Target
	// in place".
	Output string

	// KindSub
	SubPattern     *regexp.Regexp
	SubReplacement string

	// KindLookup
	Lookup    []LookupEntry
	Mandatory bool

	// KindCase
	Case CaseStyle

	// KindLpad
	MinLen int
	Fill   rune

	// KindNumberStyle
	Style   NumberStyle
	Spacing string
}

var titleCaser = cases.Title(language.Und)

// CompileLookupKey compiles a raw lookup-table key into the full-match,
// case-insensitive form LookupEntry.Key requires.
func CompileLookupKey(raw string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)^(?:` + raw + `)$`)
}

// Apply runs the operation over a single value, threading it the way
// TokenType.normalize does (spec.md §4.1). It returns the transformed value
// and false if a mandatory operation failed — the failure must collapse the
// enclosing Citation or StringBuilder build (spec.md §4.1, §4.3).
func (op Operation) Apply(value *string) (*string, bool) {
	if value == nil {
		// nil only reaches here through StringBuilder's explicit per-token
		// dispatch; TokenType.normalize handles its own nil/default case
		// before ever calling an edit.
		if op.Kind == KindLookup && op.Mandatory {
			return nil, false
		}
		return nil, true
	}

	switch op.Kind {
	case KindSub:
		out := op.SubPattern.ReplaceAllString(*value, op.SubReplacement)
		return &out, true

	case KindLookup:
		for _, entry := range op.Lookup {
			if entry.Key.MatchString(*value) {
				v := entry.Value
				return &v, true
			}
		}
		if op.Mandatory {
			return nil, false
		}
		return value, true

	case KindCase:
		var out string
		switch op.Case {
		case CaseUpper:
			out = strings.ToUpper(*value)
		case CaseLower:
			out = strings.ToLower(*value)
		case CaseTitle:
			out = titleCaser.String(*value)
		}
		return &out, true

	case KindLpad:
		fill := op.Fill
		if fill == 0 {
			fill = '0'
		}
		out := *value
		for len([]rune(out)) < op.MinLen {
			out = string(fill) + out
		}
		return &out, true

	case KindNumberStyle:
		n, ok := parseNumber(*value, op.Spacing)
		if !ok || n < 1 || n > 40 {
			if op.Mandatory {
				return nil, false
			}
			return value, true
		}
		out, err := formatNumber(n, op.Style, op.Spacing)
		if err != nil {
			if op.Mandatory {
				return nil, false
			}
			return value, true
		}
		return &out, true
	}

	return value, true
}
