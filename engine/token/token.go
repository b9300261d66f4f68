// Package token implements TokenType and TokenOperation (spec.md §3, §4.1,
// §4.2): a single field's surface regex, its normalization edits, its
// default, and its severability flag.
package token

import "fmt"

// Type is a named field declaration: a regex fragment (an anonymous group,
// never containing a named group of its own — the Template wraps it once
// with the token's own name), an ordered sequence of edits, an optional
// default, and a severable flag.
type Type struct {
	Name      string
	Regex     string
	Edits     []Operation
	Default   *string
	Severable bool
}

// Normalize applies t's edits, in order, to input — threading the current
// value exactly as spec.md §4.1 describes. If input is nil it returns the
// token's default (which may itself be nil) without running any edits. The
// second return value is false exactly when a mandatory edit reported
// failure, which must collapse the enclosing Citation's construction.
func (t Type) Normalize(input *string) (*string, bool) {
	if input == nil {
		return t.Default, true
	}
	current := input
	for _, edit := range t.Edits {
		next, ok := edit.Apply(current)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func (t Type) String() string {
	return fmt.Sprintf("token(%s)", t.Name)
}
