// Package builder implements StringBuilder (spec.md §3, §4.3): composing a
// URL or canonical name from tokens and metadata via an ordered list of
// literal parts with `{name}` placeholders.
package builder

import (
	"regexp"
	"strings"

	"github.com/citeurl-go/citeurl/engine/token"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Builder is an ordered sequence of text parts, a set of edits to run over
// an ephemeral token copy, and a defaults map.
type Builder struct {
	Parts    []string
	Edits    []token.Operation
	Defaults map[string]string
}

// Build runs the five-step algorithm of spec.md §4.3 and returns the
// composed string, or nil if nothing was produced or a mandatory edit
// failed.
func (b Builder) Build(tokens map[string]*string) *string {
	// 1. Merge defaults under supplied tokens (supplied wins).
	merged := make(map[string]*string, len(tokens)+len(b.Defaults))
	for name, v := range b.Defaults {
		v := v
		merged[name] = &v
	}
	for name, v := range tokens {
		merged[name] = v
	}

	// 2. Filter out entries with empty values.
	for name, v := range merged {
		if v == nil || *v == "" {
			delete(merged, name)
		}
	}

	// 3. Apply edits in order on a private copy.
	for _, edit := range b.Edits {
		target := edit.Target
		cur := merged[target]
		next, ok := edit.Apply(cur)
		if !ok {
			return nil
		}
		out := edit.Output
		if out == "" {
			out = target
		}
		if next == nil || *next == "" {
			delete(merged, out)
		} else {
			merged[out] = next
		}
	}

	// 4. Interpolate each part; skip parts with an unset placeholder.
	var result strings.Builder
	produced := false
	for _, part := range b.Parts {
		rendered, ok := interpolate(part, merged)
		if !ok {
			continue
		}
		result.WriteString(rendered)
		produced = true
	}

	// 5. Concatenation, or nil if nothing was produced.
	if !produced {
		return nil
	}
	out := result.String()
	return &out
}

// interpolate replaces every `{name}` placeholder in part with the
// corresponding token value. If any referenced name is missing the whole
// part is dropped silently per spec.md §3/§4.3.
func interpolate(part string, tokens map[string]*string) (string, bool) {
	missing := false
	out := placeholderRe.ReplaceAllStringFunc(part, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		v, ok := tokens[name]
		if !ok || v == nil {
			missing = true
			return ""
		}
		return *v
	})
	if missing {
		return "", false
	}
	return out, true
}
