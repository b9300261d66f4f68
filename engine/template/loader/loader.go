// Package loader decodes declarative template documents (YAML, loaded via
// spf13/viper the way internal/cli/config loads project configuration)
// into template.Spec values that template.New can compile.
//
// The document's keys are snake_case (url_builder, broad_patterns, ...)
// rather than the spaced keys ("URL builder") the Python source accepted;
// this is a deliberate normalization to idiomatic Go/YAML conventions, not
// a semantic change — see DESIGN.md.
package loader

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/citeurl-go/citeurl/engine/builder"
	"github.com/citeurl-go/citeurl/engine/citeerr"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/engine/token"
)

// rawDocument's Templates and each rawTemplate's Tokens are YAML
// SEQUENCES, not mappings — a mapping decodes into a Go map, which has no
// defined iteration order, and this engine's template declaration order
// and citator template order are both load-bearing (spec.md §3's Template
// invariant 3, §4.7 step 1). Each element names itself explicitly instead.
type rawDocument struct {
	Templates []rawTemplate `mapstructure:"templates"`
}

type rawTemplate struct {
	Name              string            `mapstructure:"name"`
	Inherit           string            `mapstructure:"inherit"`
	Meta              map[string]string `mapstructure:"meta"`
	Tokens            []rawToken        `mapstructure:"tokens"`
	Pattern           string            `mapstructure:"pattern"`
	Patterns          []string          `mapstructure:"patterns"`
	BroadPattern      string            `mapstructure:"broad_pattern"`
	BroadPatterns     []string          `mapstructure:"broad_patterns"`
	ShortformPattern  string            `mapstructure:"shortform_pattern"`
	ShortformPatterns []string          `mapstructure:"shortform_patterns"`
	IdformPattern     string            `mapstructure:"idform_pattern"`
	IdformPatterns    []string          `mapstructure:"idform_patterns"`
	URLBuilder        *rawBuilder       `mapstructure:"url_builder"`
	NameBuilder       *rawBuilder       `mapstructure:"name_builder"`
}

type rawToken struct {
	Name      string         `mapstructure:"name"`
	Regex     string         `mapstructure:"regex"`
	Edits     []rawOperation `mapstructure:"edits"`
	Default   *string        `mapstructure:"default"`
	Severable bool           `mapstructure:"severable"`
}

type rawBuilder struct {
	Parts    []string       `mapstructure:"parts"`
	Edits    []rawOperation `mapstructure:"edits"`
	Defaults map[string]string `mapstructure:"defaults"`
}

type rawOperation struct {
	Sub         []string          `mapstructure:"sub"`
	Lookup      map[string]string `mapstructure:"lookup"`
	Case        string            `mapstructure:"case"`
	Lpad        interface{}       `mapstructure:"lpad"`
	NumberStyle string            `mapstructure:"number_style"`
	Mandatory   *bool             `mapstructure:"mandatory"`
	Token       string            `mapstructure:"token"`
	Output      string            `mapstructure:"output"`
}

// Load reads a declarative template document from path (any format viper
// supports by extension — YAML is the documented default), compiles every
// template within it, resolving `inherit` references along the way, and
// returns both the compiled-by-name map and the document's declaration
// order.
func Load(path string) (templates map[string]*template.Template, order []string, err error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("reading template document %s: %w", path, err)
	}

	var doc rawDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding template document %s: %w", path, err)
	}

	compiled, err := Compile(doc.Templates)
	if err != nil {
		return nil, nil, err
	}
	return compiled, Names(doc.Templates), nil
}

// LoadBytes is Load's in-memory counterpart, for embedded template sets
// and tests that don't want a file on disk.
func LoadBytes(data []byte) (templates map[string]*template.Template, order []string, err error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, nil, fmt.Errorf("reading template document: %w", err)
	}

	var doc rawDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding template document: %w", err)
	}

	compiled, err := Compile(doc.Templates)
	if err != nil {
		return nil, nil, err
	}
	return compiled, Names(doc.Templates), nil
}

// Compile resolves `inherit` chains and compiles every raw template, in
// document order, returning a map from template name to compiled
// *template.Template. Declaration order (spec.md §4.7 step 1) is the
// caller's concern — citator.Citator.add records it separately since a
// Go map cannot.
func Compile(raws []rawTemplate) (map[string]*template.Template, error) {
	byName := make(map[string]rawTemplate, len(raws))
	for _, r := range raws {
		byName[r.Name] = r
	}

	specs := make(map[string]template.Spec, len(raws))
	resolving := make(map[string]bool)

	var resolve func(name string) (template.Spec, error)
	resolve = func(name string) (template.Spec, error) {
		if spec, ok := specs[name]; ok {
			return spec, nil
		}
		if resolving[name] {
			return template.Spec{}, &citeerr.TemplateLoadError{Template: name, Reason: "circular inherit chain"}
		}
		raw, ok := byName[name]
		if !ok {
			return template.Spec{}, &citeerr.TemplateLoadError{Template: name, Reason: "not found"}
		}
		resolving[name] = true

		var spec template.Spec
		if raw.Inherit != "" {
			parent, err := resolve(raw.Inherit)
			if err != nil {
				return template.Spec{}, err
			}
			spec = parent
		}
		spec.Name = name

		merged, err := mergeTemplate(name, spec, raw)
		if err != nil {
			return template.Spec{}, err
		}
		specs[name] = merged
		resolving[name] = false
		return merged, nil
	}

	compiled := make(map[string]*template.Template, len(raws))
	for _, raw := range raws {
		spec, err := resolve(raw.Name)
		if err != nil {
			return nil, err
		}
		t, err := template.New(spec)
		if err != nil {
			return nil, err
		}
		compiled[raw.Name] = t
	}
	return compiled, nil
}

// Names returns raws' template names in document order, for a caller that
// needs to preserve declaration order alongside the map Compile returns.
func Names(raws []rawTemplate) []string {
	out := make([]string, len(raws))
	for i, r := range raws {
		out[i] = r.Name
	}
	return out
}

// mergeTemplate overlays raw's own declarations on top of an inherited
// base Spec: meta keys are merged, token order is base-then-own (own
// overriding a same-named base token in place), and every pattern list is
// simply overridden when the child declares its own.
func mergeTemplate(name string, base template.Spec, raw rawTemplate) (template.Spec, error) {
	spec := base
	spec.Name = name

	if raw.Meta != nil {
		merged := make(map[string]string, len(base.Meta)+len(raw.Meta))
		for k, v := range base.Meta {
			merged[k] = v
		}
		for k, v := range raw.Meta {
			merged[k] = v
		}
		spec.Meta = merged
	}

	if len(raw.Tokens) > 0 {
		tokens, err := mergeTokens(spec.Tokens, raw.Tokens)
		if err != nil {
			return template.Spec{}, fmt.Errorf("template %q: %w", name, err)
		}
		spec.Tokens = tokens
	}

	patterns, err := patternList(raw.Pattern, raw.Patterns)
	if err != nil {
		return template.Spec{}, fmt.Errorf("template %q: %w", name, err)
	}
	if patterns != nil {
		spec.Patterns = patterns
	}
	broad, err := patternList(raw.BroadPattern, raw.BroadPatterns)
	if err != nil {
		return template.Spec{}, fmt.Errorf("template %q: %w", name, err)
	}
	if broad != nil {
		spec.BroadPatterns = broad
	}
	shortforms, err := patternList(raw.ShortformPattern, raw.ShortformPatterns)
	if err != nil {
		return template.Spec{}, fmt.Errorf("template %q: %w", name, err)
	}
	if shortforms != nil {
		spec.ShortformPatterns = shortforms
	}
	idforms, err := patternList(raw.IdformPattern, raw.IdformPatterns)
	if err != nil {
		return template.Spec{}, fmt.Errorf("template %q: %w", name, err)
	}
	if idforms != nil {
		spec.IdformPatterns = idforms
	}

	if raw.URLBuilder != nil {
		b, err := compileBuilder(*raw.URLBuilder, spec.Meta)
		if err != nil {
			return template.Spec{}, fmt.Errorf("template %q: URL builder: %w", name, err)
		}
		spec.URLBuilder = b
	}
	if raw.NameBuilder != nil {
		b, err := compileBuilder(*raw.NameBuilder, spec.Meta)
		if err != nil {
			return template.Spec{}, fmt.Errorf("template %q: name builder: %w", name, err)
		}
		spec.NameBuilder = b
	}

	return spec, nil
}

// mergeTokens appends tokens from raw not present in base, and replaces
// tokens that are in place, preserving declared order (base order first,
// new token names appended in the order they're declared in the document).
func mergeTokens(base []token.Type, raw []rawToken) ([]token.Type, error) {
	index := make(map[string]int, len(base))
	out := append([]token.Type{}, base...)
	for i, t := range out {
		index[t.Name] = i
	}

	for _, r := range raw {
		compiled, err := compileToken(r.Name, r)
		if err != nil {
			return nil, err
		}
		if i, ok := index[r.Name]; ok {
			out[i] = compiled
		} else {
			index[r.Name] = len(out)
			out = append(out, compiled)
		}
	}
	return out, nil
}

func compileToken(name string, raw rawToken) (token.Type, error) {
	edits, err := compileOperations(raw.Edits, "")
	if err != nil {
		return token.Type{}, fmt.Errorf("token %q: %w", name, err)
	}
	return token.Type{
		Name:      name,
		Regex:     raw.Regex,
		Edits:     edits,
		Default:   raw.Default,
		Severable: raw.Severable,
	}, nil
}

func compileBuilder(raw rawBuilder, meta map[string]string) (*builder.Builder, error) {
	edits, err := compileOperations(raw.Edits, "")
	if err != nil {
		return nil, err
	}
	defaults := make(map[string]string, len(meta)+len(raw.Defaults))
	for k, v := range meta {
		defaults[k] = v
	}
	for k, v := range raw.Defaults {
		defaults[k] = v
	}
	return &builder.Builder{Parts: raw.Parts, Edits: edits, Defaults: defaults}, nil
}

func compileOperations(raws []rawOperation, defaultTarget string) ([]token.Operation, error) {
	out := make([]token.Operation, 0, len(raws))
	for _, r := range raws {
		op, err := compileOperation(r, defaultTarget)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

func compileOperation(r rawOperation, defaultTarget string) (token.Operation, error) {
	mandatory := true
	if r.Mandatory != nil {
		mandatory = *r.Mandatory
	}
	target := r.Token
	if target == "" {
		target = defaultTarget
	}
	base := token.Operation{Target: target, Output: r.Output, Mandatory: mandatory}

	switch {
	case len(r.Sub) == 2:
		re, err := regexp.Compile(r.Sub[0])
		if err != nil {
			return token.Operation{}, fmt.Errorf("sub operation: %w", err)
		}
		base.Kind = token.KindSub
		base.SubPattern = re
		base.SubReplacement = r.Sub[1]

	case len(r.Lookup) > 0:
		entries := make([]token.LookupEntry, 0, len(r.Lookup))
		for k, v := range r.Lookup {
			key, err := token.CompileLookupKey(k)
			if err != nil {
				return token.Operation{}, fmt.Errorf("lookup operation: %w", err)
			}
			entries = append(entries, token.LookupEntry{Key: key, Value: v})
		}
		base.Kind = token.KindLookup
		base.Lookup = entries

	case r.Case != "":
		base.Kind = token.KindCase
		switch r.Case {
		case "upper":
			base.Case = token.CaseUpper
		case "lower":
			base.Case = token.CaseLower
		case "title":
			base.Case = token.CaseTitle
		default:
			return token.Operation{}, fmt.Errorf("unknown case style %q", r.Case)
		}

	case r.Lpad != nil:
		minLen, fill, err := parseLpad(r.Lpad)
		if err != nil {
			return token.Operation{}, fmt.Errorf("lpad operation: %w", err)
		}
		base.Kind = token.KindLpad
		base.MinLen = minLen
		base.Fill = fill

	case r.NumberStyle != "":
		base.Kind = token.KindNumberStyle
		style, spacing, err := parseNumberStyle(r.NumberStyle)
		if err != nil {
			return token.Operation{}, err
		}
		base.Style = style
		base.Spacing = spacing

	default:
		return token.Operation{}, &citeerr.TemplateLoadError{Reason: "edit has no recognized action (sub/lookup/case/lpad/number_style)"}
	}

	return base, nil
}

// parseLpad accepts either a bare length (`lpad: 3`) or a [length, fill]
// pair (`lpad: [3, " "]`), matching the source's tuple-or-int convenience.
func parseLpad(raw interface{}) (int, rune, error) {
	toInt := func(v interface{}) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case float64:
			return int(n), true
		}
		return 0, false
	}

	switch v := raw.(type) {
	case []interface{}:
		if len(v) == 0 {
			return 0, '0', fmt.Errorf("empty lpad list")
		}
		minLen, ok := toInt(v[0])
		if !ok {
			return 0, '0', fmt.Errorf("lpad length must be a number")
		}
		fill := '0'
		if len(v) > 1 {
			if s, ok := v[1].(string); ok && s != "" {
				fill = []rune(s)[0]
			}
		}
		return minLen, fill, nil
	default:
		minLen, ok := toInt(v)
		if !ok {
			return 0, '0', fmt.Errorf("lpad must be a number or [number, fill]")
		}
		return minLen, '0', nil
	}
}

// numberStyleSpacing maps the source's "spaced"/"unspaced" qualifiers onto
// the actual separator intToCardinalWords/intToOrdinalWords join with; a
// bare "cardinal"/"ordinal" with no qualifier defaults to hyphenated
// ("twenty-seven"), matching original_source/citeurl/tokens.py's
// number_style options.
func numberStyleSpacing(qualifier string) (string, error) {
	switch qualifier {
	case "":
		return "-", nil
	case "spaced":
		return " ", nil
	case "unspaced":
		return "", nil
	default:
		return "", fmt.Errorf("unknown number_style spacing %q", qualifier)
	}
}

func parseNumberStyle(raw string) (token.NumberStyle, string, error) {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return 0, "", fmt.Errorf("empty number_style")
	}
	var style token.NumberStyle
	switch parts[0] {
	case "roman":
		style = token.NumberRoman
		return style, "", nil
	case "digit":
		style = token.NumberDigit
		return style, "", nil
	case "cardinal":
		style = token.NumberCardinal
	case "ordinal":
		style = token.NumberOrdinal
	default:
		return 0, "", fmt.Errorf("unknown number_style %q", raw)
	}
	qualifier := ""
	if len(parts) > 1 {
		qualifier = parts[1]
	}
	spacing, err := numberStyleSpacing(qualifier)
	if err != nil {
		return 0, "", fmt.Errorf("number_style %q: %w", raw, err)
	}
	return style, spacing, nil
}

// patternList normalizes a template document's singular/plural pattern
// fields into one ordered list, matching the source's "pattern" vs
// "patterns" convenience (spec.md's Template invariants don't distinguish
// them — both compile into the same Patterns/BroadPatterns/etc. slice).
// It returns nil (as opposed to an empty, non-nil slice) when the
// document set neither field, so callers can tell "unset" from "cleared".
func patternList(singular string, plural []string) ([]string, error) {
	if singular != "" && len(plural) > 0 {
		return nil, fmt.Errorf("both singular and plural pattern fields set")
	}
	if singular != "" {
		return []string{singular}, nil
	}
	if len(plural) > 0 {
		return plural, nil
	}
	return nil, nil
}
