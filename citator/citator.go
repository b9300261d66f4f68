// Package citator is the top-level facade (spec.md §4.9): it loads
// template sets from declarative documents and orchestrates the Scanner,
// Rewriter, and Authority grouping over them.
package citator

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"sync"

	"github.com/citeurl-go/citeurl/engine/authority"
	"github.com/citeurl-go/citeurl/engine/rewriter"
	"github.com/citeurl-go/citeurl/engine/scanner"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/engine/template/loader"
)

//go:embed templates/*.yaml
var builtinTemplates embed.FS

// DefaultIDBreak matches the boundary phrases that interrupt a chain of
// id-form citations: a following law-review or similar citation's
// characteristic punctuation (spec.md's GENERIC_ID/breakpoint design).
var DefaultIDBreak = regexp.MustCompile(`L\. ?Rev\.|J\. ?Law|\. ?(?:[Cc]ode|[Cc]onst)`)

// Citator holds a named, ordered set of compiled templates.
type Citator struct {
	mu    sync.RWMutex
	names []string
	byName map[string]*template.Template
}

// New returns an empty Citator with no templates loaded.
func New() *Citator {
	return &Citator{byName: make(map[string]*template.Template)}
}

// NewWithBuiltins returns a Citator preloaded with every template document
// embedded under templates/*.yaml.
func NewWithBuiltins() (*Citator, error) {
	c := New()
	entries, err := fs.Glob(builtinTemplates, "templates/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	for _, path := range entries {
		data, err := builtinTemplates.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := c.LoadYAMLBytes(data); err != nil {
			return nil, fmt.Errorf("loading builtin template set %s: %w", path, err)
		}
	}
	return c, nil
}

// LoadFile loads and compiles every template in a declarative document,
// adding them after (and allowed to `inherit` from) whatever is already
// loaded. A template sharing a name with one already loaded replaces it.
func (c *Citator) LoadFile(path string) error {
	compiled, order, err := loader.Load(path)
	if err != nil {
		return err
	}
	c.add(compiled, order)
	return nil
}

// LoadYAMLBytes is LoadFile's in-memory counterpart, used for embedded
// builtin template sets and tests.
func (c *Citator) LoadYAMLBytes(data []byte) error {
	compiled, order, err := loader.LoadBytes(data)
	if err != nil {
		return err
	}
	c.add(compiled, order)
	return nil
}

// AddTemplate registers an already-compiled Template directly, after
// anything loaded from files — matching the source's "templates passed to
// the constructor load last" rule.
func (c *Citator) AddTemplate(t *template.Template) {
	c.add(map[string]*template.Template{t.Name: t}, []string{t.Name})
}

// add merges compiled templates into the citator, appending newly-seen
// names to the declaration order and overwriting a same-named template's
// compiled form in place (order position unchanged on overwrite).
func (c *Citator) add(compiled map[string]*template.Template, order []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range order {
		if _, exists := c.byName[name]; !exists {
			c.names = append(c.names, name)
		}
		c.byName[name] = compiled[name]
	}
}

// Names returns every loaded template's name, in declaration order.
func (c *Citator) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Template returns the named template, if loaded.
func (c *Citator) Template(name string) (*template.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byName[name]
	return t, ok
}

func (c *Citator) templates() scanner.Templates {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(scanner.Templates, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Cite returns the first longform citation found in text, across every
// loaded template in declared order, or false if none match.
func (c *Citator) Cite(text string, broad bool) (*template.Citation, bool) {
	for _, t := range c.templates() {
		if cite, ok := t.Cite(text, broad, 0, len(text)); ok {
			return cite, true
		}
	}
	return nil, false
}

// ListCites runs the full Scanner pass (longform, shortform, id-form,
// overlap resolution) over text using idBreak as the id-chain breakpoint
// pattern (nil disables it).
func (c *Citator) ListCites(text string, idBreak *regexp.Regexp) []*template.Citation {
	return scanner.Scan(text, c.templates(), scanner.Options{Broad: false, IDBreak: idBreak})
}

// InsertLinks runs ListCites and splices anchors into text per policy.
func (c *Citator) InsertLinks(text string, idBreak *regexp.Regexp, policy rewriter.Policy) string {
	cites := c.ListCites(text, idBreak)
	return rewriter.Insert(text, cites, policy)
}

// Authorities groups every citation ListCites finds into Authorities.
func (c *Citator) Authorities(text string, idBreak *regexp.Regexp) []*authority.Authority {
	return authority.Group(c.ListCites(text, idBreak))
}

var (
	defaultOnce sync.Once
	defaultInst *Citator
	defaultErr  error
)

// Default returns a process-wide Citator preloaded with the builtin
// template sets, building it once on first call.
func Default() (*Citator, error) {
	defaultOnce.Do(func() {
		defaultInst, defaultErr = NewWithBuiltins()
	})
	return defaultInst, defaultErr
}
