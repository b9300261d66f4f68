package httpserver

import "github.com/citeurl-go/citeurl/citator"

// newCitatorFromPaths builds a fresh Citator from the given template
// document paths, falling back to the builtin template sets when none are
// given (the dev-server's common case: "reload what's already wired").
func newCitatorFromPaths(paths []string) (*citator.Citator, error) {
	if len(paths) == 0 {
		return citator.NewWithBuiltins()
	}

	c := citator.New()
	for _, p := range paths {
		if err := c.LoadFile(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
