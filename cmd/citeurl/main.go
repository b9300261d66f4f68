// Command citeurl recognizes legal citations in text and resolves them to
// URLs: a direct CLI over the citator package, grounded on
// cmd/conduit/{main,build,version}.go's cobra root-command shape.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/citeurl-go/citeurl/citator"
	"github.com/citeurl-go/citeurl/engine/citeerr"
	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	templatePaths      []string
	noDefaultTemplates bool
	verbose            bool
	noColor            bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "citeurl",
		Short: "Turn legal citations into URLs",
		Long: `citeurl recognizes legal citations in text (statutes, cases, regulations)
and resolves them to the URLs where they can be read.`,
	}

	rootCmd.PersistentFlags().StringSliceVar(&templatePaths, "templates", nil, "additional template YAML files to load")
	rootCmd.PersistentFlags().BoolVar(&noDefaultTemplates, "no-default-templates", false, "don't load the bundled template sets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")

	rootCmd.AddCommand(
		versionCmd,
		citeCmd,
		listCmd,
		linkCmd,
		templatesCmd,
		authoritiesCmd,
		serveCmd,
		exportJSCmd,
		initCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// loadCitator builds the Citator every command operates on: the bundled
// template sets (unless --no-default-templates) plus any --templates files,
// loaded in the order given so a custom file can override a builtin
// template by name.
func loadCitator() (*citator.Citator, error) {
	var c *citator.Citator
	if noDefaultTemplates {
		c = citator.New()
	} else {
		var err error
		c, err = citator.NewWithBuiltins()
		if err != nil {
			return nil, err
		}
	}
	for _, p := range templatePaths {
		if err := c.LoadFile(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// exitCode maps an error to the process exit code per spec.md §6: 0 on
// success, 2 on a template-load/pattern-compile error, 3 for anything else
// (invalid user input, or "cite" finding no match).
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var loadErr *citeerr.TemplateLoadError
	var compileErr *citeerr.PatternCompileError
	if errors.As(err, &loadErr) || errors.As(err, &compileErr) {
		return 2
	}
	return 3
}
