package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/citeurl-go/citeurl/engine/citeerr"
	"github.com/citeurl-go/citeurl/internal/cliui"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect loaded templates",
}

var templatesListJSON bool

func init() {
	templatesListCmd.Flags().BoolVar(&templatesListJSON, "json", false, "print template names as JSON instead of a table")
	templatesCmd.AddCommand(templatesListCmd, templatesValidateCmd)
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every loaded template's name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCitator()
		if err != nil {
			return err
		}

		names := c.Names()
		if templatesListJSON {
			return json.NewEncoder(os.Stdout).Encode(names)
		}

		table := cliui.NewTable(os.Stdout, []string{"Name"}, &cliui.TableOptions{NoColor: noColor})
		for _, name := range names {
			table.AddRow(name)
		}
		table.Render()
		return nil
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every template file and report compile errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := loadCitator()
		if err == nil {
			cliui.WriteSuccess(os.Stdout, "all templates loaded and compiled cleanly", noColor)
			return nil
		}

		var loadErr *citeerr.TemplateLoadError
		var compileErr *citeerr.PatternCompileError
		name := "unknown"
		switch {
		case errors.As(err, &loadErr):
			name = loadErr.Template
		case errors.As(err, &compileErr):
			name = compileErr.Template
		}

		fmt.Fprint(os.Stderr, cliui.TemplateLoadErrorMessage(name, err, noColor))
		return err
	},
}
