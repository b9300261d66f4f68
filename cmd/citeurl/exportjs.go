package main

import (
	"os"

	"github.com/citeurl-go/citeurl/internal/cliui"
	"github.com/citeurl-go/citeurl/internal/jsexport"
	"github.com/spf13/cobra"
)

var exportJSOut string

func init() {
	exportJSCmd.Flags().StringVarP(&exportJSOut, "out", "o", "", "write to this file instead of stdout")
}

var exportJSCmd = &cobra.Command{
	Use:   "export-js",
	Short: "Export loaded templates as JSON for the lookup-only browser script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCitator()
		if err != nil {
			return err
		}

		data, err := jsexport.Export(c)
		if err != nil {
			return err
		}

		if exportJSOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(exportJSOut, data, 0o644); err != nil {
			return err
		}
		cliui.WriteSuccess(os.Stdout, "wrote "+exportJSOut, noColor)
		return nil
	},
}
