package main

import (
	"encoding/json"
	"os"

	"github.com/citeurl-go/citeurl/internal/cliui"
	"github.com/spf13/cobra"
)

var authoritiesJSON bool

func init() {
	authoritiesCmd.Flags().BoolVar(&authoritiesJSON, "json", false, "print authorities as JSON instead of a table")
}

var authoritiesCmd = &cobra.Command{
	Use:   "authorities <file|->",
	Short: "Group every citation found in a file into authorities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return err
		}

		c, err := loadCitator()
		if err != nil {
			return err
		}

		authorities := c.Authorities(text, nil)

		if authoritiesJSON {
			type authorityJSON struct {
				Template  string         `json:"template"`
				Citations []citationJSON `json:"citations"`
			}
			out := make([]authorityJSON, 0, len(authorities))
			for _, a := range authorities {
				cites := make([]citationJSON, 0, len(a.Citations))
				for _, c := range a.Citations {
					cites = append(cites, toCitationJSON(c))
				}
				out = append(out, authorityJSON{Template: a.TemplateName, Citations: cites})
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		table := cliui.NewTable(os.Stdout, []string{"Template", "Citations"}, &cliui.TableOptions{NoColor: noColor})
		for _, a := range authorities {
			texts := make([]string, 0, len(a.Citations))
			for _, c := range a.Citations {
				texts = append(texts, c.Text)
			}
			table.AddRow(a.TemplateName, joinComma(texts))
		}
		table.Render()
		return nil
	},
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
