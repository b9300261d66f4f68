package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/internal/cliui"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print citations as JSON instead of a table")
}

var listCmd = &cobra.Command{
	Use:   "list <file|->",
	Short: "List every citation found in a file (or stdin)",
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

		cites := c.ListCites(text, nil)

		if listJSON {
			dtos := make([]citationJSON, 0, len(cites))
			for _, cite := range cites {
				dtos = append(dtos, toCitationJSON(cite))
			}
			return json.NewEncoder(os.Stdout).Encode(dtos)
		}

		table := cliui.NewTable(os.Stdout, []string{"Template", "Span", "URL"}, &cliui.TableOptions{NoColor: noColor})
		for _, cite := range cites {
			url := ""
			if cite.URL != nil {
				url = *cite.URL
			}
			table.AddRow(cite.Template.Name, cliui.HighlightCitation(cite.Text, noColor), url)
		}
		table.Render()
		fmt.Printf("\n%d citation(s) found\n", len(cites))
		return nil
	},
}

// citationJSON is the JSON shape citeurl's subcommands print, trimmed of
// the engine's internal Template pointer and child-regex machinery.
type citationJSON struct {
	Template string             `json:"template"`
	Start    int                `json:"start"`
	End      int                `json:"end"`
	Text     string             `json:"text"`
	Tokens   map[string]*string `json:"tokens"`
	URL      *string            `json:"url,omitempty"`
	Name     *string            `json:"name,omitempty"`
	IsIDForm bool               `json:"is_id_form"`
}

func toCitationJSON(c *template.Citation) citationJSON {
	return citationJSON{
		Template: c.Template.Name,
		Start:    c.Start,
		End:      c.End,
		Text:     c.Text,
		Tokens:   c.PublicTokens(),
		URL:      c.URL,
		Name:     c.Name,
		IsIDForm: c.IsIDForm,
	}
}
