package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errNoMatch is returned when cite finds nothing — exit code 3 per
// spec.md §6.
var errNoMatch = errors.New("no citation found")

var citeBroad bool

func init() {
	citeCmd.Flags().BoolVar(&citeBroad, "broad", false, "use looser, case-insensitive matching")
}

var citeCmd = &cobra.Command{
	Use:   "cite <query>",
	Short: "Find the first citation in query and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCitator()
		if err != nil {
			return err
		}

		cite, ok := c.Cite(args[0], citeBroad)
		if !ok {
			return errNoMatch
		}

		switch {
		case cite.URL != nil:
			fmt.Println(*cite.URL)
		case cite.Name != nil:
			fmt.Println(*cite.Name)
		default:
			fmt.Println(cite.Text)
		}
		return nil
	},
}
