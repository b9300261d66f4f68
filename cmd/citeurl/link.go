package main

import (
	"fmt"
	"os"

	"github.com/citeurl-go/citeurl/engine/rewriter"
	"github.com/spf13/cobra"
)

var (
	linkURLOptional    bool
	linkRedundantLinks bool
	linkPlainIDs       bool
	linkDetailedIDs    bool
)

func init() {
	linkCmd.Flags().BoolVar(&linkURLOptional, "url-optional", false, "link citations even when they have no URL")
	linkCmd.Flags().BoolVar(&linkRedundantLinks, "redundant-links", false, "link a citation whose URL repeats the previous one")
	linkCmd.Flags().BoolVar(&linkPlainIDs, "link-plain-ids", true, "link id-form citations with no named capture group, e.g. a bare \"Id.\"")
	linkCmd.Flags().BoolVar(&linkDetailedIDs, "link-detailed-ids", true, "link id-form citations with named capture groups")
}

var linkCmd = &cobra.Command{
	Use:   "link <file|->",
	Short: "Print file with every citation wrapped in an <a> element",
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

		policy := rewriter.Policy{
			URLOptional:     linkURLOptional,
			RedundantLinks:  linkRedundantLinks,
			LinkPlainIDs:    linkPlainIDs,
			LinkDetailedIDs: linkDetailedIDs,
		}

		fmt.Fprint(os.Stdout, c.InsertLinks(text, nil, policy))
		return nil
	},
}
