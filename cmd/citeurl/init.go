package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/citeurl-go/citeurl/internal/cliui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing citeurl.yml")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively write a citeurl.yml config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !initForce {
			if _, err := os.Stat("citeurl.yml"); err == nil {
				return fmt.Errorf("citeurl.yml already exists; pass --force to overwrite")
			}
		}

		answers := struct {
			Host      string
			Port      string
			Sets      string
			StoreDSN  string
			JWTSecret string
		}{}

		questions := []*survey.Question{
			{
				Name:   "host",
				Prompt: &survey.Input{Message: "Server host:", Default: "0.0.0.0"},
			},
			{
				Name:   "port",
				Prompt: &survey.Input{Message: "Server port:", Default: "8080"},
			},
			{
				Name: "sets",
				Prompt: &survey.Input{
					Message: "Template set names to record under template_sets (comma-separated, optional):",
					Default: "",
				},
			},
			{
				Name: "storeDSN",
				Prompt: &survey.Input{
					Message: "Lookup history database DSN (optional):",
					Default: "",
					Help:    "Written to citeurl.yml's store section; citeurl serve does not read it",
				},
			},
			{
				Name: "jwtSecret",
				Prompt: &survey.Input{
					Message: "Admin reload JWT secret (optional, generate your own in production):",
					Default: "",
				},
			},
		}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		var port int
		if _, err := fmt.Sscanf(answers.Port, "%d", &port); err != nil {
			port = 8080
		}

		cfg := map[string]any{
			"server": map[string]any{
				"host": answers.Host,
				"port": port,
			},
			"store": map[string]any{
				"driver": "sqlite3",
				"dsn":    answers.StoreDSN,
			},
			"auth": map[string]any{
				"jwt_secret": answers.JWTSecret,
				"token_ttl":  "24h",
			},
			"template_sets": splitCommaList(answers.Sets),
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		if err := os.WriteFile("citeurl.yml", data, 0o644); err != nil {
			return err
		}

		cliui.WriteSuccess(os.Stdout, "wrote citeurl.yml", noColor)
		return nil
	},
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
