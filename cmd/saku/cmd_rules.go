package main

import (
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the loaded rule set as JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := a.ruleLoader(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, rs)
		},
	}
}
