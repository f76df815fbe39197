package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	root        string
	rulesPath   string
	rulesSource string
	logLevel    string
	logFormat   string
}

func newRootCmd(a *app) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "saku",
		Short: "Vet student council candidates against the constitution's rules",
		Long: `saku extracts election rules and department listings from uploaded
documents, vets candidates against the rules, and reports department coverage.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return usageErrorf("a command is required")
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", "project root (default $SAKU_ROOT or the working directory)")
	flags.StringVar(&opts.rulesPath, "rules", "", "rule document path for the file rules source")
	flags.StringVar(&opts.rulesSource, "rules-source", "", "rule backend: file, postgres or redis")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(
		newIngestCmd(a),
		newRulesCmd(a),
		newRegisterCmd(a),
		newVetCmd(a),
		newCoverageCmd(a),
	)
	return cmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
