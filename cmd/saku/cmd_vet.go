package main

import (
	"github.com/spf13/cobra"

	"saku/internal/candidate/service"
	dErrors "saku/pkg/domain-errors"
)

type vetOptions struct {
	candidates string
	out        string
	all        bool
	metricsOut string
}

func newVetCmd(a *app) *cobra.Command {
	var opts vetOptions

	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Vet every candidate not yet vetted",
		Long: `Loads the rules once and vets each NOT_STARTED candidate, or every
candidate with --all. Candidates whose rules cannot be evaluated are listed
as errored and make the command exit 1. Vetted records from --candidates
are written back to that file unless --out names another.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, mem, err := a.candidates(ctx, opts.candidates)
			if err != nil {
				return err
			}
			svc, err := a.newService(ctx, store)
			if err != nil {
				return err
			}

			var summary service.RunSummary
			if opts.all {
				summary, err = svc.VetAll(ctx)
			} else {
				summary, err = svc.VetPending(ctx)
			}
			if err != nil {
				return err
			}

			if mem != nil {
				out := opts.out
				if out == "" {
					out = opts.candidates
				}
				if err := mem.WriteJSONFile(ctx, out); err != nil {
					return err
				}
			}
			if err := a.writeMetrics(opts.metricsOut); err != nil {
				return err
			}
			if err := writeJSON(a.stdout, summary); err != nil {
				return err
			}
			if n := len(summary.Errored); n > 0 {
				return dErrors.Newf(dErrors.CodeRuleEvaluation, "%d candidate(s) could not be evaluated", n)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.candidates, "candidates", "", "candidate records JSON file (default PostgreSQL)")
	flags.StringVar(&opts.out, "out", "", "write the vetted records to this JSON file (default --candidates)")
	flags.BoolVar(&opts.all, "all", false, "re-vet every candidate regardless of status")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	return cmd
}
