package main

import (
	"github.com/spf13/cobra"

	"saku/internal/ingest"
)

func newIngestCmd(a *app) *cobra.Command {
	var uploads string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract rules and departments from the uploaded documents",
		Long: `Picks the department listing and the constitution from the uploads
directory, then writes the department CSV, the rule document and the
constitution extract.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dir := uploads
			if dir == "" {
				dir = a.layout().Uploads()
			}
			in, err := ingest.Discover(dir)
			if err != nil {
				return err
			}
			p, err := a.pipeline(cmd)
			if err != nil {
				return err
			}
			summary, err := p.Run(ctx, in)
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, summary)
		},
	}
	cmd.Flags().StringVar(&uploads, "uploads", "", "directory holding the uploaded documents (default <root>/uploads)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "constitution FILE",
			Short: "Extract rules from a constitution document",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.pipeline(cmd)
				if err != nil {
					return err
				}
				summary, err := p.Constitution(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(a.stdout, summary)
			},
		},
		&cobra.Command{
			Use:   "departments FILE",
			Short: "Extract departments and courses from a listing",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.pipeline(cmd)
				if err != nil {
					return err
				}
				summary, err := p.Departments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(a.stdout, summary)
			},
		},
	)
	return cmd
}

func (a *app) pipeline(cmd *cobra.Command) (*ingest.Pipeline, error) {
	writer, err := a.ruleBackend(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(a.layout(), writer, ingest.WithLogger(a.logger))
}
