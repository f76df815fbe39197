package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"saku/internal/department"
)

func newCoverageCmd(a *app) *cobra.Command {
	var (
		candidates  string
		departments string
		metricsOut  string
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report qualified candidates and gender balance per department",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			path := departments
			if path == "" {
				path = a.layout().DepartmentsCSV()
			}
			depts, err := readDepartments(path)
			if err != nil {
				return err
			}

			store, _, err := a.candidates(ctx, candidates)
			if err != nil {
				return err
			}
			svc, err := a.newService(ctx, store)
			if err != nil {
				return err
			}
			report, err := svc.Coverage(ctx, depts)
			if err != nil {
				return err
			}
			if err := a.writeMetrics(metricsOut); err != nil {
				return err
			}
			return writeJSON(a.stdout, report)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&candidates, "candidates", "", "candidate records JSON file (default PostgreSQL)")
	flags.StringVar(&departments, "departments", "", "department CSV (default <root>/data/departments.csv)")
	flags.StringVar(&metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	return cmd
}

func readDepartments(path string) ([]department.Department, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open departments: %w", err)
	}
	defer f.Close()
	return department.ReadCSV(f)
}
