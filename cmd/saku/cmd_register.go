package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"saku/internal/candidate/models"
	"saku/internal/candidate/service"
	candidatestore "saku/internal/candidate/store"
	"saku/pkg/platform/tx"
)

func newRegisterCmd(a *app) *cobra.Command {
	var candidates string

	cmd := &cobra.Command{
		Use:   "register FILE",
		Short: "Register candidates from a JSON array and vet them",
		Long: `Reads a JSON array of registrations, stores each candidate and vets
it immediately. With --candidates the records are appended to that JSON
file, which is created if missing; otherwise they go to PostgreSQL.
The batch is all or nothing: if any registration fails, no record from
this run is kept.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open registrations: %w", err)
			}
			regs, err := models.DecodeRegistrations(f)
			f.Close()
			if err != nil {
				return err
			}

			var (
				store service.Store
				mem   *candidatestore.InMemory
			)
			if _, statErr := os.Stat(candidates); candidates != "" && errors.Is(statErr, fs.ErrNotExist) {
				mem = candidatestore.NewInMemory()
				store = mem
			} else {
				store, mem, err = a.candidates(ctx, candidates)
				if err != nil {
					return err
				}
			}

			svc, err := a.newService(ctx, store)
			if err != nil {
				return err
			}
			var db *sql.DB
			if mem == nil {
				db = a.db
			}
			registered, err := registerBatch(ctx, svc, db, regs)
			if err != nil {
				return err
			}

			if mem != nil {
				if err := mem.WriteJSONFile(ctx, candidates); err != nil {
					return err
				}
			}
			return writeJSON(a.stdout, registered)
		},
	}
	cmd.Flags().StringVar(&candidates, "candidates", "", "candidate records JSON file")
	return cmd
}

// registerBatch registers regs in order and stops at the first failure.
// With a database the whole batch runs in one transaction.
func registerBatch(ctx context.Context, svc *service.Service, db *sql.DB, regs []models.Registration) ([]*models.Record, error) {
	registered := make([]*models.Record, 0, len(regs))
	register := func(ctx context.Context) error {
		for _, reg := range regs {
			rec, err := svc.Register(ctx, reg)
			if err != nil {
				return fmt.Errorf("register %s: %w", reg.StudentID, err)
			}
			registered = append(registered, rec)
		}
		return nil
	}

	if db == nil {
		if err := register(ctx); err != nil {
			return nil, err
		}
		return registered, nil
	}
	if err := tx.Run(ctx, db, register); err != nil {
		return nil, err
	}
	return registered, nil
}
