package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"saku/internal/candidate/models"
)

// LoadJSONFile seeds an InMemory store from a JSON array of records, such
// as one written by WriteJSONFile. Plain registrations are accepted and
// start unvetted.
func LoadJSONFile(ctx context.Context, path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidate records: %w", err)
	}
	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode candidate records %s: %w", path, err)
	}

	s := NewInMemory()
	for _, r := range records {
		seedDefaults(r)
		if err := r.Registration().Validate(); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", r.StudentID, err)
		}
		if err := s.Create(ctx, r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WriteJSONFile writes every record, in registration order, as indented JSON.
func (s *InMemory) WriteJSONFile(ctx context.Context, path string) error {
	records, err := s.ListAll(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode candidate records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write candidate records: %w", err)
	}
	return nil
}

// seedDefaults fills fields a hand-written seed file may omit.
func seedDefaults(rec *models.Record) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.VettingStatus == "" {
		rec.VettingStatus = models.VettingNotStarted
	}
	if rec.UserType == "" {
		rec.UserType = models.UserTypeDelegate
	}
}
