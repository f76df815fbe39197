package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"saku/internal/candidate/models"
	"saku/internal/eligibility"
	"saku/pkg/platform/sentinel"
)

// InMemory keeps records in registration order. Callers receive copies;
// mutations only take effect through SaveVetting.
type InMemory struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*models.Record
	order   []uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[uuid.UUID]*models.Record)}
}

func (s *InMemory) Create(_ context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("candidate %s: %w", rec.ID, sentinel.ErrConflict)
	}
	for _, existing := range s.records {
		if existing.StudentID == rec.StudentID {
			return fmt.Errorf("student id %s: %w", rec.StudentID, sentinel.ErrConflict)
		}
	}
	s.records[rec.ID] = clone(rec)
	s.order = append(s.order, rec.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(rec), nil
}

// ListByStatus returns records in any of statuses, in registration order.
func (s *InMemory) ListByStatus(_ context.Context, statuses ...models.VettingStatus) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if slices.Contains(statuses, rec.VettingStatus) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.records[id]))
	}
	return out, nil
}

// SaveVetting persists the vetting fields of rec and nothing else.
func (s *InMemory) SaveVetting(_ context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.records[rec.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	updated := clone(stored)
	updated.Eligibility = cloneVerdict(rec.Eligibility)
	updated.IsQualified = rec.IsQualified
	updated.VettingStatus = rec.VettingStatus
	if rec.VettedAt != nil {
		t := *rec.VettedAt
		updated.VettedAt = &t
	}
	s.records[rec.ID] = updated
	return nil
}

func clone(rec *models.Record) *models.Record {
	c := *rec
	c.Eligibility = cloneVerdict(rec.Eligibility)
	if rec.VettedAt != nil {
		t := *rec.VettedAt
		c.VettedAt = &t
	}
	return &c
}

func cloneVerdict(v *eligibility.Verdict) *eligibility.Verdict {
	if v == nil {
		return nil
	}
	c := eligibility.Verdict{
		Checks:        slices.Clone(v.Checks),
		OverallPassed: v.OverallPassed,
	}
	if c.Checks == nil {
		c.Checks = []eligibility.Check{}
	}
	return &c
}
