package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"saku/internal/candidate/models"
	coveragemetrics "saku/internal/coverage/metrics"
	eligibilitymetrics "saku/internal/eligibility/metrics"
	"saku/internal/rules"
)

// Store persists candidate records.
type Store interface {
	Create(ctx context.Context, rec *models.Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	ListByStatus(ctx context.Context, statuses ...models.VettingStatus) ([]*models.Record, error)
	ListAll(ctx context.Context) ([]*models.Record, error)
	SaveVetting(ctx context.Context, rec *models.Record) error
}

// RuleLoader returns the current rule set. Implementations read storage on
// every call.
type RuleLoader interface {
	Load(ctx context.Context) (rules.RuleSet, error)
}

// Service registers candidates and vets them against the loaded rules.
type Service struct {
	store           Store
	rules           RuleLoader
	logger          *slog.Logger
	metrics         *eligibilitymetrics.Metrics
	coverageMetrics *coveragemetrics.Metrics
	tracer          trace.Tracer
	clock           func() time.Time
	newID           func() uuid.UUID
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *eligibilitymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithCoverageMetrics(m *coveragemetrics.Metrics) Option {
	return func(s *Service) {
		s.coverageMetrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithClock sets the time source for created_at and vetted_at.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator sets the record ID source.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a Service. Both the store and the rule loader are required.
func New(store Store, loader RuleLoader, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("candidate store is required")
	}
	if loader == nil {
		return nil, errors.New("rule loader is required")
	}
	s := &Service{
		store:  store,
		rules:  loader,
		logger: slog.Default(),
		tracer: otel.Tracer("saku/candidate"),
		clock:  time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
