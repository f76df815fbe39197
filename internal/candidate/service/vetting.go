package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"saku/internal/candidate/models"
	"saku/internal/eligibility"
	"saku/internal/rules"
	dErrors "saku/pkg/domain-errors"
	"saku/pkg/platform/sentinel"
)

// VetError is a candidate whose rules could not be evaluated.
type VetError struct {
	ID    uuid.UUID `json:"id"`
	Rule  string    `json:"rule,omitempty"`
	Error string    `json:"error"`
}

// RunSummary lists the outcome of every candidate in a vetting run.
type RunSummary struct {
	Passed  []uuid.UUID `json:"passed"`
	Failed  []uuid.UUID `json:"failed"`
	Errored []VetError  `json:"errored"`
}

func (r RunSummary) Total() int {
	return len(r.Passed) + len(r.Failed) + len(r.Errored)
}

// Register validates reg, stores a new unvetted record and vets it
// immediately. Rule problems never block registration: if rules cannot be
// loaded or evaluated the record is returned NOT_STARTED.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "candidate.Register")
	defer span.End()

	rec, err := models.NewRecord(s.newID(), reg, s.clock())
	if err != nil {
		span.SetStatus(codes.Error, "invalid registration")
		return nil, err
	}
	if err := s.store.Create(ctx, rec); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "candidate already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create candidate")
	}
	span.SetAttributes(attribute.String("candidate.id", rec.ID.String()))

	rs, err := s.rules.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "registered without vetting: rules unavailable",
			"candidate_id", rec.ID,
			"error", err,
		)
		return rec, nil
	}
	if err := s.vetRecord(ctx, rs, rec); err != nil {
		if dErrors.HasCode(err, dErrors.CodeRuleEvaluation) {
			s.logger.WarnContext(ctx, "registered without vetting: rule evaluation failed",
				"candidate_id", rec.ID,
				"error", err,
			)
			return rec, nil
		}
		span.RecordError(err)
		return nil, err
	}
	return rec, nil
}

// Vet loads the current rules and vets one candidate.
func (s *Service) Vet(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "candidate.Vet")
	defer span.End()
	span.SetAttributes(attribute.String("candidate.id", id.String()))
	start := time.Now()
	defer func() { s.metrics.ObserveVetLatency(time.Since(start)) }()

	rs, err := s.rules.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rules load failed")
		return nil, err
	}

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load candidate")
	}

	if err := s.vetRecord(ctx, rs, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "vetting failed")
		return nil, err
	}
	return rec, nil
}

// VetPending vets every NOT_STARTED candidate against one rule load.
func (s *Service) VetPending(ctx context.Context) (RunSummary, error) {
	return s.vetRun(ctx, "candidate.VetPending", models.VettingNotStarted)
}

// VetAll re-vets every candidate regardless of status.
func (s *Service) VetAll(ctx context.Context) (RunSummary, error) {
	return s.vetRun(ctx, "candidate.VetAll",
		models.VettingNotStarted, models.VettingInProgress, models.VettingPassed, models.VettingFailed)
}

// vetRun vets the records in statuses. A rule evaluation error fails that
// candidate only; any other error ends the run.
func (s *Service) vetRun(ctx context.Context, name string, statuses ...models.VettingStatus) (RunSummary, error) {
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveVetLatency(time.Since(start)) }()

	summary := RunSummary{Passed: []uuid.UUID{}, Failed: []uuid.UUID{}, Errored: []VetError{}}

	rs, err := s.rules.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rules load failed")
		return summary, err
	}
	records, err := s.store.ListByStatus(ctx, statuses...)
	if err != nil {
		return summary, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list candidates")
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		err := s.vetRecord(ctx, rs, rec)
		switch {
		case err == nil && rec.IsQualified:
			summary.Passed = append(summary.Passed, rec.ID)
		case err == nil:
			summary.Failed = append(summary.Failed, rec.ID)
		case dErrors.HasCode(err, dErrors.CodeRuleEvaluation):
			summary.Errored = append(summary.Errored, VetError{ID: rec.ID, Rule: ruleOf(err), Error: err.Error()})
		default:
			span.RecordError(err)
			return summary, err
		}
	}

	span.SetAttributes(
		attribute.Int("vetting.passed", len(summary.Passed)),
		attribute.Int("vetting.failed", len(summary.Failed)),
		attribute.Int("vetting.errored", len(summary.Errored)),
	)
	s.logger.InfoContext(ctx, "vetting run complete",
		"passed", len(summary.Passed),
		"failed", len(summary.Failed),
		"errored", len(summary.Errored),
	)
	return summary, nil
}

// vetRecord validates rec against rs and persists the verdict. On a rule
// evaluation error rec is left untouched.
func (s *Service) vetRecord(ctx context.Context, rs rules.RuleSet, rec *models.Record) error {
	verdict, err := eligibility.Validate(rec.EligibilityInput(), rs)
	if err != nil {
		rule := ruleOf(err)
		s.metrics.IncrementEvaluationError(rule)
		s.logger.ErrorContext(ctx, "rule evaluation failed",
			"candidate_id", rec.ID,
			"rule", rule,
			"error", err,
		)
		return err
	}

	vetted := *rec
	vetted.ApplyVerdict(verdict, s.clock())
	if err := s.store.SaveVetting(ctx, &vetted); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save vetting")
	}
	*rec = vetted

	for _, c := range verdict.Checks {
		s.metrics.IncrementCheck(c.Rule, string(c.Outcome))
	}
	s.metrics.IncrementVerdict(verdict.OverallPassed)
	s.logger.DebugContext(ctx, "candidate vetted",
		"candidate_id", rec.ID,
		"status", rec.VettingStatus,
	)
	return nil
}

func ruleOf(err error) string {
	var evalErr *rules.EvaluationError
	if errors.As(err, &evalErr) {
		return evalErr.Rule
	}
	return ""
}
