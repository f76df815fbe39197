package service

import (
	"context"

	"saku/internal/coverage"
	"saku/internal/department"
	dErrors "saku/pkg/domain-errors"
)

// Coverage reports department coverage over all records, with targets
// taken from the current rules.
func (s *Service) Coverage(ctx context.Context, departments []department.Department) (coverage.Report, error) {
	ctx, span := s.tracer.Start(ctx, "candidate.Coverage")
	defer span.End()

	rs, err := s.rules.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return coverage.Report{}, err
	}
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return coverage.Report{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list candidates")
	}

	targets := coverage.TargetsFromRules(rs)
	report := coverage.Aggregate(coverage.GroupByDepartment(departments, records), targets)
	s.coverageMetrics.Record(report)

	s.logger.InfoContext(ctx, "coverage computed",
		"departments", len(report.Departments),
		"score", report.Score.Score,
		"target_min_source", targets.MinSource,
	)
	return report, nil
}
