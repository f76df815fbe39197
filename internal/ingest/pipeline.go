package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"saku/internal/department"
	"saku/internal/extract/constitution"
	"saku/internal/extract/departments"
	"saku/internal/extract/source"
	"saku/internal/rules"
)

// ConstitutionSummary describes one constitution ingestion.
type ConstitutionSummary struct {
	Source      string                 `json:"source"`
	Clauses     int                    `json:"clauses"`
	Findings    []constitution.Finding `json:"findings"`
	ExtractPath string                 `json:"extract_path"`
	RawPath     string                 `json:"raw_path"`
}

// DepartmentsSummary describes one department listing ingestion.
type DepartmentsSummary struct {
	Source      string `json:"source"`
	Departments int    `json:"departments"`
	Courses     int    `json:"courses"`
	CSVPath     string `json:"csv_path"`
	RawPath     string `json:"raw_path"`
}

type Summary struct {
	Constitution ConstitutionSummary `json:"constitution"`
	Departments  DepartmentsSummary  `json:"departments"`
}

// Pipeline runs the extractors and writes their outputs.
type Pipeline struct {
	layout    Layout
	writer    rules.Writer
	extractor *constitution.Extractor
	logger    *slog.Logger
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithExtractor replaces the default constitution extractor.
func WithExtractor(e *constitution.Extractor) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.extractor = e
		}
	}
}

// NewPipeline builds a pipeline writing under layout and saving rules
// through writer.
func NewPipeline(layout Layout, writer rules.Writer, opts ...Option) (*Pipeline, error) {
	if writer == nil {
		return nil, fmt.Errorf("rules writer is required")
	}
	p := &Pipeline{
		layout:    layout,
		writer:    writer,
		extractor: constitution.NewExtractor(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run ingests both documents concurrently. Each side writes its own files;
// the first failure cancels the other.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (Summary, error) {
	g, ctx := errgroup.WithContext(ctx)

	var summary Summary
	g.Go(func() error {
		s, err := p.Constitution(ctx, in.Constitution)
		if err != nil {
			return err
		}
		summary.Constitution = s
		return nil
	})
	g.Go(func() error {
		s, err := p.Departments(ctx, in.Departments)
		if err != nil {
			return err
		}
		summary.Departments = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// Constitution extracts rules from the document at path, saves them and
// writes the raw text and markdown extract.
func (p *Pipeline) Constitution(ctx context.Context, path string) (ConstitutionSummary, error) {
	text, err := source.ReadText(path)
	if err != nil {
		return ConstitutionSummary{}, fmt.Errorf("read constitution %s: %w", path, err)
	}
	if err := writeFile(p.layout.ConstitutionRaw(), []byte(text)); err != nil {
		return ConstitutionSummary{}, err
	}

	res := p.extractor.Extract(text)
	if err := ctx.Err(); err != nil {
		return ConstitutionSummary{}, err
	}
	if err := p.writer.Save(ctx, res.Document); err != nil {
		return ConstitutionSummary{}, fmt.Errorf("save extracted rules: %w", err)
	}

	var extract bytes.Buffer
	if err := constitution.WriteExtract(&extract, res.Clauses); err != nil {
		return ConstitutionSummary{}, fmt.Errorf("render constitution extract: %w", err)
	}
	if err := writeFile(p.layout.ConstitutionExtract(), extract.Bytes()); err != nil {
		return ConstitutionSummary{}, err
	}

	p.logger.InfoContext(ctx, "constitution ingested",
		"source", path,
		"clauses", len(res.Clauses),
		"findings", len(res.Findings),
	)
	return ConstitutionSummary{
		Source:      path,
		Clauses:     len(res.Clauses),
		Findings:    res.Findings,
		ExtractPath: p.layout.ConstitutionExtract(),
		RawPath:     p.layout.ConstitutionRaw(),
	}, nil
}

// Departments parses the listing at path and writes it as CSV. A .csv
// source is read as an existing listing rather than parsed as text.
func (p *Pipeline) Departments(ctx context.Context, path string) (DepartmentsSummary, error) {
	var (
		raw   string
		depts []department.Department
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		data, err := os.ReadFile(path)
		if err != nil {
			return DepartmentsSummary{}, fmt.Errorf("read departments %s: %w", path, err)
		}
		raw = string(data)
		depts, err = department.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return DepartmentsSummary{}, fmt.Errorf("parse departments %s: %w", path, err)
		}
	} else {
		text, err := source.ReadText(path)
		if err != nil {
			return DepartmentsSummary{}, fmt.Errorf("read departments %s: %w", path, err)
		}
		raw = text
		depts = departments.Parse(text)
	}
	if err := ctx.Err(); err != nil {
		return DepartmentsSummary{}, err
	}

	if err := writeFile(p.layout.DepartmentsRaw(), []byte(raw)); err != nil {
		return DepartmentsSummary{}, err
	}
	var csv bytes.Buffer
	if err := department.WriteCSV(&csv, depts); err != nil {
		return DepartmentsSummary{}, err
	}
	if err := writeFile(p.layout.DepartmentsCSV(), csv.Bytes()); err != nil {
		return DepartmentsSummary{}, err
	}

	courses := 0
	for _, d := range depts {
		courses += len(d.Courses)
	}
	p.logger.InfoContext(ctx, "departments ingested",
		"source", path,
		"departments", len(depts),
		"courses", courses,
	)
	return DepartmentsSummary{
		Source:      path,
		Departments: len(depts),
		Courses:     courses,
		CSVPath:     p.layout.DepartmentsCSV(),
		RawPath:     p.layout.DepartmentsRaw(),
	}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
