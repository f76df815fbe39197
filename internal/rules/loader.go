package rules

import (
	"context"
	"log/slog"
	"path/filepath"
)

// Source reads the persisted rule definition.
type Source interface {
	// Read returns the current rule set. A missing document is an empty
	// RuleSet, not an error.
	Read(ctx context.Context) (RuleSet, error)
	// Name identifies the source in logs.
	Name() string
}

// Writer persists a rule definition produced by the extractor.
type Writer interface {
	Save(ctx context.Context, doc Document) error
}

// ProjectRulesPath is the fixed rule document location under a project root.
func ProjectRulesPath(root string) string {
	return filepath.Join(root, "rules", "rules.yaml")
}

// Loader reads a fresh RuleSet from its source on every call. Rule edits
// take effect on the next Load; there is no cache to invalidate.
type Loader struct {
	source Source
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{source: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the current rule set.
func (l *Loader) Load(ctx context.Context) (RuleSet, error) {
	rs, err := l.source.Read(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "rule document load failed",
			"source", l.source.Name(),
			"error", err,
		)
		return nil, err
	}
	if rs == nil {
		rs = RuleSet{}
	}
	if len(rs) == 0 {
		l.logger.DebugContext(ctx, "no rules configured", "source", l.source.Name())
	}
	return rs, nil
}
