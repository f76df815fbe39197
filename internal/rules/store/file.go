package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"saku/internal/rules"
	dErrors "saku/pkg/domain-errors"
)

// File reads and writes the rule document as YAML on the local filesystem.
type File struct {
	path string
}

// NewFile returns a file-backed rule store at path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string {
	return f.path
}

// Read decodes the document; a missing file is an empty rule set.
func (f *File) Read(_ context.Context) (rules.RuleSet, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules.RuleSet{}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read rule document")
	}
	return rules.Decode(data, f.path)
}

// Save writes the document atomically: readers see either the old or the
// new file, never a partial one.
func (f *File) Save(_ context.Context, doc rules.Document) error {
	data, err := rules.Encode(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create rules directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rules-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp rule document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write rule document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close rule document: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace rule document: %w", err)
	}
	return nil
}
