// Package ingest turns the uploaded department listing and constitution into
// the data, rule and report files the rest of the system reads.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"saku/internal/rules"
	"saku/pkg/platform/sentinel"
)

// Layout resolves the fixed project directories under a root.
type Layout struct {
	Root string
}

func (l Layout) Uploads() string { return filepath.Join(l.Root, "uploads") }
func (l Layout) Data() string { return filepath.Join(l.Root, "data") }
func (l Layout) Reports() string { return filepath.Join(l.Root, "reports") }

func (l Layout) Rules() string { return rules.ProjectRulesPath(l.Root) }

func (l Layout) DepartmentsCSV() string { return filepath.Join(l.Data(), "departments.csv") }
func (l Layout) DepartmentsRaw() string { return filepath.Join(l.Data(), "departments_raw.txt") }

func (l Layout) ConstitutionExtract() string {
	return filepath.Join(l.Reports(), "constitution_extract.md")
}

func (l Layout) ConstitutionRaw() string {
	return filepath.Join(l.Reports(), "constitution_raw.txt")
}

// Inputs are the two source documents of an ingestion run.
type Inputs struct {
	Departments  string
	Constitution string
}

var (
	departmentExts   = []string{".pdf", ".txt", ".md", ".csv"}
	constitutionExts = []string{".pdf", ".txt", ".md"}
)

// Discover picks the source documents from dir by name: the last file (in
// name order) containing "department", and the last containing
// "constitution", each with a supported extension.
func Discover(dir string) (Inputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Inputs{}, fmt.Errorf("read uploads: %w", err)
	}

	var in Inputs
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		ext := filepath.Ext(name)
		path := filepath.Join(dir, e.Name())
		if strings.Contains(name, "department") && hasExt(ext, departmentExts) {
			in.Departments = path
		}
		if strings.Contains(name, "constitution") && hasExt(ext, constitutionExts) {
			in.Constitution = path
		}
	}

	if in.Departments == "" {
		return Inputs{}, fmt.Errorf("departments document in %s: %w", dir, sentinel.ErrNotFound)
	}
	if in.Constitution == "" {
		return Inputs{}, fmt.Errorf("constitution document in %s: %w", dir, sentinel.ErrNotFound)
	}
	return in, nil
}

func hasExt(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
