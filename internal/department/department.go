// Package department holds the department listing shared by the extractor
// and coverage reporting.
package department

import (
	"regexp"
	"strings"
)

const maxCodeLength = 20

// Department is one section of the department listing.
type Department struct {
	Code    string
	Name    string
	Courses []string
}

// New builds a department with its code derived from name.
func New(name string, courses ...string) Department {
	return Department{Code: Slug(name), Name: name, Courses: courses}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a department code: lower-cased, runs of other characters
// collapsed to "-", trimmed, at most 20 characters.
func Slug(name string) string {
	code := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	code = strings.Trim(code, "-")
	if len(code) > maxCodeLength {
		code = code[:maxCodeLength]
	}
	return code
}

// Matches reports whether ref names this department by code or name.
func (d Department) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	return strings.EqualFold(ref, d.Code) || strings.EqualFold(ref, d.Name) || Slug(ref) == d.Code
}
