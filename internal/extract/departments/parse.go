// Package departments extracts the department and course listing from the
// text of a prospectus-style document.
package departments

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"saku/internal/department"
)

const maxHeadingWords = 8

var (
	headerPattern  = regexp.MustCompile(`(?i)^(school|faculty|department)([:\s-]+)(.+)$`)
	allCapsPattern = regexp.MustCompile(`^[A-Z &/\-]{4,}$`)
	bulletPattern  = regexp.MustCompile(`^(?:[-•*]|\d+[.)])\s+(.*)$`)

	coursePrefixes = []string{"bachelor", "diploma", "certificate"}
)

// Parse reads departments in document order. Lines before the first
// department heading are ignored. A heading repeated later starts a new,
// separate department.
func Parse(text string) []department.Department {
	title := cases.Title(language.Und)
	out := []department.Department{}
	current := -1

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if name, ok := headerName(line); ok {
			out = append(out, department.New(normalizeName(title, name)))
			current = len(out) - 1
			continue
		}
		if allCapsPattern.MatchString(line) && len(strings.Fields(line)) <= maxHeadingWords {
			out = append(out, department.New(title.String(line)))
			current = len(out) - 1
			continue
		}
		if current < 0 {
			continue
		}
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			out[current].Courses = append(out[current].Courses, strings.TrimSpace(m[1]))
			continue
		}
		if hasCoursePrefix(line) {
			out[current].Courses = append(out[current].Courses, line)
		}
	}
	return out
}

// headerName returns the department name of a school/faculty/department
// heading. "School: Computing" names "Computing"; "School of Computing"
// keeps the whole line.
func headerName(line string) (string, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	sep, rest := m[2], strings.TrimSpace(m[3])
	if strings.ContainsAny(sep, ":-") {
		return rest, rest != ""
	}
	if strings.HasPrefix(strings.ToLower(rest), "of ") {
		return line, true
	}
	return rest, rest != ""
}

func normalizeName(title cases.Caser, name string) string {
	if allCapsPattern.MatchString(name) {
		return title.String(name)
	}
	return name
}

func hasCoursePrefix(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range coursePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
