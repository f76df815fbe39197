package department

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

var csvHeader = []string{"department_code", "department_name", "course_name"}

// WriteCSV writes one row per course, or a single empty-course row for a
// department with no courses.
func WriteCSV(w io.Writer, departments []Department) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write departments header: %w", err)
	}
	for _, d := range departments {
		code := d.Code
		if code == "" {
			code = Slug(d.Name)
		}
		if len(d.Courses) == 0 {
			if err := cw.Write([]string{code, d.Name, ""}); err != nil {
				return fmt.Errorf("write department %s: %w", code, err)
			}
			continue
		}
		for _, c := range d.Courses {
			if err := cw.Write([]string{code, d.Name, c}); err != nil {
				return fmt.Errorf("write department %s: %w", code, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a listing written by WriteCSV. Consecutive rows sharing a
// code form one department; a code seen again later starts a new section,
// matching the extractor's handling of repeated headings.
func ReadCSV(r io.Reader) ([]Department, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Department{}, nil
		}
		return nil, fmt.Errorf("read departments header: %w", err)
	}
	if len(header) < len(csvHeader) || !slices.Equal(normalizeHeader(header[:len(csvHeader)]), csvHeader) {
		return nil, fmt.Errorf("unexpected departments header %v", header)
	}

	out := []Department{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read departments: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("departments row %v: expected at least 2 columns", row)
		}
		code, name := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		course := ""
		if len(row) > 2 {
			course = strings.TrimSpace(row[2])
		}
		if code == "" {
			code = Slug(name)
		}

		if n := len(out); n == 0 || out[n-1].Code != code {
			out = append(out, Department{Code: code, Name: name})
		}
		if course != "" {
			last := &out[len(out)-1]
			last.Courses = append(last.Courses, course)
		}
	}
	return out, nil
}

func normalizeHeader(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
	}
	return out
}
