// Package constitution extracts rule thresholds from the text of a governing
// document and renders a readable extract of its clauses.
package constitution

import (
	"regexp"
	"strings"
)

// PreambleHeading names the text before the first heading.
const PreambleHeading = "Preamble"

var headingPattern = regexp.MustCompile(`(?im)^(Article\s+[IVXLC]+\b[^\n]*|Section\s+\d+[^\n]*)$`)

// Clause is a heading and the text it owns.
type Clause struct {
	Heading string
	Body    string
}

// SplitClauses segments text by Article and Section headings. Each heading
// owns the trimmed text up to the next heading; text before the first
// heading becomes a Preamble clause when it is not blank.
func SplitClauses(text string) []Clause {
	clauses := []Clause{}
	locs := headingPattern.FindAllStringSubmatchIndex(text, -1)

	preambleEnd := len(text)
	if len(locs) > 0 {
		preambleEnd = locs[0][0]
	}
	if pre := strings.TrimSpace(text[:preambleEnd]); pre != "" {
		clauses = append(clauses, Clause{Heading: PreambleHeading, Body: pre})
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		clauses = append(clauses, Clause{
			Heading: strings.TrimSpace(text[loc[2]:loc[3]]),
			Body:    strings.TrimSpace(text[loc[1]:end]),
		})
	}
	return clauses
}
