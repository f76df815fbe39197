package constitution

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"saku/internal/rules"
)

// Result is the outcome of extracting one document.
type Result struct {
	Clauses []Clause
	// Findings are in application order; later findings for a key
	// replaced earlier ones in Document.
	Findings []Finding
	Document rules.Document
}

// Extractor applies matchers to every clause of a document.
type Extractor struct {
	matchers []Matcher
}

// NewExtractor returns an extractor using matchers, or DefaultMatchers
// when none are given.
func NewExtractor(matchers ...Matcher) *Extractor {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &Extractor{matchers: matchers}
}

// Extract splits text into clauses and builds a rule document from the
// defaults plus every finding. Finding nothing is not an error.
func (e *Extractor) Extract(text string) Result {
	res := Result{
		Clauses:  SplitClauses(text),
		Findings: []Finding{},
		Document: rules.DefaultDocument(),
	}
	for _, c := range res.Clauses {
		lowered := strings.ToLower(c.Heading + "\n" + c.Body)
		for _, m := range e.matchers {
			value, ok := m.Match(lowered)
			if !ok {
				continue
			}
			f := Finding{Key: m.Key, Value: value, Citation: c.Heading}
			if apply(&res.Document, f) {
				res.Findings = append(res.Findings, f)
			}
		}
	}
	return res
}

// Extract runs the default extractor over text.
func Extract(text string) Result {
	return NewExtractor().Extract(text)
}

// apply writes f into doc and reports whether the key is known.
func apply(doc *rules.Document, f Finding) bool {
	switch f.Key {
	case rules.KeyMinPerDepartment:
		if v, ok := f.Value.(int); ok {
			doc.MinPerDepartment.Value = v
			doc.MinPerDepartment.Citation = f.Citation
			return true
		}
	case rules.KeyGenderBalance:
		if v, ok := f.Value.(float64); ok {
			doc.GenderBalance.Target.FemaleMin = v
			doc.GenderBalance.Citation = f.Citation
			return true
		}
	case rules.RuleYearMin:
		if v, ok := f.Value.(int); ok {
			doc.Eligibility.YearMin = &rules.IntRule{Value: v, Citation: f.Citation}
			return true
		}
	case rules.RuleGPAMin:
		if v, ok := f.Value.(float64); ok {
			doc.Eligibility.GPAMin = &rules.DecimalRule{Value: rules.Decimal(v), Citation: f.Citation}
			return true
		}
	case rules.RuleDisciplinaryClear:
		if v, ok := f.Value.(bool); ok {
			doc.Eligibility.DisciplinaryClear = &rules.BoolRule{Value: v, Citation: f.Citation}
			return true
		}
	}
	return false
}

// WriteExtract renders the clauses with a non-blank body as markdown.
func WriteExtract(w io.Writer, clauses []Clause) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# Constitution Extract (auto-generated)\n\n")
	for _, c := range clauses {
		body := strings.TrimSpace(c.Body)
		if body == "" {
			continue
		}
		fmt.Fprintf(bw, "## %s\n\n%s\n\n", c.Heading, body)
	}
	return bw.Flush()
}
