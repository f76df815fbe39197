package rules

import (
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Decimal is a float that always serializes with a fractional part, so a
// GPA threshold of 3 round-trips as 3.0 rather than decoding back as an int.
type Decimal float64

func (d Decimal) String() string {
	return FormatDecimal(float64(d))
}

func (d Decimal) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: d.String()}, nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(d.String()))
}

// FormatDecimal renders f with at least one fractional digit.
func FormatDecimal(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
