package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Entry returns the named top-level rule as a mapping. ok is false when the
// rule is absent or null; a present non-mapping value is an error.
func (rs RuleSet) Entry(name string) (map[string]any, bool, error) {
	raw, present := rs[name]
	if !present || raw == nil {
		return nil, false, nil
	}
	m, ok := AsMapping(raw)
	if !ok {
		return nil, false, fmt.Errorf("expected a mapping, got %T", raw)
	}
	return m, true, nil
}

// AsMapping accepts both JSON-style and YAML-style decoded mappings.
func AsMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RuleSet:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// Citation returns the entry's citation, or "" when unset.
func Citation(entry map[string]any) string {
	switch c := entry["citation"].(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

// AsInt coerces an integral rule value. Integral floats and numeric strings
// are accepted since documents are hand-edited.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return unsigned(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return unsigned(n)
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n.String())
		}
		return integral(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return integral(f)
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", v)
	}
}

func integral(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	// float64(math.MaxInt) rounds up to 2^63, which is already out of range.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("value %v is out of range", f)
	}
	return int(f), nil
}

func unsigned(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, fmt.Errorf("value %d is out of range", u)
	}
	return int(u), nil
}

// AsFloat coerces a numeric rule value.
func AsFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return f, nil
	default:
		i, err := AsInt(v)
		if err != nil {
			return 0, fmt.Errorf("value of type %T is not numeric", v)
		}
		return float64(i), nil
	}
}

// AsBool coerces a boolean rule value.
func AsBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("value %q is not a boolean", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("value of type %T is not a boolean", v)
	}
}
