package rules

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON) rule document. An empty document yields an
// empty RuleSet; anything that is not a mapping, or breaks the structural
// schema, is a ConfigParseError.
func Decode(data []byte, source string) (RuleSet, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, NewConfigParseError(source, err)
	}
	if raw == nil {
		return RuleSet{}, nil
	}

	top, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, NewConfigParseError(source, fmt.Errorf("top level must be a mapping, got %T", raw))
	}
	rs := RuleSet(top)
	if err := CheckShape(rs, source); err != nil {
		return nil, err
	}
	return rs, nil
}

// Encode renders the document as YAML, keys in declaration order.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode rule document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode rule document: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize converts YAML's map[any]any nodes into map[string]any so the
// rest of the package only deals with one mapping type.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
