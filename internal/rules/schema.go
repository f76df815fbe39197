package rules

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "https://saku.schemas.local/rules/document.schema.json"

// documentSchema requires a mapping at the top level and nothing more. The
// shape and type of individual entries are checked when they are evaluated,
// so a bad entry fails that evaluation while the rest of the set stays usable.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object"
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("rules schema load failed: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

// CheckShape validates the structural schema of a decoded rule set.
func CheckShape(rs RuleSet, source string) error {
	schema, err := compiledSchema()
	if err != nil {
		return NewConfigParseError(source, err)
	}

	// Round-trip through JSON so the validator sees plain JSON values
	// regardless of which decoder produced rs.
	data, err := json.Marshal(rs)
	if err != nil {
		return NewConfigParseError(source, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewConfigParseError(source, err)
	}
	if err := schema.Validate(doc); err != nil {
		return NewConfigParseError(source, err)
	}
	return nil
}
