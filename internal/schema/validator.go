// Package schema validates JSON documents against JSON Schema definitions.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ContactsDocument describes the JSON import/export format.
const ContactsDocument = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["contacts"],
	"properties": {
		"contacts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "phone"],
				"additionalProperties": false,
				"properties": {
					"name":  {"type": "string", "minLength": 1, "pattern": "^[^:\\r\\n]*$"},
					"phone": {"type": "string", "minLength": 1, "pattern": "^[^\\r\\n]*$"}
				}
			}
		}
	}
}`

// maxReported caps the number of violations included in an error.
const maxReported = 3

// Validator caches compiled schemas keyed by their JSON text.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks doc against schemaData, which may be a JSON string,
// raw bytes, or any value that marshals to a schema.
func (v *Validator) Validate(schemaData any, doc []byte) error {
	schema, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed:\n- %s", dumpErrors(errs))
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	var raw []byte
	switch s := schemaData.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	key := string(raw)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, schema)
	return schema, nil
}

func dumpErrors(errs []string) string {
	var truncated string
	if len(errs) > maxReported {
		truncated = fmt.Sprintf("\n... and %d more", len(errs)-maxReported)
		errs = errs[:maxReported]
	}
	return strings.Join(errs, "\n- ") + truncated
}
