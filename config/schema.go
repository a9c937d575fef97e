package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	schemaOnce sync.Once
	schemaRes  *jsonschema.Resolved
	schemaErr  error
)

func configSchema() *jsonschema.Schema {
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }
	boolean := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} }
	falseSchema := func() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"multipass":    boolean(),
			"parallel":     {Type: "integer", Minimum: ptr(0.0), Maximum: ptr(64.0)},
			"pretty":       boolean(),
			"indent":       {Type: "integer", Minimum: ptr(0.0), Maximum: ptr(8.0)},
			"eol":          {Type: "string", Enum: []any{"lf", "crlf", "cr"}},
			"finalNewline": boolean(),
			"datauri":      {Type: "string", Enum: []any{"base64", "enc", "unenc"}},
			"plugins": {
				Type: "array",
				Items: &jsonschema.Schema{
					AnyOf: []*jsonschema.Schema{
						str(),
						{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"name":   str(),
								"params": {Type: "object"},
							},
							Required:             []string{"name"},
							AdditionalProperties: falseSchema(),
						},
					},
				},
			},
		},
		AdditionalProperties: falseSchema(),
	}
}

func ptr(v float64) *float64 { return &v }

// Validate checks raw JSON configuration against the schema.
func Validate(data []byte) error {
	schemaOnce.Do(func() {
		schemaRes, schemaErr = configSchema().Resolve(nil)
	})
	if schemaErr != nil {
		return fmt.Errorf("config schema: %w", schemaErr)
	}
	var inst any
	if err := json.Unmarshal(data, &inst); err != nil {
		return fmt.Errorf("config: %w: %w", ErrMalformed, err)
	}
	if err := schemaRes.Validate(inst); err != nil {
		return fmt.Errorf("config: %w: %w", ErrSchema, err)
	}
	return nil
}
