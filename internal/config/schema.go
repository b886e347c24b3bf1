package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	invopop "github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/shopspring/decimal"
)

const schemaURL = "secnode-config.json"

// Violation is one primitive-shape error reported by the document schema.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaError aggregates every shape violation found in a document. The
// engine is never invoked when a SchemaError is returned.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 0 {
		return "document does not match the configuration schema"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Path, v.Message))
	}
	return fmt.Sprintf("document does not match the configuration schema: %s", strings.Join(parts, "; "))
}

// GenerateSchema produces the JSON Schema (draft 2020-12) for configuration
// documents from the model structs. Every object is closed, so unknown
// fields are rejected with their exact path.
func GenerateSchema() ([]byte, error) {
	r := new(invopop.Reflector)
	r.Mapper = func(t reflect.Type) *invopop.Schema {
		if t == reflect.TypeOf(decimal.Decimal{}) {
			return &invopop.Schema{Type: "number"}
		}
		return nil
	}

	s := r.Reflect(&SecNode{})
	s.ID = ""
	s.Title = "SECoP node configuration"
	s.Description = "SECoP describe structure plus x-plc controller mapping hints"

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

func compileSchema() (*sjsonschema.Schema, error) {
	raw, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// validateShape checks the raw document against the generated schema and
// collects every leaf violation, not only the first.
func validateShape(doc interface{}) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validate document: %w", err)
	}

	var violations []Violation
	for _, cause := range flattenCauses(ve) {
		violations = append(violations, Violation{
			Path:    instancePath(cause.InstanceLocation),
			Message: fmt.Sprintf("%v", cause.ErrorKind),
		})
	}
	return &SchemaError{Violations: violations}
}

func flattenCauses(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenCauses(cause)...)
	}
	return flat
}

func instancePath(segments []string) string {
	if len(segments) == 0 {
		return "$"
	}
	return "$." + strings.Join(segments, ".")
}
