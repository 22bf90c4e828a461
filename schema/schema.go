// Package schema builds and validates JSON Schemas for tool arguments.
//
// # Quick Start
//
// Tools that take arguments validate their decoded Action Input before
// doing any work, so a malformed model request surfaces as a tool error
// the loop reports back as an observation:
//
//	var searchSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "query":       schema.String("The search query.").MinLength(1),
//	    "num_results": schema.Integer("How many results to return.").Min(1).Max(20).Default(4),
//	}, "query")) // "query" is required
//
//	func (s *Search) search(ctx context.Context, args map[string]any) (string, error) {
//	    if err := searchSchema.Validate(args); err != nil {
//	        return "", err
//	    }
//	    // args is well-formed from here on
//	}
//
// See [Object], [Property], and the individual builder functions.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema pairs the raw map form of a JSON Schema (for serialization and
// prompt material) with its compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given argument map against the schema. A nil
// schema accepts everything.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(args); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation failure with a stable
// message prefix callers can match on.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a validator.
// A nil map compiles to a nil Schema, which accepts everything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", decoded); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use it for schemas
// defined at package init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties. Pass property
// names as variadic arguments to mark them as required.
//
// Example:
//
//	// optional "format" argument
//	schema.Object(map[string]*schema.Property{
//	    "format": schema.String("Go time layout for the result."),
//	})
//
//	// "timezone" is required
//	schema.Object(map[string]*schema.Property{
//	    "timezone": schema.String("IANA timezone name."),
//	}, "timezone")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property is one property in an object schema, assembled with the
// chainable constraint setters below.
type Property struct {
	typ         string
	description string
	enum        []any
	format      string
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	pattern     string
	items       map[string]any
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.format != "" {
		m["format"] = p.format
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.def != nil {
		m["default"] = p.def
	}

	return m
}

// String creates a string property.
//
// Example:
//
//	schema.String("The search query.")
//	schema.String("IANA timezone name.").Pattern(`^[A-Za-z]+(/[A-Za-z_\-]+)*$`)
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
//
// Example:
//
//	schema.Integer("How many results to return.").Min(1).Max(20).Default(4)
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a floating point property.
//
// Example:
//
//	schema.Number("Timeout in seconds.").Min(0.1)
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
//
// Example:
//
//	schema.Boolean("Whether to include result snippets.").Default(true)
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
//
// Example:
//
//	schema.Array("Engines to query.", map[string]any{"type": "string"})
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Enum restricts the property to the given values.
//
// Example:
//
//	schema.String("Result ordering.").Enum("relevance", "date")
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Format sets a named string format ("uri", "date-time", "email", ...).
//
// Example:
//
//	schema.String("Page to fetch.").Format("uri")
func (p *Property) Format(format string) *Property {
	p.format = format
	return p
}

// Min sets the minimum for number and integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number and integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// Pattern sets a regex the string must match.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// Default records the value used when the argument is omitted. Validation
// does not inject it; tools apply their own default when the key is
// absent.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
