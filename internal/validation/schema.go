package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const rootField = "(root)"

// Schema is a compiled JSON Schema used to check payload shape.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

// Compile parses a JSON Schema document.
func Compile(name, source string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompile is Compile for package-level schemas embedded in the binary.
func MustCompile(name, source string) *Schema {
	schema, err := Compile(name, source)
	if err != nil {
		panic(err)
	}
	return schema
}

// Check validates raw against the schema and adds one issue per failing field.
func (s *Schema) Check(raw []byte, report *Report) {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		report.Add(rootField, fmt.Sprintf("not a valid JSON document: %v", err))
		return
	}
	for _, resultErr := range result.Errors() {
		report.Add(fieldName(resultErr), resultErr.Description())
	}
}

// fieldName maps a schema error to the dotted path of the offending field.
// Required errors point at the parent object, so the missing property is
// appended.
func fieldName(resultErr gojsonschema.ResultError) string {
	field := resultErr.Field()
	if resultErr.Type() != "required" {
		return field
	}
	property, _ := resultErr.Details()["property"].(string)
	if property == "" {
		return field
	}
	if field == "" || field == rootField {
		return property
	}
	return strings.Join([]string{field, property}, ".")
}
