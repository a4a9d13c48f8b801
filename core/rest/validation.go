package rest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/brille-tech/backend/core"
)

// validator holds the compiled JSON schemas for one resource. Two schemas
// exist because presence requirements depend on the operation kind: fields
// marked required must be present on create, while on update every field is
// optional. Both schemas reject unknown fields and accept an id field for
// frontend round-tripping.
type validator struct {
	createSchema *gojsonschema.Schema
	updateSchema *gojsonschema.Schema
}

func newValidator(rs Resource) (*validator, error) {
	createSchema, err := compileSchema(rs, core.OperationCreate)
	if err != nil {
		return nil, fmt.Errorf("cannot compile create schema for %s: %w", rs.Name, err)
	}
	updateSchema, err := compileSchema(rs, core.OperationUpdate)
	if err != nil {
		return nil, fmt.Errorf("cannot compile update schema for %s: %w", rs.Name, err)
	}
	return &validator{createSchema: createSchema, updateSchema: updateSchema}, nil
}

func compileSchema(rs Resource, op core.Operation) (*gojsonschema.Schema, error) {
	properties := map[string]interface{}{
		// accepted but ignored, react-admin round-trips the identifier
		"id": map[string]interface{}{"type": "integer"},
	}
	var required []string
	for _, f := range rs.Fields {
		properties[f.Name] = f.schemaProperty()
		if op == core.OperationCreate && f.Required {
			required = append(required, f.Name)
		}
	}
	document := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		document["required"] = required
	}
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(document))
}

func (f Field) schemaProperty() map[string]interface{} {
	property := map[string]interface{}{}
	var jsonType string
	switch f.Type {
	case FieldInteger:
		jsonType = "integer"
		if f.Max > 0 {
			property["maximum"] = f.Max
		}
	case FieldBoolean:
		jsonType = "boolean"
	default: // string and date travel as JSON strings
		jsonType = "string"
		if f.Max > 0 {
			property["maxLength"] = f.Max
		}
	}
	if f.Nullable {
		property["type"] = []string{jsonType, "null"}
	} else {
		property["type"] = jsonType
	}
	return property
}

// validate checks the request document against the schema for the given
// operation kind. All fields are checked, violations are aggregated into a
// single validation error so the caller can display every problem at once.
func (v *validator) validate(document []byte, op core.Operation) *Error {
	schema := v.updateSchema
	if op == core.OperationCreate {
		schema = v.createSchema
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return validationError("invalid json data: " + err.Error())
	}
	if result.Valid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}
	sort.Strings(messages)
	return validationError(strings.Join(messages, ". "))
}
