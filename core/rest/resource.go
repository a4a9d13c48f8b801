package rest

import (
	"fmt"
	"strings"
)

// FieldType is the declared type of a resource field
type FieldType string

// all supported field types
const (
	FieldInteger FieldType = "integer"
	FieldString  FieldType = "string"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
)

// Field declares one column of a resource.
//
// Required makes the field mandatory on create; on update every field is
// optional. Nullable permits an explicit JSON null, which clears the stored
// value and is not the same as leaving the field out. Max bounds the value
// for integer fields and the length for string fields, 0 means unbounded.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Nullable bool
	Max      int
}

// Child declares a nested collection route on a resource, e.g.
// /api/pages/{id}/paragraphs. Resource names the child resource,
// ForeignKey the child column referencing the parent id. AllowClear
// additionally registers a DELETE route that clears all children of
// one parent.
type Child struct {
	Resource   string
	ForeignKey string
	AllowClear bool
}

// Resource is the declarative schema of one entity exposed via the
// five-operation lifecycle. Name is the route segment and the token used in
// the Content-Range header, Singular appears in error messages, Table is the
// database relation. The declaration order of Fields is the deterministic
// order in which partial updates are built.
type Resource struct {
	Name     string
	Singular string
	Table    string
	Fields   []Field
	Children []Child
}

// Validate checks the resource declaration for consistency.
func (rs Resource) Validate() error {
	if rs.Name == "" || rs.Singular == "" || rs.Table == "" {
		return fmt.Errorf("resource needs name, singular and table")
	}
	if len(rs.Fields) == 0 {
		return fmt.Errorf("resource %s has no fields", rs.Name)
	}
	seen := map[string]bool{"id": true}
	for _, f := range rs.Fields {
		if f.Name == "" {
			return fmt.Errorf("resource %s has a field without name", rs.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("resource %s declares field %s twice", rs.Name, f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case FieldInteger, FieldString, FieldDate, FieldBoolean:
		default:
			return fmt.Errorf("resource %s field %s has unknown type %q", rs.Name, f.Name, f.Type)
		}
		if f.Max < 0 {
			return fmt.Errorf("resource %s field %s has negative bound", rs.Name, f.Name)
		}
	}
	for _, c := range rs.Children {
		if c.Resource == "" || c.ForeignKey == "" {
			return fmt.Errorf("resource %s has an incomplete child declaration", rs.Name)
		}
	}
	return nil
}

func (rs Resource) field(name string) (Field, bool) {
	for _, f := range rs.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// columns returns the field names in declaration order, without the id.
func (rs Resource) columns() []string {
	names := make([]string, len(rs.Fields))
	for i, f := range rs.Fields {
		names[i] = f.Name
	}
	return names
}

// titleSingular returns the singular with an upper-case first letter,
// the way error messages address a resource.
func (rs Resource) titleSingular() string {
	if rs.Singular == "" {
		return rs.Singular
	}
	return strings.ToUpper(rs.Singular[:1]) + rs.Singular[1:]
}
