package rest

import (
	"strings"
)

// SortOrder is a validated ordering instruction for a list query. Column is
// a known column of the resource, Direction is ASC or DESC.
type SortOrder struct {
	Column    string
	Direction string
}

// parseSort translates the caller-supplied sort token into a safe ordering.
// react-admin sends tokens of the form ["name","ASC"]; a plain "name ASC"
// or a bare column name are accepted as well. The column is looked up in the
// resource schema and the direction restricted to ASC/DESC; anything else is
// rejected instead of being passed into a query.
func (rs Resource) parseSort(token string) (*SortOrder, *Error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	stripped := strings.NewReplacer("[", " ", "]", " ", `"`, " ", ",", " ").Replace(token)
	parts := strings.Fields(stripped)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, validationError("cannot parse sort parameter " + token)
	}
	column := parts[0]
	if column != "id" {
		if _, ok := rs.field(column); !ok {
			return nil, validationError("unknown sort column " + column)
		}
	}
	direction := "ASC"
	if len(parts) == 2 {
		direction = strings.ToUpper(parts[1])
		if direction != "ASC" && direction != "DESC" {
			return nil, validationError("sort direction must be ASC or DESC")
		}
	}
	return &SortOrder{Column: column, Direction: direction}, nil
}
