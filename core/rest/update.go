package rest

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Record is a generic resource record: field name to value, plus the id.
type Record map[string]interface{}

// decodePayload splits a request document into raw messages per field, so
// that field presence can be decided by key presence instead of value
// truthiness. An explicit null stays distinguishable from an absent field.
func decodePayload(document []byte) (map[string]json.RawMessage, error) {
	payload := map[string]json.RawMessage{}
	if err := json.Unmarshal(document, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

var nullLiteral = []byte("null")

func (f Field) decodeValue(raw json.RawMessage) (interface{}, error) {
	if bytes.Equal(bytes.TrimSpace(raw), nullLiteral) {
		return nil, nil
	}
	var err error
	switch f.Type {
	case FieldInteger:
		var n int64
		err = json.Unmarshal(raw, &n)
		return n, err
	case FieldBoolean:
		var b bool
		err = json.Unmarshal(raw, &b)
		return b, err
	default:
		var s string
		err = json.Unmarshal(raw, &s)
		return s, err
	}
}

// buildUpdate builds the minimal assignment set for a sparse update payload.
// Fields are visited in schema declaration order so generated statements are
// stable. A field is included if and only if its key is present in the
// payload; the id key is ignored. When no recognized field is present the
// builder returns ErrEmptyUpdate so the caller can answer "nothing to
// change" without submitting an empty mutation.
func (rs Resource) buildUpdate(payload map[string]json.RawMessage) ([]string, []interface{}, error) {
	var columns []string
	var values []interface{}
	for _, f := range rs.Fields {
		raw, ok := payload[f.Name]
		if !ok {
			continue
		}
		value, err := f.decodeValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		columns = append(columns, f.Name)
		values = append(values, value)
	}
	if len(columns) == 0 {
		return nil, nil, ErrEmptyUpdate
	}
	return columns, values, nil
}

// buildInsert collects the fields present in a create payload, in schema
// declaration order. Absent optional fields are left to the store's
// defaults. The returned lists may be empty for a resource without required
// fields; the store then inserts a pure default row.
func (rs Resource) buildInsert(payload map[string]json.RawMessage) ([]string, []interface{}, error) {
	var columns []string
	var values []interface{}
	for _, f := range rs.Fields {
		raw, ok := payload[f.Name]
		if !ok {
			continue
		}
		value, err := f.decodeValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		columns = append(columns, f.Name)
		values = append(values, value)
	}
	return columns, values, nil
}
