package rest

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadOf(t *testing.T, document string) map[string]json.RawMessage {
	payload, err := decodePayload([]byte(document))
	require.NoError(t, err)
	return payload
}

func TestBuildUpdateIncludesZeroValues(t *testing.T) {
	columns, values, err := productOrderResource.buildUpdate(payloadOf(t, `{"quantity":0}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"quantity"}, columns)
	assert.Equal(t, []interface{}{int64(0)}, values)
}

func TestBuildUpdateIncludesFalseAndEmptyString(t *testing.T) {
	rs := Resource{
		Name:     "users",
		Singular: "user",
		Table:    "users",
		Fields: []Field{
			{Name: "firstname", Type: FieldString, Required: true},
			{Name: "admin", Type: FieldBoolean},
		},
	}
	columns, values, err := rs.buildUpdate(payloadOf(t, `{"firstname":"","admin":false}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"firstname", "admin"}, columns)
	assert.Equal(t, []interface{}{"", false}, values)
}

func TestBuildUpdateExplicitNull(t *testing.T) {
	columns, values, err := orderResource.buildUpdate(payloadOf(t, `{"idUser":null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"idUser"}, columns)
	require.Len(t, values, 1)
	assert.Nil(t, values[0])
}

func TestBuildUpdateDeclarationOrder(t *testing.T) {
	// payload key order does not matter, schema declaration order does
	payload := payloadOf(t, `{"orderTrackingNum":9,"idUser":1,"idStatus":2}`)
	columns, values, err := orderResource.buildUpdate(payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"idUser", "idStatus", "orderTrackingNum"}, columns)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(9)}, values)
}

func TestBuildUpdateEmptyPayload(t *testing.T) {
	_, _, err := orderResource.buildUpdate(payloadOf(t, `{}`))
	assert.Equal(t, ErrEmptyUpdate, err)

	// the id alone does not constitute an update
	_, _, err = orderResource.buildUpdate(payloadOf(t, `{"id":7}`))
	assert.Equal(t, ErrEmptyUpdate, err)
}

func TestBuildInsertIgnoresID(t *testing.T) {
	columns, values, err := orderResource.buildInsert(payloadOf(t, `{"id":99,"idUser":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"idUser"}, columns)
	assert.Equal(t, []interface{}{int64(1)}, values)
}

func TestBuildInsertAllowsEmptyPayload(t *testing.T) {
	columns, values, err := orderResource.buildInsert(payloadOf(t, `{}`))
	require.NoError(t, err)
	assert.Empty(t, columns)
	assert.Empty(t, values)
}
