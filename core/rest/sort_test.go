package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortReactAdminToken(t *testing.T) {
	order, verr := orderResource.parseSort(`["orderDate","DESC"]`)
	require.Nil(t, verr)
	require.NotNil(t, order)
	assert.Equal(t, "orderDate", order.Column)
	assert.Equal(t, "DESC", order.Direction)
}

func TestParseSortBareColumn(t *testing.T) {
	order, verr := orderResource.parseSort("idStatus")
	require.Nil(t, verr)
	require.NotNil(t, order)
	assert.Equal(t, "idStatus", order.Column)
	assert.Equal(t, "ASC", order.Direction)
}

func TestParseSortID(t *testing.T) {
	// id is not a declared field but always sortable
	order, verr := orderResource.parseSort(`["id","ASC"]`)
	require.Nil(t, verr)
	require.NotNil(t, order)
	assert.Equal(t, "id", order.Column)
}

func TestParseSortEmpty(t *testing.T) {
	order, verr := orderResource.parseSort("")
	assert.Nil(t, verr)
	assert.Nil(t, order)
}

func TestParseSortUnknownColumn(t *testing.T) {
	_, verr := orderResource.parseSort(`["password","ASC"]`)
	require.NotNil(t, verr)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.Status)
}

func TestParseSortBadDirection(t *testing.T) {
	_, verr := orderResource.parseSort(`["orderDate","SIDEWAYS"]`)
	require.NotNil(t, verr)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.Status)
}

func TestParseSortRejectsInjection(t *testing.T) {
	_, verr := orderResource.parseSort(`["orderDate; DROP TABLE orders","ASC"]`)
	require.NotNil(t, verr)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.Status)
}
