package rest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brille-tech/backend/core/csql"
)

func newTestSQLStore() *sqlStore {
	db := &csql.DB{Schema: "brille"}
	return newSQLStore(db, orderResource)
}

func TestSQLStoreQueryText(t *testing.T) {
	s := newTestSQLStore()

	assert.Equal(t, `brille."orders"`, s.table)
	assert.Equal(t,
		`SELECT "id", "idUser", "idStatus", "idAddress", "orderDate", "orderTrackingNum" FROM brille."orders" WHERE id = $1;`,
		s.getQuery)
	assert.Equal(t, `DELETE FROM brille."orders" WHERE id = $1;`, s.deleteQuery)
	assert.Equal(t,
		`SELECT "id", "idUser", "idStatus", "idAddress", "orderDate", "orderTrackingNum" FROM brille."orders" WHERE "idUser" = $1`,
		fmt.Sprintf(s.readByQuery, "idUser"))
}

func TestSQLStoreOrderClause(t *testing.T) {
	assert.Equal(t, ";", orderClause(nil))
	assert.Equal(t, ` ORDER BY "orderDate" DESC;`, orderClause(&SortOrder{Column: "orderDate", Direction: "DESC"}))
}

func TestParameterString(t *testing.T) {
	assert.Equal(t, "", parameterString(0))
	assert.Equal(t, "$1", parameterString(1))
	assert.Equal(t, "$1,$2,$3", parameterString(3))
}

func TestSQLStoreScanValues(t *testing.T) {
	s := newTestSQLStore()
	values := s.newScanValues()
	// id plus one holder per declared field
	assert.Len(t, values, len(orderResource.Fields)+1)

	record := s.recordFromScanValues(values)
	assert.Equal(t, int64(0), record["id"])
	// unscanned holders are not valid, they surface as null
	assert.Nil(t, record["idUser"])
	assert.Nil(t, record["orderDate"])
}
