package rest

import (
	"context"
)

// Store is the data-access capability of one resource. It is constructed
// once at backend creation and passed explicitly into the resource handlers;
// handlers never reach for ambient database state. A fake implementation can
// be injected through the Builder for deterministic tests.
//
// Get returns csql.ErrNoRows when no record matches the identifier. Insert
// returns the generated identifier. Update, Delete and DeleteBy return the
// number of affected rows; a zero count after a passing existence guard is
// the caller's race signal.
type Store interface {
	List(ctx context.Context, order *SortOrder) ([]Record, error)
	ListBy(ctx context.Context, column string, id int64, order *SortOrder) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Insert(ctx context.Context, columns []string, values []interface{}) (int64, error)
	Update(ctx context.Context, id int64, columns []string, values []interface{}) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteBy(ctx context.Context, column string, id int64) (int64, error)
}
