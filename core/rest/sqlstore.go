package rest

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/brille-tech/backend/core/csql"
)

// sqlStore is the postgres-backed Store. All static query text is computed
// once at construction; only the assignment list of a partial update is
// composed per request, from schema-validated column names and numbered
// placeholders.
type sqlStore struct {
	db *csql.DB
	rs Resource

	table       string
	selectList  string
	readQuery   string
	readByQuery string
	getQuery    string
	deleteQuery string
	clearQuery  string
}

func newSQLStore(db *csql.DB, rs Resource) *sqlStore {
	table := fmt.Sprintf("%s.%q", db.Schema, rs.Table)
	quoted := make([]string, 0, len(rs.Fields)+1)
	quoted = append(quoted, `"id"`)
	for _, f := range rs.Fields {
		quoted = append(quoted, `"`+f.Name+`"`)
	}
	selectList := strings.Join(quoted, ", ")

	s := &sqlStore{
		db:          db,
		rs:          rs,
		table:       table,
		selectList:  selectList,
		readQuery:   fmt.Sprintf("SELECT %s FROM %s", selectList, table),
		readByQuery: fmt.Sprintf("SELECT %s FROM %s WHERE %%q = $1", selectList, table),
		getQuery:    fmt.Sprintf("SELECT %s FROM %s WHERE id = $1;", selectList, table),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE id = $1;", table),
		clearQuery:  fmt.Sprintf("DELETE FROM %s WHERE %%q = $1;", table),
	}
	return s
}

// returns $1,...,$n
func parameterString(n int) string {
	result := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			result += ","
		}
		result += "$" + strconv.Itoa(i+1)
	}
	return result
}

// createTable creates the backing relation if it does not exist yet,
// derived from the field declarations.
func (s *sqlStore) createTable() error {
	createColumns := []string{"id serial PRIMARY KEY"}
	for _, f := range s.rs.Fields {
		var sqlType string
		switch f.Type {
		case FieldInteger:
			sqlType = "integer"
		case FieldBoolean:
			sqlType = "boolean"
		case FieldDate:
			sqlType = "timestamp"
		default:
			if f.Max > 0 {
				sqlType = fmt.Sprintf("varchar(%d)", f.Max)
			} else {
				sqlType = "text"
			}
		}
		createColumns = append(createColumns, fmt.Sprintf("%q %s", f.Name, sqlType))
	}
	query := fmt.Sprintf("CREATE table IF NOT EXISTS %s (%s);", s.table, strings.Join(createColumns, ", "))
	_, err := s.db.Exec(query)
	return err
}

// newScanValues returns typed scan targets: the id first, then one nullable
// holder per field in declaration order.
func (s *sqlStore) newScanValues() []interface{} {
	values := make([]interface{}, len(s.rs.Fields)+1)
	values[0] = new(int64)
	for i, f := range s.rs.Fields {
		switch f.Type {
		case FieldInteger:
			values[i+1] = &sql.NullInt64{}
		case FieldBoolean:
			values[i+1] = &sql.NullBool{}
		case FieldDate:
			values[i+1] = &sql.NullTime{}
		default:
			values[i+1] = &sql.NullString{}
		}
	}
	return values
}

func (s *sqlStore) recordFromScanValues(values []interface{}) Record {
	record := Record{"id": *values[0].(*int64)}
	for i, f := range s.rs.Fields {
		switch holder := values[i+1].(type) {
		case *sql.NullInt64:
			if holder.Valid {
				record[f.Name] = holder.Int64
			} else {
				record[f.Name] = nil
			}
		case *sql.NullBool:
			if holder.Valid {
				record[f.Name] = holder.Bool
			} else {
				record[f.Name] = nil
			}
		case *sql.NullTime:
			if holder.Valid {
				record[f.Name] = holder.Time
			} else {
				record[f.Name] = nil
			}
		case *sql.NullString:
			if holder.Valid {
				record[f.Name] = holder.String
			} else {
				record[f.Name] = nil
			}
		}
	}
	return record
}

func (s *sqlStore) queryRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []Record{}
	for rows.Next() {
		values := s.newScanValues()
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		records = append(records, s.recordFromScanValues(values))
	}
	return records, rows.Err()
}

func orderClause(order *SortOrder) string {
	if order == nil {
		return ";"
	}
	return fmt.Sprintf(" ORDER BY %q %s;", order.Column, order.Direction)
}

func (s *sqlStore) List(ctx context.Context, order *SortOrder) ([]Record, error) {
	return s.queryRecords(ctx, s.readQuery+orderClause(order))
}

func (s *sqlStore) ListBy(ctx context.Context, column string, id int64, order *SortOrder) ([]Record, error) {
	query := fmt.Sprintf(s.readByQuery, column) + orderClause(order)
	return s.queryRecords(ctx, query, id)
}

func (s *sqlStore) Get(ctx context.Context, id int64) (Record, error) {
	values := s.newScanValues()
	if err := s.db.QueryRowContext(ctx, s.getQuery, id).Scan(values...); err != nil {
		return nil, err
	}
	return s.recordFromScanValues(values), nil
}

func (s *sqlStore) Insert(ctx context.Context, columns []string, values []interface{}) (int64, error) {
	var query string
	if len(columns) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id;", s.table)
	} else {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = `"` + c + `"`
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES(%s) RETURNING id;",
			s.table, strings.Join(quoted, ", "), parameterString(len(columns)))
	}
	var id int64
	if err := s.db.QueryRowContext(ctx, query, values...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *sqlStore) Update(ctx context.Context, id int64, columns []string, values []interface{}) (int64, error) {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%q = $%d", c, i+1)
	}
	// the identifier scopes the mutation to exactly one record and is
	// always the last parameter
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d;",
		s.table, strings.Join(sets, ", "), len(columns)+1)
	result, err := s.db.ExecContext(ctx, query, append(values, id)...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *sqlStore) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.deleteQuery, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *sqlStore) DeleteBy(ctx context.Context, column string, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(s.clearQuery, column), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
