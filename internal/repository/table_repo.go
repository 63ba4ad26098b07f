package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/campus-housing-api/internal/database"
	"github.com/campus-housing-api/internal/models"
	"github.com/lib/pq"
)

// tableRepo is the concrete implementation of TableRepository
type tableRepo struct {
	db *database.DB
}

// NewTableRepo creates a new table repository
func NewTableRepo(db *database.DB) TableRepository {
	return &tableRepo{db: db}
}

// BatchInsert writes all records in a single multi-row INSERT.
// The column list is the sorted union of the records' keys; a record
// missing a column gets NULL. Either every row is written or none is.
func (r *tableRepo) BatchInsert(ctx context.Context, table string, records []models.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	columns := columnUnion(records)
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to insert into %s", table)
	}

	query, args, err := buildInsert(table, columns, records)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return len(records), nil
	}
	return int(affected), nil
}

func columnUnion(records []models.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

func buildInsert(table string, columns []string, records []models.Record) (string, []interface{}, error) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pq.QuoteIdentifier(table))
	b.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pq.QuoteIdentifier(col))
	}
	b.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(columns)*len(records))
	n := 1
	for i, rec := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, col := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++

			v, err := columnValue(rec[col])
			if err != nil {
				return "", nil, fmt.Errorf("column %s: %w", col, err)
			}
			args = append(args, v)
		}
		b.WriteByte(')')
	}

	return b.String(), args, nil
}

// columnValue converts a decoded JSON value into a driver argument.
// Nested objects and arrays are stored as their JSON text.
func columnValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string, bool, int, int64, float64:
		return val, nil
	case json.Number:
		return val.String(), nil
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
}
