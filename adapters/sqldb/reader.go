// Package sqldb loads a dataset from a SQL table. Every cell is read
// back as raw text so the core's type detector stays the single
// authority on semantic types, exactly as with file sources.
package sqldb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"chartscout/domain/column"
	"chartscout/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableReader reads one database table into a dataset.
type TableReader struct {
	db    *sqlx.DB
	table string
}

// NewTableReader connects to the database and targets the given table.
// The table name must be a plain identifier; anything else is rejected
// before it can reach the query.
func NewTableReader(driver, dsn, table string) (*TableReader, error) {
	if !identifierPattern.MatchString(table) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid table name %q", table))
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s database", driver)
	}
	return &TableReader{db: db, table: table}, nil
}

// SourceName identifies the source table.
func (r *TableReader) SourceName() string {
	return r.table
}

// Close releases the database connection.
func (r *TableReader) Close() error {
	return r.db.Close()
}

// Read loads the full table into memory.
func (r *TableReader) Read(ctx context.Context) (*column.Dataset, error) {
	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, r.table))
	if err != nil {
		return nil, errors.Wrapf(err, "query table %s", r.table)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read column names")
	}

	values := make([][]column.Value, len(names))
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		for i := range names {
			var v column.Value
			if i < len(cells) {
				v = cellValue(cells[i])
			} else {
				v = column.NewMissingValue()
			}
			values[i] = append(values[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate table %s", r.table)
	}

	cols := make([]column.Column, len(names))
	for i, name := range names {
		cols[i] = column.Column{Name: name, Values: values[i]}
	}
	return column.NewDataset(r.table, cols), nil
}

// cellValue renders a driver value as a raw cell string.
func cellValue(cell interface{}) column.Value {
	switch v := cell.(type) {
	case nil:
		return column.NewMissingValue()
	case []byte:
		return column.NewValue(string(v))
	case string:
		return column.NewValue(v)
	case int64:
		return column.NewValue(strconv.FormatInt(v, 10))
	case float64:
		return column.NewValue(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return column.NewValue(strconv.FormatBool(v))
	case time.Time:
		return column.NewValue(v.Format("2006-01-02 15:04:05"))
	default:
		return column.NewValue(fmt.Sprintf("%v", v))
	}
}
