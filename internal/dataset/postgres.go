package dataset

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Querier is the subset of *pgxpool.Pool used by PostgresTable.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresTable reads a dataset from a database table named by ref.Table.
// Every cell is rendered to text so the result matches a CSV load.
type PostgresTable struct {
	DB Querier
}

func (PostgresTable) Name() string { return "postgres" }

func (p PostgresTable) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	if p.DB == nil || ref.Table == "" {
		return nil, ErrNotFound
	}

	rows, err := p.DB.Query(ctx, selectAllSQL(ref.Table))
	if err != nil {
		if isUndefinedTable(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query %s: %w", ref.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.Name
	}

	t := &Table{
		Name:   ref.Name,
		Source: "postgres:" + ref.Table,
		Format: "postgres",
		Header: NormalizeHeaders(names),
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", ref.Table, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", ref.Table, err)
	}
	return t, nil
}

// selectAllSQL builds a SELECT for a possibly schema-qualified table name.
func selectAllSQL(table string) string {
	return "SELECT * FROM " + pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// undefinedTableCode is the SQLSTATE for "relation does not exist".
const undefinedTableCode = "42P01"

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode
}

// formatCell renders a decoded column value the way it would appear in a CSV export.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	case pgtype.Numeric:
		if !x.Valid {
			return ""
		}
		if x.NaN || x.InfinityModifier != pgtype.Finite || x.Int == nil {
			return valuerText(x)
		}
		return decimal.NewFromBigInt(x.Int, x.Exp).String()
	case driver.Valuer:
		return valuerText(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func valuerText(v driver.Valuer) string {
	dv, err := v.Value()
	if err != nil || dv == nil {
		return ""
	}
	return formatCell(dv)
}
