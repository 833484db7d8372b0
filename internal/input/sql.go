package input

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Drivers lists the database/sql drivers a Query may name.
var Drivers = []string{"sqlite3", "mysql", "postgres"}

// Query selects numbers from a database: the first column of every row is
// pushed in row order.
type Query struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	SQL    string `toml:"query"`
}

func (q Query) Enabled() bool {
	return q.SQL != ""
}

func (q Query) validate() error {
	known := false
	for _, d := range Drivers {
		if q.Driver == d {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown database driver %q, expected one of %s", q.Driver, strings.Join(Drivers, ", "))
	}
	if q.DSN == "" {
		return fmt.Errorf("missing connection string for driver %s", q.Driver)
	}
	return nil
}

// FromQuery runs q and converts the first column of each row to a number.
// NULL values are skipped.
func FromQuery(ctx context.Context, q Query) ([]float64, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(q.Driver, q.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rows, err := db.QueryContext(ctx, q.SQL)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("query returned no columns")
	}

	var numbers []float64
	for row := 1; rows.Next(); row++ {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if values[0] == nil {
			slog.Debug("skipping NULL input row", slog.Int("row", row))
			continue
		}
		n, err := toNumber(values[0])
		if err != nil {
			return nil, fmt.Errorf("row %d column %s: %w", row, columns[0], err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	slog.Debug("loaded input from database", slog.String("driver", q.Driver), slog.Int("numbers", len(numbers)))
	return numbers, nil
}

func toNumber(v any) (float64, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return parseText(string(x))
	case string:
		return parseText(x)
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

func parseText(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}
