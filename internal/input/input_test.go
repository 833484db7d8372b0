package input

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []float64
	}{
		{"empty", "", nil},
		{"blank", "  \n\t ", nil},
		{"single", "4", []float64{4}},
		{"spaces", "1 2 3", []float64{1, 2, 3}},
		{"mixed whitespace", "1\n2\t 3\n", []float64{1, 2, 3}},
		{"decimals and signs", "-1.5 +2 1e3", []float64{-1.5, 2, 1000}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseNumbers(c.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(c.expected) {
				t.Fatalf("expected %v, got %v", c.expected, got)
			}
			for i := range got {
				if got[i] != c.expected[i] {
					t.Errorf("expected %v, got %v", c.expected, got)
				}
			}
		})
	}
}

func TestParseNumbersRejectsText(t *testing.T) {
	_, err := ParseNumbers("1 two 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), `"two"`) {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestReadNumbers(t *testing.T) {
	got, err := ReadNumbers(strings.NewReader("7 8\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Errorf("expected [7 8], got %v", got)
	}
}

func TestFromQuerySqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, stmt := range []string{
		"CREATE TABLE samples (id INTEGER PRIMARY KEY, value)",
		"INSERT INTO samples (value) VALUES (3), (1.5), ('4'), (NULL), (10)",
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	db.Close()

	got, err := FromQuery(context.Background(), Query{
		Driver: "sqlite3",
		DSN:    path,
		SQL:    "SELECT value FROM samples ORDER BY id",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []float64{3, 1.5, 4, 10}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, got)
		}
	}
}

func TestFromQueryRejectsText(t *testing.T) {
	_, err := FromQuery(context.Background(), Query{
		Driver: "sqlite3",
		DSN:    filepath.Join(t.TempDir(), "text.db"),
		SQL:    "SELECT 'hello'",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestQueryValidation(t *testing.T) {
	cases := []struct {
		name  string
		query Query
	}{
		{"unknown driver", Query{Driver: "oracle", DSN: "x", SQL: "SELECT 1"}},
		{"missing dsn", Query{Driver: "mysql", SQL: "SELECT 1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := FromQuery(context.Background(), c.query); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestQueryEnabled(t *testing.T) {
	if (Query{}).Enabled() {
		t.Errorf("empty query should be disabled")
	}
	if !(Query{Driver: "sqlite3", DSN: "x", SQL: "SELECT 1"}).Enabled() {
		t.Errorf("query with SQL should be enabled")
	}
}
