package postgres

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"skill-match/internal/database"
)

type stubRows struct {
	data [][]string
	i    int
}

func (r *stubRows) Close()     {}
func (r *stubRows) Err() error { return nil }
func (r *stubRows) Next() bool {
	r.i++
	return r.i <= len(r.data)
}
func (r *stubRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i := range dest {
		*(dest[i].(*string)) = row[i]
	}
	return nil
}

type stubRow struct{ n int }

func (r stubRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.n
	return nil
}

type stubDB struct {
	rows [][]string
	err  error
}

func (d *stubDB) Ping(context.Context) error { return nil }
func (d *stubDB) Close() error               { return nil }
func (d *stubDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}
func (d *stubDB) Query(context.Context, string, ...any) (database.Rows, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &stubRows{data: d.rows}, nil
}
func (d *stubDB) QueryRow(context.Context, string, ...any) database.Row {
	return stubRow{n: len(d.rows)}
}
func (d *stubDB) Begin(context.Context) (database.Tx, error) { return nil, errors.New("no tx") }
func (d *stubDB) SQLDB() *sql.DB                             { return nil }

func TestJobRepository_LoadJobs(t *testing.T) {
	db := &stubDB{rows: [][]string{
		{"Data Analyst", "ABC Corp", "Delhi", "", "Excel, SQL, Statistics"},
		{"ML Engineer", "AI Labs", "Remote", "Tech", "NaN"},
	}}
	repo := NewJobRepository(db)

	jobs, err := repo.LoadJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 2 || jobs[1].ID != 1 || jobs[1].Industry != "Tech" {
		t.Fatalf("jobs = %+v", jobs)
	}
	if !reflect.DeepEqual(jobs[0].RequiredSkills, []string{"Excel", "SQL", "Statistics"}) {
		t.Fatalf("skills = %v", jobs[0].RequiredSkills)
	}
	if len(jobs[1].RequiredSkills) != 0 {
		t.Fatalf("NaN skills should be empty, got %v", jobs[1].RequiredSkills)
	}

	if n, err := repo.Count(context.Background()); err != nil || n != 2 {
		t.Fatalf("count = %d err=%v", n, err)
	}
	if repo.Name() != "postgres" {
		t.Fatalf("name = %q", repo.Name())
	}
}

func TestJobRepository_QueryError(t *testing.T) {
	repo := NewJobRepository(&stubDB{err: errors.New("boom")})
	if _, err := repo.LoadJobs(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
