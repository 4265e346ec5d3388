package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-match/internal/database"
	"skill-match/internal/domain/job"
)

const defaultJobsBatchSize = 500

var jobColumns = []string{"position", "title", "company", "location", "industry", "required_skills"}

// JobsSeeder replaces the contents of the jobs table with Records, keeping
// their dataset order in the position column.
type JobsSeeder struct {
	Records   []job.Record
	BatchSize int
	// Progress, when set, is called with the number of rows written by each
	// batch.
	Progress func(n int)
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", jobColumns...); err != nil {
		return err
	}

	batch := s.BatchSize
	if batch <= 0 {
		batch = defaultJobsBatchSize
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}

	for start := 0; start < len(s.Records); start += batch {
		end := start + batch
		if end > len(s.Records) {
			end = len(s.Records)
		}

		rows := make([][]any, 0, end-start)
		for i, r := range s.Records[start:end] {
			rows = append(rows, jobRow(start+i, r))
		}
		n, err := tx.CopyFrom(ctx, "jobs", jobColumns, rows)
		if err != nil {
			return fmt.Errorf("copy jobs batch at %d: %w", start, err)
		}
		if s.Progress != nil {
			s.Progress(int(n))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func jobRow(position int, r job.Record) []any {
	skills := r.SkillText
	if skills == "" {
		skills = strings.Join(r.RequiredSkills, ", ")
	}
	return []any{
		position,
		r.Title,
		r.Company,
		r.Location,
		r.Industry,
		skills,
	}
}
