package postgres

import (
	"context"
	"fmt"

	"skill-match/internal/database"
	"skill-match/internal/domain/job"
)

// JobRepository reads the job dataset from the jobs table.
type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Name() string { return "postgres" }

// LoadJobs returns every job in dataset order. IDs are assigned by position
// so they line up with the CSV source.
func (r *JobRepository) LoadJobs(ctx context.Context) ([]job.Record, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("nil db")
	}

	rows, err := r.db.Query(ctx, `
SELECT title, company, location, industry, required_skills
FROM jobs
ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Record, 0, 256)
	for rows.Next() {
		var rec job.Record
		if err := rows.Scan(&rec.Title, &rec.Company, &rec.Location, &rec.Industry, &rec.SkillText); err != nil {
			return nil, err
		}
		rec.ID = len(out)
		rec.RequiredSkills = job.SplitSkills(rec.SkillText)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *JobRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
