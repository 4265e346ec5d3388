package usecase

import (
	"context"

	"skill-match/internal/domain/matching"
	"skill-match/internal/search"
)

const (
	defaultListLimit    = 20
	maxListLimit        = 100
	defaultSimilarLimit = 5
	maxSimilarLimit     = 50
)

type JobPage struct {
	Jobs   []JobItem
	Total  int
	Limit  int
	Offset int
}

type SimilarJob struct {
	JobItem
	Similarity float64
}

type JobCatalogUsecase interface {
	ListJobs(ctx context.Context, limit, offset int) (JobPage, error)
	MatchJob(ctx context.Context, jobID int, skills []string, raw string) (RecommendedJob, error)
	SimilarJobs(ctx context.Context, jobID, limit int) ([]SimilarJob, error)
}

type JobCatalog struct {
	catalog CatalogReader
	ranker  *search.Ranker
	opts    ScoringOptions
}

func NewJobCatalogUsecase(cat CatalogReader, opts ScoringOptions) (*JobCatalog, error) {
	ranker, err := search.NewRanker(opts.Weights)
	if err != nil {
		return nil, err
	}
	return &JobCatalog{catalog: cat, ranker: ranker, opts: opts}, nil
}

func (u *JobCatalog) ListJobs(ctx context.Context, limit, offset int) (JobPage, error) {
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit < 0 || limit > maxListLimit || offset < 0 {
		return JobPage{}, ErrInvalidInput
	}

	snap, err := currentSnapshot(u.catalog)
	if err != nil {
		return JobPage{}, err
	}

	rows := snap.Page(limit, offset)
	out := JobPage{Jobs: make([]JobItem, 0, len(rows)), Total: snap.Len(), Limit: limit, Offset: offset}
	for _, r := range rows {
		out.Jobs = append(out.Jobs, toJobItem(r))
	}
	return out, nil
}

// MatchJob scores one job against the user's skills.
func (u *JobCatalog) MatchJob(ctx context.Context, jobID int, skills []string, raw string) (RecommendedJob, error) {
	user := userSkills(skills, raw)
	if user.IsEmpty() {
		return RecommendedJob{}, ErrNoSkillsProvided
	}

	snap, err := currentSnapshot(u.catalog)
	if err != nil {
		return RecommendedJob{}, err
	}
	idx, ok := snap.IndexOf(jobID)
	if !ok {
		return RecommendedJob{}, ErrJobNotFound
	}

	cand := search.Candidate{Job: snap.Jobs[idx]}
	cand.Match = matching.Match(user, snap.JobSkills[idx])
	if u.opts.SimilarityEnabled {
		q := snap.Vectorizer.Transform(search.QueryText(user.Sorted()))
		cand.Similarity = search.Cosine(q, snap.JobVectors[idx])
		cand.HasSimilarity = true
	}

	ranked := u.ranker.Rank([]search.Candidate{cand}).All()
	out := toRecommendedJob(ranked[0])
	out.Rank = 0
	return out, nil
}

// SimilarJobs lists the jobs whose required skills are closest to jobID's.
func (u *JobCatalog) SimilarJobs(ctx context.Context, jobID, limit int) ([]SimilarJob, error) {
	if limit == 0 {
		limit = defaultSimilarLimit
	}
	if limit < 0 || limit > maxSimilarLimit {
		return nil, ErrInvalidInput
	}

	snap, err := currentSnapshot(u.catalog)
	if err != nil {
		return nil, err
	}
	idx, ok := snap.IndexOf(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}

	neighbors := search.SimilarTo(idx, snap.JobVectors, limit)
	out := make([]SimilarJob, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, SimilarJob{JobItem: toJobItem(snap.Jobs[n.Index]), Similarity: n.Similarity})
	}
	return out, nil
}
