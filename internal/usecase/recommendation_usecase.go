package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"skill-match/internal/resume"
	"skill-match/internal/search"
)

type RecommendParams struct {
	Skills []string
	Raw    string
	// Limit of 0 uses the configured default; All returns every job.
	Limit      int
	All        bool
	MinPercent float64
	// Similarity overrides the configured similarity toggle when set.
	Similarity *bool
}

type Recommendation struct {
	Query          []string
	Jobs           []RecommendedJob
	Total          int
	Scored         int
	SimilarityUsed bool
	Insights       search.Insights
	Fingerprint    string
}

type ResumeParams struct {
	ContentType string
	Data        []byte
	Limit       int
	All         bool
}

type ResumeRecommendation struct {
	ExtractedSkills []string
	Recommendation
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, p RecommendParams) (Recommendation, error)
	RecommendFromResume(ctx context.Context, p ResumeParams) (ResumeRecommendation, error)
}

type Recommender struct {
	catalog  CatalogReader
	ranker   *search.Ranker
	opts     ScoringOptions
	cache    SearchCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewRecommender(cat CatalogReader, opts ScoringOptions, cache SearchCache, cacheTTL time.Duration, logger *log.Logger) (*Recommender, error) {
	ranker, err := search.NewRanker(opts.Weights)
	if err != nil {
		return nil, err
	}
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 10
	}
	return &Recommender{catalog: cat, ranker: ranker, opts: opts, cache: cache, cacheTTL: cacheTTL, logger: logger}, nil
}

func (u *Recommender) Recommend(ctx context.Context, p RecommendParams) (Recommendation, error) {
	user := userSkills(p.Skills, p.Raw)
	if user.IsEmpty() {
		return Recommendation{}, ErrNoSkillsProvided
	}
	if p.Limit < 0 || !validPercent(p.MinPercent) {
		return Recommendation{}, ErrInvalidInput
	}

	snap, err := currentSnapshot(u.catalog)
	if err != nil {
		return Recommendation{}, err
	}
	if snap.IsEmpty() {
		return Recommendation{}, ErrNoJobsFound
	}

	limit := p.Limit
	if p.All {
		limit = 0
	} else if limit == 0 {
		limit = u.opts.DefaultTopK
	}
	withSim := u.opts.SimilarityEnabled
	if p.Similarity != nil {
		withSim = *p.Similarity
	}
	query := user.Sorted()

	cacheKey := RecommendationCacheKey(snap.Fingerprint, query, limit, p.MinPercent, withSim)
	if u.cache != nil {
		var cached Recommendation
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Recommend] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Recommend] Cache MISS: %s", cacheKey)
	}

	ranking := scoreAll(u.ranker, snap, user, withSim).Filter(p.MinPercent)
	top := ranking.Top(limit)

	out := Recommendation{
		Query:          query,
		Jobs:           make([]RecommendedJob, 0, len(top)),
		Total:          ranking.Len(),
		Scored:         snap.Len(),
		SimilarityUsed: withSim,
		Insights:       search.Summarize(ranking.All()),
		Fingerprint:    snap.Fingerprint,
	}
	for _, it := range top {
		out.Jobs = append(out.Jobs, toRecommendedJob(it))
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.cacheTTL); err != nil {
			u.logf("[Recommend] Cache SET error key=%s err=%v", cacheKey, err)
		}
	}
	return out, nil
}

// RecommendFromResume extracts known skills from a text resume and
// recommends jobs for them.
func (u *Recommender) RecommendFromResume(ctx context.Context, p ResumeParams) (ResumeRecommendation, error) {
	text, err := resume.ExtractText(p.ContentType, p.Data)
	if err != nil {
		return ResumeRecommendation{}, fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}

	snap, err := currentSnapshot(u.catalog)
	if err != nil {
		return ResumeRecommendation{}, err
	}

	known := append(append([]string{}, resume.DefaultSkills...), snap.KnownSkills()...)
	found := resume.ExtractSkills(text, known)
	if found.IsEmpty() {
		return ResumeRecommendation{}, ErrNoSkillsProvided
	}

	rec, err := u.Recommend(ctx, RecommendParams{Skills: found.Sorted(), Limit: p.Limit, All: p.All})
	if err != nil {
		return ResumeRecommendation{}, err
	}
	return ResumeRecommendation{ExtractedSkills: found.Sorted(), Recommendation: rec}, nil
}

func (u *Recommender) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func validPercent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 100
}
