package usecase

import (
	"skill-match/internal/catalog"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
	"skill-match/internal/search"
)

// CatalogReader exposes the currently published job catalog.
type CatalogReader interface {
	Current() *catalog.Snapshot
}

type ScoringOptions struct {
	Weights           search.Weights
	SimilarityEnabled bool
	DefaultTopK       int
}

type JobItem struct {
	JobID          int
	Title          string
	Company        string
	Location       string
	Industry       string
	RequiredSkills []string
}

type RecommendedJob struct {
	JobItem
	Rank            int
	MatchedSkills   []string
	UnmatchedSkills []string
	ExtraSkills     []string
	MatchPercent    float64
	Similarity      float64
	HasSimilarity   bool
	FinalScore      float64
}

func toJobItem(r job.Record) JobItem {
	skills := r.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobItem{
		JobID:          r.ID,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		Industry:       r.Industry,
		RequiredSkills: skills,
	}
}

func toRecommendedJob(it search.RankedJob) RecommendedJob {
	return RecommendedJob{
		JobItem:         toJobItem(it.Job),
		Rank:            it.Rank,
		MatchedSkills:   it.Match.Matched.Sorted(),
		UnmatchedSkills: it.Match.Unmatched.Sorted(),
		ExtraSkills:     it.Match.Extra.Sorted(),
		MatchPercent:    it.Match.Percent,
		Similarity:      it.Similarity,
		HasSimilarity:   it.HasSimilarity,
		FinalScore:      it.FinalScore,
	}
}

// userSkills merges list and comma-separated input into one normalized set.
func userSkills(list []string, raw string) skill.Set {
	return skill.FromList(list).Union(skill.Normalize(raw))
}

// scoreAll matches user against every job of snap and ranks the result.
func scoreAll(ranker *search.Ranker, snap *catalog.Snapshot, user skill.Set, withSimilarity bool) search.Ranking {
	var sims []float64
	if withSimilarity {
		q := snap.Vectorizer.Transform(search.QueryText(user.Sorted()))
		sims = search.Similarities(q, snap.JobVectors)
	}

	cands := make([]search.Candidate, len(snap.Jobs))
	for i, j := range snap.Jobs {
		c := search.Candidate{
			Job:   j,
			Match: matching.Match(user, snap.JobSkills[i]),
		}
		if withSimilarity {
			c.Similarity = sims[i]
			c.HasSimilarity = true
		}
		cands[i] = c
	}
	return ranker.Rank(cands)
}

func currentSnapshot(cat CatalogReader) (*catalog.Snapshot, error) {
	if cat == nil {
		return nil, ErrCatalogUnavailable
	}
	snap := cat.Current()
	if snap == nil {
		return nil, ErrCatalogUnavailable
	}
	return snap, nil
}
