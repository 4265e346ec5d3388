package search

import (
	"errors"
	"sort"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
)

var ErrInvalidWeights = errors.New("invalid ranking weights")

// Weights blends similarity and skill overlap into a final score.
type Weights struct {
	Similarity float64
	Overlap    float64
}

var DefaultWeights = Weights{Similarity: 0.6, Overlap: 0.4}

func (w Weights) Validate() error {
	if w.Similarity < 0 || w.Overlap < 0 || w.Similarity+w.Overlap == 0 {
		return ErrInvalidWeights
	}
	return nil
}

// Candidate is one scored job before ranking.
type Candidate struct {
	Job           job.Record
	Match         matching.Result
	Similarity    float64
	HasSimilarity bool
}

type RankedJob struct {
	Rank          int
	Job           job.Record
	Match         matching.Result
	Similarity    float64
	HasSimilarity bool
	FinalScore    float64
}

// Ranker orders candidates by final score.
type Ranker struct {
	weights Weights
}

func NewRanker(w Weights) (*Ranker, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{weights: w}, nil
}

func (r *Ranker) Weights() Weights {
	return r.weights
}

// Score computes the final score of a single candidate. Without a similarity
// term the overlap ratio is the score.
func (r *Ranker) Score(c Candidate) float64 {
	overlap := c.Match.Ratio()
	if !c.HasSimilarity {
		return overlap
	}
	return r.weights.Similarity*c.Similarity + r.weights.Overlap*overlap
}

// Rank scores and sorts candidates descending by final score. Equal scores
// keep input order, so the same input always yields the same ranking.
func (r *Ranker) Rank(cands []Candidate) Ranking {
	out := make([]RankedJob, 0, len(cands))
	for _, c := range cands {
		out = append(out, RankedJob{
			Job:           c.Job,
			Match:         c.Match,
			Similarity:    c.Similarity,
			HasSimilarity: c.HasSimilarity,
			FinalScore:    r.Score(c),
		})
	}

	sortStableDesc(out, func(it RankedJob) float64 { return it.FinalScore })
	for i := range out {
		out[i].Rank = i + 1
	}
	return Ranking{jobs: out}
}

// Ranking is an immutable ranked list.
type Ranking struct {
	jobs []RankedJob
}

func (r Ranking) Len() int {
	return len(r.jobs)
}

// All returns every ranked job.
func (r Ranking) All() []RankedJob {
	out := make([]RankedJob, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Top returns the first k jobs; k <= 0 returns all of them.
func (r Ranking) Top(k int) []RankedJob {
	if k <= 0 || k >= len(r.jobs) {
		return r.All()
	}
	out := make([]RankedJob, k)
	copy(out, r.jobs[:k])
	return out
}

// Filter keeps jobs whose match percent is at least minPercent, preserving
// rank order. Ranks are renumbered.
func (r Ranking) Filter(minPercent float64) Ranking {
	if minPercent <= 0 {
		return r
	}
	out := make([]RankedJob, 0, len(r.jobs))
	for _, it := range r.jobs {
		if it.Match.Percent < minPercent {
			continue
		}
		it.Rank = len(out) + 1
		out = append(out, it)
	}
	return Ranking{jobs: out}
}

func sortStableDesc[T any](items []T, score func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}
