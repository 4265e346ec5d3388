package search

import (
	"errors"
	"math"
	"testing"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
)

func candidate(id int, user, jobSkills string, sim float64, hasSim bool) Candidate {
	return Candidate{
		Job:           job.Record{ID: id, Title: "job"},
		Match:         matching.Match(skill.Normalize(user), skill.Normalize(jobSkills)),
		Similarity:    sim,
		HasSimilarity: hasSim,
	}
}

func TestNewRanker_InvalidWeights(t *testing.T) {
	if _, err := NewRanker(Weights{Similarity: -1, Overlap: 1}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
	if _, err := NewRanker(Weights{}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for zero weights, got %v", err)
	}
}

func TestRanker_Score(t *testing.T) {
	r, err := NewRanker(DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	c := candidate(0, "python", "python, sql", 0.5, true)
	want := 0.6*0.5 + 0.4*0.5
	if got := r.Score(c); math.Abs(got-want) > 1e-9 {
		t.Fatalf("blended score = %v, want %v", got, want)
	}

	c.HasSimilarity = false
	if got := r.Score(c); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("overlap-only score = %v, want 0.5", got)
	}
}

func TestRanker_SimilarityBreaksPercentTie(t *testing.T) {
	r, _ := NewRanker(DefaultWeights)
	ranking := r.Rank([]Candidate{
		candidate(0, "python", "python, sql", 0.2, true),
		candidate(1, "python", "python, excel", 0.9, true),
	})

	all := ranking.All()
	if all[0].Job.ID != 1 || all[1].Job.ID != 0 {
		t.Fatalf("expected similarity to order the tie, got %d then %d", all[0].Job.ID, all[1].Job.ID)
	}
	if all[0].Rank != 1 || all[1].Rank != 2 {
		t.Fatalf("unexpected ranks %d %d", all[0].Rank, all[1].Rank)
	}
}

func TestRanker_StableAndDeterministic(t *testing.T) {
	r, _ := NewRanker(DefaultWeights)
	cands := []Candidate{
		candidate(0, "go", "rust", 0, false),
		candidate(1, "go", "go", 0, false),
		candidate(2, "go", "java", 0, false),
		candidate(3, "go", "go, docker", 0, false),
		candidate(4, "go", "c", 0, false),
	}

	first := r.Rank(cands).All()
	wantOrder := []int{1, 3, 0, 2, 4}
	for i, id := range wantOrder {
		if first[i].Job.ID != id {
			t.Fatalf("position %d: got job %d, want %d", i, first[i].Job.ID, id)
		}
	}

	for n := 0; n < 5; n++ {
		again := r.Rank(cands).All()
		for i := range again {
			if again[i].Job.ID != first[i].Job.ID {
				t.Fatalf("ranking changed between runs")
			}
		}
	}
}

func TestRanking_TopAndFilter(t *testing.T) {
	r, _ := NewRanker(DefaultWeights)
	ranking := r.Rank([]Candidate{
		candidate(0, "go", "go", 0, false),
		candidate(1, "go", "go, sql", 0, false),
		candidate(2, "go", "sql", 0, false),
	})

	if got := len(ranking.Top(2)); got != 2 {
		t.Fatalf("Top(2) len = %d", got)
	}
	if got := len(ranking.Top(0)); got != 3 {
		t.Fatalf("Top(0) should return all, got %d", got)
	}
	if got := len(ranking.Top(10)); got != 3 {
		t.Fatalf("Top(10) len = %d", got)
	}

	filtered := ranking.Filter(50).All()
	if len(filtered) != 2 {
		t.Fatalf("Filter(50) len = %d", len(filtered))
	}
	if filtered[1].Rank != 2 {
		t.Fatalf("expected renumbered ranks, got %d", filtered[1].Rank)
	}
}
