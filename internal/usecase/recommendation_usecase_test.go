package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/job"
	"skill-match/internal/resume"
	"skill-match/internal/search"
)

func newTestRecommender(t *testing.T, cat CatalogReader, opts ScoringOptions, cache SearchCache) *Recommender {
	t.Helper()
	uc, err := NewRecommender(cat, opts, cache, 0, nil)
	if err != nil {
		t.Fatalf("new recommender: %v", err)
	}
	return uc
}

func jobIDs(jobs []RecommendedJob) []int {
	out := make([]int, len(jobs))
	for i, j := range jobs {
		out[i] = j.JobID
	}
	return out
}

func TestRecommend_RanksDummyDataset(t *testing.T) {
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), nil)

	rec, err := uc.Recommend(context.Background(), RecommendParams{Raw: "Python, SQL"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := jobIDs(rec.Jobs); !reflect.DeepEqual(got, []int{3, 0, 2, 1, 4}) {
		t.Fatalf("order = %v", got)
	}
	if !reflect.DeepEqual(rec.Query, []string{"python", "sql"}) {
		t.Fatalf("query = %v", rec.Query)
	}
	if rec.Total != 5 || rec.Scored != 5 || !rec.SimilarityUsed {
		t.Fatalf("unexpected totals %+v", rec)
	}

	top := rec.Jobs[0]
	if top.Rank != 1 || top.MatchPercent != 66.67 {
		t.Fatalf("top = %+v", top)
	}
	if !reflect.DeepEqual(top.ExtraSkills, []string{"machine learning"}) {
		t.Fatalf("extra = %v", top.ExtraSkills)
	}
	for i := 1; i < len(rec.Jobs); i++ {
		if rec.Jobs[i].FinalScore > rec.Jobs[i-1].FinalScore {
			t.Fatalf("scores not descending at %d", i)
		}
	}

	ins := rec.Insights
	if ins.MatchedTotal != 4 || ins.UnmatchedTotal != 6 {
		t.Fatalf("insight totals = %d/%d", ins.MatchedTotal, ins.UnmatchedTotal)
	}
	wantFreq := []search.SkillCount{{Skill: "python", Count: 2}, {Skill: "sql", Count: 2}}
	if !reflect.DeepEqual(ins.MatchedFrequency, wantFreq) {
		t.Fatalf("frequency = %+v", ins.MatchedFrequency)
	}
	if ins.Best == nil || ins.Best.JobID != 3 || ins.Best.Matched != 2 || ins.Best.Missing != 1 {
		t.Fatalf("best = %+v", ins.Best)
	}
}

func TestRecommend_Scenario(t *testing.T) {
	jobs := []job.Record{{ID: 0, Title: "Analyst", RequiredSkills: job.SplitSkills("Python, SQL, Excel"), SkillText: "Python, SQL, Excel"}}
	uc := newTestRecommender(t, loadedCatalog(t, jobs), defaultScoring(), nil)

	rec, err := uc.Recommend(context.Background(), RecommendParams{Skills: []string{"python", "sql"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := rec.Jobs[0]
	if got.MatchPercent != 66.67 {
		t.Fatalf("percent = %v", got.MatchPercent)
	}
	if !reflect.DeepEqual(got.MatchedSkills, []string{"python", "sql"}) || !reflect.DeepEqual(got.ExtraSkills, []string{"excel"}) {
		t.Fatalf("skills = %+v", got)
	}
	if len(got.UnmatchedSkills) != 0 {
		t.Fatalf("unmatched = %v", got.UnmatchedSkills)
	}
}

func TestRecommend_EqualPercentOrderedBySimilarity(t *testing.T) {
	mk := func(id int, s string) job.Record {
		return job.Record{ID: id, RequiredSkills: job.SplitSkills(s), SkillText: s}
	}
	jobs := []job.Record{
		mk(0, "Python, Java, Problem Solving"),
		mk(1, "Excel, SQL, Statistics"),
	}
	uc := newTestRecommender(t, loadedCatalog(t, jobs), defaultScoring(), nil)

	rec, err := uc.Recommend(context.Background(), RecommendParams{Raw: "python, sql"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Jobs[0].MatchPercent != rec.Jobs[1].MatchPercent {
		t.Fatalf("expected equal percents")
	}
	if got := jobIDs(rec.Jobs); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Fatalf("order = %v, want higher similarity first", got)
	}

	off := false
	rec, err = uc.Recommend(context.Background(), RecommendParams{Raw: "python, sql", Similarity: &off})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := jobIDs(rec.Jobs); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("order without similarity = %v, want dataset order", got)
	}
	if rec.SimilarityUsed || rec.Jobs[0].HasSimilarity {
		t.Fatalf("similarity should be off")
	}
}

func TestRecommend_LimitAllAndMinPercent(t *testing.T) {
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), nil)
	ctx := context.Background()

	rec, err := uc.Recommend(ctx, RecommendParams{Raw: "python, sql", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Jobs) != 2 || rec.Total != 5 {
		t.Fatalf("jobs=%d total=%d", len(rec.Jobs), rec.Total)
	}

	rec, err = uc.Recommend(ctx, RecommendParams{Raw: "python, sql", Limit: 2, All: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Jobs) != 5 {
		t.Fatalf("all should return every job, got %d", len(rec.Jobs))
	}

	rec, err = uc.Recommend(ctx, RecommendParams{Raw: "python, sql", MinPercent: 50})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := jobIDs(rec.Jobs); !reflect.DeepEqual(got, []int{3}) || rec.Total != 1 {
		t.Fatalf("filtered = %v total=%d", got, rec.Total)
	}
}

func TestRecommend_Errors(t *testing.T) {
	ctx := context.Background()

	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), nil)
	for _, raw := range []string{"", "  ,  , ", "nan"} {
		if _, err := uc.Recommend(ctx, RecommendParams{Raw: raw}); !errors.Is(err, ErrNoSkillsProvided) {
			t.Fatalf("raw %q: expected ErrNoSkillsProvided, got %v", raw, err)
		}
	}
	if _, err := uc.Recommend(ctx, RecommendParams{Raw: "go", Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Recommend(ctx, RecommendParams{Raw: "go", MinPercent: 101}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	empty := newTestRecommender(t, loadedCatalog(t, nil), defaultScoring(), nil)
	if _, err := empty.Recommend(ctx, RecommendParams{Raw: "go"}); !errors.Is(err, ErrNoJobsFound) {
		t.Fatalf("expected ErrNoJobsFound, got %v", err)
	}

	unloaded := catalog.New(&staticSource{}, nil, catalog.Options{})
	notReady := newTestRecommender(t, unloaded, defaultScoring(), nil)
	if _, err := notReady.Recommend(ctx, RecommendParams{Raw: "go"}); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}

	if _, err := NewRecommender(unloaded, ScoringOptions{}, nil, 0, nil); !errors.Is(err, search.ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestRecommend_RejectsNonFiniteMinPercent(t *testing.T) {
	cache := newMockCache()
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), cache)
	ctx := context.Background()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := uc.Recommend(ctx, RecommendParams{Raw: "finance, tally", MinPercent: v}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("min percent %v: expected ErrInvalidInput, got %v", v, err)
		}
	}
	if cache.sets != 0 || cache.gets != 0 {
		t.Fatalf("rejected queries must not touch the cache, sets=%d gets=%d", cache.sets, cache.gets)
	}
}

func TestRecommend_CacheSeparatesQueries(t *testing.T) {
	cache := newMockCache()
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), cache)
	ctx := context.Background()

	if _, err := uc.Recommend(ctx, RecommendParams{Raw: "finance, tally", MinPercent: 10}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, err := uc.Recommend(ctx, RecommendParams{Raw: "python", MinPercent: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(rec.Query, []string{"python"}) {
		t.Fatalf("query = %v, served another query's result", rec.Query)
	}
	if cache.sets != 2 {
		t.Fatalf("expected two cache entries, got %d", cache.sets)
	}
}

func TestRecommend_UsesCache(t *testing.T) {
	cache := newMockCache()
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), cache)
	ctx := context.Background()

	first, err := uc.Recommend(ctx, RecommendParams{Raw: "Python, SQL"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.Recommend(ctx, RecommendParams{Skills: []string{"sql", "python"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.sets != 1 || cache.gets != 2 {
		t.Fatalf("expected one miss then one hit, sets=%d gets=%d", cache.sets, cache.gets)
	}
	if !reflect.DeepEqual(jobIDs(first.Jobs), jobIDs(second.Jobs)) || second.Jobs[0].MatchPercent != 66.67 {
		t.Fatalf("cached result differs: %+v", second.Jobs)
	}
}

func TestRecommendFromResume(t *testing.T) {
	uc := newTestRecommender(t, loadedCatalog(t, dummyJobs()), defaultScoring(), nil)
	ctx := context.Background()

	rec, err := uc.RecommendFromResume(ctx, ResumeParams{
		ContentType: "text/plain",
		Data:        []byte("Analyst with Python and SQL experience. Familiar with Tally."),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(rec.ExtractedSkills, []string{"python", "sql", "tally"}) {
		t.Fatalf("extracted = %v", rec.ExtractedSkills)
	}
	if len(rec.Jobs) == 0 || rec.Jobs[0].JobID != 3 {
		t.Fatalf("unexpected top job %+v", rec.Jobs)
	}

	_, err = uc.RecommendFromResume(ctx, ResumeParams{ContentType: "application/pdf", Data: []byte("%PDF")})
	if !errors.Is(err, ErrDocumentUnreadable) || !errors.Is(err, resume.ErrUnsupportedDocument) {
		t.Fatalf("expected unreadable document error, got %v", err)
	}

	_, err = uc.RecommendFromResume(ctx, ResumeParams{ContentType: "text/plain", Data: []byte("hello world")})
	if !errors.Is(err, ErrNoSkillsProvided) {
		t.Fatalf("expected ErrNoSkillsProvided, got %v", err)
	}
}
