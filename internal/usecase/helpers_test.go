package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/job"
	"skill-match/internal/search"
)

type staticSource struct {
	jobs []job.Record
	err  error
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) LoadJobs(context.Context) ([]job.Record, error) {
	return s.jobs, s.err
}

func dummyJobs() []job.Record {
	rows := []struct{ title, company, location, skills string }{
		{"Data Analyst", "ABC Corp", "Delhi", "Excel, SQL, Statistics"},
		{"Financial Analyst", "XYZ Ltd", "Mumbai", "Finance, Excel, Accounting"},
		{"Software Developer", "TechSoft", "Bangalore", "Python, Java, Problem Solving"},
		{"ML Engineer", "AI Labs", "Remote", "Python, Machine Learning, SQL"},
		{"Accountant", "FinCorp", "Delhi", "Finance, Tally, Excel"},
	}
	out := make([]job.Record, len(rows))
	for i, r := range rows {
		out[i] = job.Record{
			ID:             i,
			Title:          r.title,
			Company:        r.company,
			Location:       r.location,
			RequiredSkills: job.SplitSkills(r.skills),
			SkillText:      r.skills,
		}
	}
	return out
}

func loadedCatalog(t *testing.T, jobs []job.Record) *catalog.Catalog {
	t.Helper()
	c := catalog.New(&staticSource{jobs: jobs}, nil, catalog.Options{})
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func defaultScoring() ScoringOptions {
	return ScoringOptions{Weights: search.DefaultWeights, SimilarityEnabled: true, DefaultTopK: 10}
}

type mockCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	gets     int
	sets     int
	patterns []string
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}
