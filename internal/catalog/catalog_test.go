package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"skill-match/internal/domain/job"
	"skill-match/internal/infrastructure/artifact"
	"skill-match/internal/search"
)

type fakeSource struct {
	jobs  []job.Record
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) LoadJobs(ctx context.Context) ([]job.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]job.Record, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

type memStore struct {
	saved   *artifact.Artifact
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() (artifact.Artifact, *search.Vectorizer, error) {
	if m.loadErr != nil {
		return artifact.Artifact{}, nil, m.loadErr
	}
	if m.saved == nil {
		return artifact.Artifact{}, nil, artifact.ErrNotFound
	}
	v, err := search.NewVectorizerFromState(m.saved.State)
	if err != nil {
		return artifact.Artifact{}, nil, err
	}
	return *m.saved, v, nil
}

func (m *memStore) Save(a artifact.Artifact) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &a
	return nil
}

func testJobs() []job.Record {
	mk := func(id int, title, skills string) job.Record {
		return job.Record{ID: id, Title: title, RequiredSkills: job.SplitSkills(skills), SkillText: skills}
	}
	return []job.Record{
		mk(0, "Data Analyst", "Excel, SQL, Statistics"),
		mk(1, "Financial Analyst", "Finance, Excel, Accounting"),
		mk(2, "Backend Engineer", "Go, SQL, Docker"),
	}
}

func TestCatalog_LoadFitsAndPersists(t *testing.T) {
	src := &fakeSource{jobs: testJobs()}
	store := &memStore{}
	c := New(src, store, Options{})

	if c.Current() != nil {
		t.Fatalf("expected nil snapshot before load")
	}

	snap, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !snap.Refit {
		t.Fatalf("expected refit when no artifact exists")
	}
	if store.saves != 1 || store.saved.Fingerprint != snap.Fingerprint {
		t.Fatalf("artifact not persisted: %+v", store.saved)
	}
	if snap.Len() != 3 || len(snap.JobVectors) != 3 || len(snap.JobSkills) != 3 {
		t.Fatalf("unexpected snapshot sizes")
	}
	if c.Current() != snap {
		t.Fatalf("snapshot not published")
	}

	want := []string{"accounting", "docker", "excel", "finance", "go", "sql", "statistics"}
	if got := snap.KnownSkills(); !reflect.DeepEqual(got, want) {
		t.Fatalf("known skills = %v", got)
	}
}

func TestCatalog_ReusesMatchingArtifact(t *testing.T) {
	src := &fakeSource{jobs: testJobs()}
	store := &memStore{}
	if _, err := New(src, store, Options{}).Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	snap, err := New(src, store, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if snap.Refit {
		t.Fatalf("expected artifact reuse")
	}
	if store.saves != 1 {
		t.Fatalf("unexpected re-persist, saves=%d", store.saves)
	}
}

func TestCatalog_RefitsOnMismatchOrCorruption(t *testing.T) {
	src := &fakeSource{jobs: testJobs()}
	store := &memStore{}
	if _, err := New(src, store, Options{}).Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	src.jobs = append(src.jobs, job.Record{ID: 3, Title: "ML Engineer", RequiredSkills: []string{"Python"}, SkillText: "Python"})
	snap, err := New(src, store, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !snap.Refit || store.saves != 2 {
		t.Fatalf("expected refit on corpus change, refit=%t saves=%d", snap.Refit, store.saves)
	}

	snap, err = New(src, store, Options{Weighting: search.WeightingTFIDF}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !snap.Refit || snap.Vectorizer.Weighting() != search.WeightingTFIDF {
		t.Fatalf("expected refit on weighting change")
	}

	store.loadErr = artifact.ErrCorrupt
	store.saveErr = errors.New("disk full")
	snap, err = New(src, store, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt artifact or failed persist must not fail load: %v", err)
	}
	if !snap.Refit {
		t.Fatalf("expected refit on corrupt artifact")
	}
}

func TestCatalog_ReloadKeepsPreviousOnError(t *testing.T) {
	src := &fakeSource{jobs: testJobs()}
	c := New(src, nil, Options{})

	first, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	src.err = errors.New("db down")
	if _, err := c.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error")
	}
	if c.Current() != first {
		t.Fatalf("previous snapshot should stay published")
	}
}

func TestCatalog_EmptyDataset(t *testing.T) {
	c := New(&fakeSource{}, nil, Options{})
	snap, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("empty dataset should load: %v", err)
	}
	if !snap.IsEmpty() || snap.Vectorizer.VocabularySize() != 0 {
		t.Fatalf("expected empty snapshot")
	}
}

func TestCatalog_FileStoreRoundTrip(t *testing.T) {
	store := artifact.NewFileStore(filepath.Join(t.TempDir(), "vectorizer.json"))
	src := &fakeSource{jobs: testJobs()}

	if _, err := New(src, store, Options{}).Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	snap, err := New(src, store, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if snap.Refit {
		t.Fatalf("expected artifact from disk to be reused")
	}
}

func TestSnapshot_LookupAndPage(t *testing.T) {
	snap, err := New(&fakeSource{jobs: testJobs()}, nil, Options{}).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if j, ok := snap.Job(2); !ok || j.Title != "Backend Engineer" {
		t.Fatalf("job lookup failed: %+v", j)
	}
	if _, ok := snap.Job(99); ok {
		t.Fatalf("unexpected job for unknown id")
	}
	if got := snap.Page(2, 1); len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("page = %+v", got)
	}
	if got := snap.Page(10, 5); len(got) != 0 {
		t.Fatalf("page past end should be empty")
	}

	counts := snap.SortedSkillCounts()
	if counts[0].Skill != "excel" || counts[0].Count != 2 || counts[1].Skill != "sql" {
		t.Fatalf("skill counts = %+v", counts)
	}
	if got := snap.TopSkillCounts(1); len(got) != 1 || got[0].Skill != "excel" {
		t.Fatalf("top 1 = %+v", got)
	}
	if got := snap.TopSkillCounts(len(counts) + 5); len(got) != len(counts) {
		t.Fatalf("top past end = %d, want %d", len(got), len(counts))
	}
	for _, n := range []int{0, -1} {
		if got := snap.TopSkillCounts(n); len(got) != 0 {
			t.Fatalf("top %d = %+v, want none", n, got)
		}
	}
}

func TestCatalog_ParallelSnapshotMatchesSerial(t *testing.T) {
	base := testJobs()
	jobs := make([]job.Record, 0, parallelMinJobs+500)
	for i := 0; i < parallelMinJobs+500; i++ {
		j := base[i%len(base)]
		j.ID = i
		jobs = append(jobs, j)
	}
	src := &fakeSource{jobs: jobs}

	serial, err := New(src, nil, Options{Workers: 1}).Load(context.Background())
	if err != nil {
		t.Fatalf("serial load: %v", err)
	}
	parallel, err := New(src, nil, Options{Workers: 4}).Load(context.Background())
	if err != nil {
		t.Fatalf("parallel load: %v", err)
	}

	if !reflect.DeepEqual(serial.JobVectors, parallel.JobVectors) {
		t.Fatalf("parallel vectors differ from serial")
	}
	if !reflect.DeepEqual(serial.KnownSkills(), parallel.KnownSkills()) {
		t.Fatalf("known skills differ")
	}
	if idx, ok := parallel.IndexOf(parallelMinJobs + 10); !ok || idx != parallelMinJobs+10 {
		t.Fatalf("IndexOf = %d, %v", idx, ok)
	}
}

func TestCatalog_ReloadCanceled(t *testing.T) {
	base := testJobs()
	jobs := make([]job.Record, parallelMinJobs)
	for i := range jobs {
		jobs[i] = base[i%len(base)]
		jobs[i].ID = i
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(&fakeSource{jobs: jobs}, nil, Options{Workers: 2})
	if _, err := c.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if c.Current() != nil {
		t.Fatalf("canceled load must not publish a snapshot")
	}
}
