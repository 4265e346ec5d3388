package catalog

import (
	"context"
	"sort"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/skill"
	"skill-match/internal/pkg/workerpool"
	"skill-match/internal/search"
)

// Snapshot is an immutable view of the job dataset and its fitted vectorizer.
// Nothing mutates a Snapshot after it is published.
type Snapshot struct {
	Jobs        []job.Record
	JobSkills   []skill.Set
	Vectorizer  *search.Vectorizer
	JobVectors  []search.Vector
	Fingerprint string
	LoadedAt    time.Time
	Source      string
	// Refit is true when the vectorizer was fit during this load rather than
	// restored from the artifact.
	Refit bool

	byID        map[int]int
	knownSkills []string
}

// Datasets smaller than parallelMinJobs are vectorized on the calling
// goroutine.
const (
	parallelMinJobs = 4096
	vectorizeChunk  = 1024
)

type snapshotMeta struct {
	fingerprint string
	source      string
	refit       bool
	loadedAt    time.Time
	workers     int
}

func newSnapshot(ctx context.Context, jobs []job.Record, v *search.Vectorizer, meta snapshotMeta) (*Snapshot, error) {
	s := &Snapshot{
		Jobs:        jobs,
		JobSkills:   make([]skill.Set, len(jobs)),
		JobVectors:  make([]search.Vector, len(jobs)),
		Vectorizer:  v,
		Fingerprint: meta.fingerprint,
		LoadedAt:    meta.loadedAt,
		Source:      meta.source,
		Refit:       meta.refit,
		byID:        make(map[int]int, len(jobs)),
	}

	workers := meta.workers
	if len(jobs) < parallelMinJobs {
		workers = 1
	}
	err := workerpool.Chunks(ctx, workers, len(jobs), vectorizeChunk, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			s.JobSkills[i] = jobs[i].Skills()
			s.JobVectors[i] = v.Transform(jobs[i].SkillText)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	all := skill.Set{}
	for i, j := range jobs {
		s.byID[j.ID] = i
		for tok := range s.JobSkills[i] {
			all[tok] = struct{}{}
		}
	}
	s.knownSkills = all.Sorted()
	return s, nil
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Jobs)
}

func (s *Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// IndexOf returns the dataset position of the job with the given ID.
func (s *Snapshot) IndexOf(id int) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.byID[id]
	return i, ok
}

func (s *Snapshot) Job(id int) (job.Record, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return job.Record{}, false
	}
	return s.Jobs[i], true
}

// KnownSkills lists every normalized skill that appears in the dataset.
func (s *Snapshot) KnownSkills() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.knownSkills))
	copy(out, s.knownSkills)
	return out
}

// Page returns jobs in dataset order starting at offset.
func (s *Snapshot) Page(limit, offset int) []job.Record {
	n := s.Len()
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return []job.Record{}
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	out := make([]job.Record, end-offset)
	copy(out, s.Jobs[offset:end])
	return out
}

// SortedSkillCounts returns how many jobs require each skill, most common
// first.
func (s *Snapshot) SortedSkillCounts() []search.SkillCount {
	counts := map[string]int{}
	for _, set := range s.JobSkills {
		for tok := range set {
			counts[tok]++
		}
	}
	out := make([]search.SkillCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, search.SkillCount{Skill: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

// TopSkillCounts returns at most n of the most common skills. n <= 0
// returns none.
func (s *Snapshot) TopSkillCounts(n int) []search.SkillCount {
	counts := s.SortedSkillCounts()
	if n <= 0 {
		return counts[:0]
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
