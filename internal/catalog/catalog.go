package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/infrastructure/artifact"
	"skill-match/internal/search"
)

var ErrNotLoaded = errors.New("catalog not loaded")

// Source supplies the job dataset.
type Source interface {
	Name() string
	LoadJobs(ctx context.Context) ([]job.Record, error)
}

// ArtifactStore persists the fitted vectorizer between runs.
type ArtifactStore interface {
	Load() (artifact.Artifact, *search.Vectorizer, error)
	Save(a artifact.Artifact) error
}

type Options struct {
	Weighting search.Weighting
	// Workers bounds the goroutines that vectorize large datasets. Zero uses
	// GOMAXPROCS.
	Workers int
	Logger  *log.Logger
	Now     func() time.Time
}

// Catalog owns the current Snapshot. Readers call Current and never block;
// Load and Reload build a fresh snapshot and publish it atomically.
type Catalog struct {
	source    Source
	store     ArtifactStore
	weighting search.Weighting
	workers   int
	logger    *log.Logger
	now       func() time.Time

	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

func New(source Source, store ArtifactStore, opts Options) *Catalog {
	if opts.Weighting == "" {
		opts.Weighting = search.WeightingCount
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Catalog{
		source:    source,
		store:     store,
		weighting: opts.Weighting,
		workers:   opts.Workers,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// Current returns the published snapshot, or nil before the first Load.
func (c *Catalog) Current() *Snapshot {
	return c.current.Load()
}

func (c *Catalog) Load(ctx context.Context) (*Snapshot, error) {
	return c.Reload(ctx)
}

// Reload rebuilds the snapshot from the source. On error the previous snapshot
// stays published.
func (c *Catalog) Reload(ctx context.Context) (*Snapshot, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	start := c.now()
	jobs, err := c.source.LoadJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jobs from %s: %w", c.source.Name(), err)
	}

	fp := Fingerprint(jobs, c.weighting)
	v, refit := c.vectorizer(jobs, fp)

	snap, err := newSnapshot(ctx, jobs, v, snapshotMeta{
		fingerprint: fp,
		source:      c.source.Name(),
		refit:       refit,
		loadedAt:    c.now(),
		workers:     c.workers,
	})
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	c.current.Store(snap)

	c.logf("[Catalog] loaded source=%s jobs=%d vocabulary=%d refit=%t fingerprint=%s duration_ms=%d",
		snap.Source, snap.Len(), v.VocabularySize(), refit, shortFingerprint(fp), c.now().Sub(start).Milliseconds())
	return snap, nil
}

// vectorizer restores the persisted vectorizer when it was fit on the same
// corpus, otherwise fits a new one and tries to persist it.
func (c *Catalog) vectorizer(jobs []job.Record, fp string) (*search.Vectorizer, bool) {
	if c.store != nil {
		a, v, err := c.store.Load()
		switch {
		case err == nil && a.Fingerprint == fp && v.Weighting() == c.weighting:
			return v, false
		case err == nil:
			c.logf("[Catalog] vectorizer refit reason=fingerprint_mismatch")
		case errors.Is(err, artifact.ErrNotFound):
			c.logf("[Catalog] vectorizer refit reason=artifact_missing")
		default:
			c.logf("[Catalog] vectorizer refit reason=artifact_unreadable err=%v", err)
		}
	}

	corpus := make([]string, len(jobs))
	for i, j := range jobs {
		corpus[i] = j.SkillText
	}
	v := search.Fit(corpus, c.weighting)

	if c.store != nil {
		a := artifact.Artifact{
			Fingerprint: fp,
			Documents:   len(jobs),
			FittedAt:    c.now().UTC(),
			State:       v.State(),
		}
		if err := c.store.Save(a); err != nil {
			c.logf("[Catalog] vectorizer persist failed err=%v", err)
		}
	}
	return v, true
}

func (c *Catalog) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// Fingerprint identifies the corpus a vectorizer is fit on.
func Fingerprint(jobs []job.Record, w search.Weighting) string {
	h := sha256.New()
	h.Write([]byte(w))
	h.Write([]byte{0})
	for _, j := range jobs {
		h.Write([]byte(j.SkillText))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
