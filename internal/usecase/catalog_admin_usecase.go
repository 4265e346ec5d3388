package usecase

import (
	"context"
	"log"
	"time"

	"skill-match/internal/catalog"
)

type CatalogReloader interface {
	Current() *catalog.Snapshot
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}

type ReloadNotifier interface {
	NotifyCatalogReloaded(jobs int, fingerprint, source string)
}

type CatalogStatus struct {
	Loaded         bool
	Source         string
	Jobs           int
	VocabularySize int
	Weighting      string
	Fingerprint    string
	Refit          bool
	LoadedAt       time.Time
}

type CatalogAdminUsecase interface {
	Status(ctx context.Context) CatalogStatus
	Reload(ctx context.Context) (CatalogStatus, error)
}

type CatalogAdmin struct {
	catalog  CatalogReloader
	cache    SearchCache
	notifier ReloadNotifier
	logger   *log.Logger
}

func NewCatalogAdminUsecase(cat CatalogReloader, cache SearchCache, notifier ReloadNotifier, logger *log.Logger) *CatalogAdmin {
	return &CatalogAdmin{catalog: cat, cache: cache, notifier: notifier, logger: logger}
}

func (u *CatalogAdmin) Status(ctx context.Context) CatalogStatus {
	return statusOf(u.catalog.Current())
}

// Reload rebuilds the catalog, drops cached recommendations and notifies
// subscribers. A failed reload leaves the previous catalog serving.
func (u *CatalogAdmin) Reload(ctx context.Context) (CatalogStatus, error) {
	snap, err := u.catalog.Reload(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Catalog] reload failed err=%v", err)
		}
		return CatalogStatus{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, RecommendationCachePattern()); err != nil && u.logger != nil {
			u.logger.Printf("[Catalog] cache invalidation failed err=%v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyCatalogReloaded(snap.Len(), snap.Fingerprint, snap.Source)
	}
	return statusOf(snap), nil
}

func statusOf(snap *catalog.Snapshot) CatalogStatus {
	if snap == nil {
		return CatalogStatus{}
	}
	return CatalogStatus{
		Loaded:         true,
		Source:         snap.Source,
		Jobs:           snap.Len(),
		VocabularySize: snap.Vectorizer.VocabularySize(),
		Weighting:      string(snap.Vectorizer.Weighting()),
		Fingerprint:    snap.Fingerprint,
		Refit:          snap.Refit,
		LoadedAt:       snap.LoadedAt,
	}
}
