package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skill-match/internal/catalog"
	"skill-match/internal/config"
	"skill-match/internal/database"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/dataset"
	"skill-match/internal/infrastructure/artifact"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/infrastructure/persistence/postgres"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/search"
	"skill-match/internal/usecase"
	ucauth "skill-match/internal/usecase/auth"
	"skill-match/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB      database.DB
	Cache   *cache.Redis
	Catalog *catalog.Catalog
	Source  catalog.Source
	Hub     *ws.Hub
	JWT     jwt.Service

	Recommender  *usecase.Recommender
	JobCatalog   *usecase.JobCatalog
	CatalogAdmin *usecase.CatalogAdmin
	Auth         *ucauth.Service
}

// NewContainer opens external connections and wires every usecase. The
// catalog is built but not loaded.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	c, err := Assemble(cfg, logger, db, redis)
	if err != nil {
		_ = (&Container{DB: db, Cache: redis}).Close()
		return nil, err
	}
	return c, nil
}

// OpenDatabase connects to Postgres when the dataset lives there and
// returns nil otherwise.
func OpenDatabase(ctx context.Context, cfg config.Config) (database.DB, error) {
	if cfg.Dataset.Source != config.DatasetSourcePostgres {
		return nil, nil
	}
	dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(dctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Assemble wires the container around already opened connections. db and
// redis may be nil.
func Assemble(cfg config.Config, logger *log.Logger, db database.DB, redis *cache.Redis) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, DB: db, Cache: redis}

	src, err := NewSource(cfg.Dataset, db)
	if err != nil {
		return nil, err
	}
	c.Source = src
	weighting, err := search.ParseWeighting(cfg.Dataset.VectorizerWeighting)
	if err != nil {
		return nil, err
	}

	var store catalog.ArtifactStore
	if cfg.Dataset.VectorizerPath != "" {
		store = artifact.NewFileStore(cfg.Dataset.VectorizerPath)
	}
	c.Catalog = catalog.New(src, store, catalog.Options{
		Weighting: weighting,
		Workers:   cfg.Dataset.Workers,
		Logger:    logger,
	})

	if err := c.wire(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewSource picks the job dataset source named by cfg.
func NewSource(cfg config.DatasetConfig, db database.DB) (catalog.Source, error) {
	switch cfg.Source {
	case config.DatasetSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres dataset source requires a database connection")
		}
		return postgres.NewJobRepository(db), nil
	case config.DatasetSourceCSV, "":
		return dataset.CSVSource{Paths: cfg.Paths}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// wire builds the usecases from the catalog, cache and config.
func (c *Container) wire() error {
	cfg := c.Config
	scoring := usecase.ScoringOptions{
		Weights: search.Weights{
			Similarity: cfg.Scoring.SimilarityWeight,
			Overlap:    cfg.Scoring.OverlapWeight,
		},
		SimilarityEnabled: cfg.Scoring.SimilarityEnabled,
		DefaultTopK:       cfg.Scoring.DefaultTopK,
	}

	var searchCache usecase.SearchCache
	if c.Cache != nil {
		searchCache = c.Cache
	}

	rec, err := usecase.NewRecommender(c.Catalog, scoring, searchCache, cfg.Redis.TTL, c.Logger)
	if err != nil {
		return err
	}
	jobs, err := usecase.NewJobCatalogUsecase(c.Catalog, scoring)
	if err != nil {
		return err
	}

	if c.Hub == nil {
		c.Hub = ws.NewHub(c.Logger)
	}
	if cfg.Auth.AdminEnabled() {
		c.JWT = jwt.NewHMACService(cfg.Auth.JWTAccessSecret, cfg.Auth.JWTAccessExpires)
	}

	c.Recommender = rec
	c.JobCatalog = jobs
	c.CatalogAdmin = usecase.NewCatalogAdminUsecase(c.Catalog, searchCache, c.Hub, c.Logger)
	c.Auth = ucauth.NewService(cfg.Auth.AdminPasswordHash, c.JWT)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
