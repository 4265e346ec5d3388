package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"skill-match/internal/config"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/database/seeder"
	"skill-match/internal/dataset"
	"skill-match/migrations"
)

func main() {
	paths := flag.String("dataset", "", "comma-separated CSV paths, first readable wins (default DATASET_PATHS)")
	batch := flag.Int("batch", 500, "rows per COPY batch")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply migrations before importing")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadCLI()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *paths != "" {
		cfg.Dataset.Paths = strings.Split(*paths, ",")
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if !*skipMigrations {
		r := migration.Runner{FS: migrations.FS, Logger: logger}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
	if *migrateOnly {
		return
	}

	records, _, path, err := dataset.LoadFirst(cfg.Dataset.Paths)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	logger.Printf("[Seed] dataset path=%s jobs=%s", path, humanize.Comma(int64(len(records))))

	bar := pb.StartNew(len(records))
	s := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.JobsSeeder{
			Records:   records,
			BatchSize: *batch,
			Progress:  func(n int) { bar.Add(n) },
		},
	}}
	err = s.Run(ctx, db)
	bar.Finish()
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	logger.Printf("[Seed] imported jobs=%s into postgres", humanize.Comma(int64(len(records))))
}
