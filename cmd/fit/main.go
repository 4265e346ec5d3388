package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"skill-match/internal/catalog"
	"skill-match/internal/config"
	"skill-match/internal/dataset"
	"skill-match/internal/domain/job"
	"skill-match/internal/infrastructure/artifact"
	"skill-match/internal/search"
)

// recordsSource serves an already loaded dataset to the catalog.
type recordsSource struct {
	name    string
	records []job.Record
}

func (s recordsSource) Name() string { return s.name }

func (s recordsSource) LoadJobs(context.Context) ([]job.Record, error) {
	return s.records, nil
}

func main() {
	paths := flag.String("dataset", "", "comma-separated CSV paths, first readable wins (default DATASET_PATHS)")
	out := flag.String("out", "", "vectorizer artifact path (default VECTORIZER_PATH)")
	weightingFlag := flag.String("weighting", "", "count or tfidf (default VECTORIZER_WEIGHTING)")
	sample := flag.Int("sample", 0, "keep this many rows; 0 samples only above -sample-threshold")
	sampleThreshold := flag.Int("sample-threshold", 1000, "datasets larger than this are sampled when -sample is 0; negative disables")
	sampleSize := flag.Int("sample-size", 500, "rows kept by automatic sampling")
	seed := flag.Int64("seed", 42, "sampling seed")
	reduced := flag.String("write-csv", "", "write the (sampled) dataset to this CSV so the server fits the same corpus")
	force := flag.Bool("force", false, "refit even when the artifact matches the dataset")
	top := flag.Int("top-skills", 10, "number of most common skills to print")
	flag.Parse()

	if *top < 0 {
		log.Fatalf("-top-skills must not be negative, got %d", *top)
	}

	_ = godotenv.Load()

	full, err := config.LoadCLI()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := full.Dataset
	if *paths != "" {
		cfg.Paths = strings.Split(*paths, ",")
	}
	if *out != "" {
		cfg.VectorizerPath = *out
	}
	if *weightingFlag != "" {
		cfg.VectorizerWeighting = *weightingFlag
	}
	weighting, err := search.ParseWeighting(cfg.VectorizerWeighting)
	if err != nil {
		log.Fatalf("invalid weighting: %v", err)
	}

	records, schema, path, err := dataset.LoadFirst(cfg.Paths)
	if err != nil {
		if errors.Is(err, dataset.ErrSkillColumnNotFound) {
			pterm.Error.Printfln("%s has no skills column", path)
			os.Exit(1)
		}
		log.Fatalf("failed to load dataset: %v", err)
	}
	pterm.Info.Printfln("loaded %s jobs from %s (skills column %q)",
		humanize.Comma(int64(len(records))), path, schema.SkillColumn())

	n := *sample
	if n <= 0 && *sampleThreshold >= 0 && len(records) > *sampleThreshold {
		n = *sampleSize
	}
	if n > 0 && n < len(records) {
		records = dataset.Sample(records, n, *seed)
		pterm.Info.Printfln("sampled %s jobs (seed %d)", humanize.Comma(int64(len(records))), *seed)
	}

	if *reduced != "" {
		if err := writeCSV(*reduced, records); err != nil {
			log.Fatalf("failed to write dataset: %v", err)
		}
		pterm.Success.Printfln("wrote %s jobs to %s", humanize.Comma(int64(len(records))), *reduced)
	}

	if cfg.VectorizerPath == "" {
		log.Fatalf("no vectorizer path: set VECTORIZER_PATH or -out")
	}
	if *force {
		if err := os.Remove(cfg.VectorizerPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("failed to remove artifact: %v", err)
		}
	}

	store := artifact.NewFileStore(cfg.VectorizerPath)
	logger := log.New(os.Stderr, "", log.LstdFlags)
	cat := catalog.New(recordsSource{name: path, records: records}, store, catalog.Options{
		Weighting: weighting,
		Workers:   cfg.Workers,
		Logger:    logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	snap, err := cat.Load(ctx)
	if err != nil {
		log.Fatalf("failed to fit vectorizer: %v", err)
	}

	if snap.Refit {
		if _, _, err := store.Load(); err != nil {
			log.Fatalf("vectorizer was fit but could not be persisted: %v", err)
		}
		pterm.Success.Printfln("fit %s vectorizer: %s terms over %s jobs, saved to %s",
			weighting, humanize.Comma(int64(snap.Vectorizer.VocabularySize())),
			humanize.Comma(int64(snap.Len())), store.Path())
	} else {
		pterm.Info.Printfln("%s is up to date (%s terms)", store.Path(),
			humanize.Comma(int64(snap.Vectorizer.VocabularySize())))
	}

	counts := snap.TopSkillCounts(*top)
	if len(counts) == 0 {
		return
	}
	rows := pterm.TableData{{"Skill", "Jobs", "Share"}}
	for _, c := range counts {
		share := 100 * float64(c.Count) / float64(snap.Len())
		rows = append(rows, []string{c.Skill, humanize.Comma(int64(c.Count)), fmt.Sprintf("%.1f%%", share)})
	}
	pterm.DefaultSection.Println("Most common skills")
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func writeCSV(path string, records []job.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
