package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/resume"
	"skill-match/internal/ui"
	"skill-match/internal/usecase"
)

func main() {
	skills := flag.String("skills", "", "comma-separated skills, e.g. \"python, sql\"")
	resumePath := flag.String("resume", "", "path to a .txt, .md or .html resume")
	top := flag.Int("top", 0, "number of jobs to show (default SCORING_DEFAULT_TOP_K)")
	all := flag.Bool("all", false, "show every matching job")
	minPercent := flag.Float64("min-percent", 0, "hide jobs below this match percent")
	noSimilarity := flag.Bool("no-similarity", false, "rank by skill overlap only")
	dataset := flag.String("dataset", "", "CSV dataset path (overrides DATASET_PATHS)")
	verbose := flag.Bool("v", false, "log catalog loading")
	flag.Parse()

	if strings.TrimSpace(*skills) == "" && *resumePath == "" {
		pterm.Error.Println("one of -skills or -resume is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadCLI()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *dataset != "" {
		cfg.Dataset.Source = config.DatasetSourceCSV
		cfg.Dataset.Paths = []string{*dataset}
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	c, err := app.Assemble(cfg, logger, db, nil)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	spinner, _ := pterm.DefaultSpinner.Start("Loading job catalog")
	snap, err := c.Catalog.Load(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		os.Exit(1)
	}
	if spinner != nil {
		spinner.Success("Loaded ", snap.Len(), " jobs from ", snap.Source)
	}

	var similarity *bool
	if *noSimilarity {
		off := false
		similarity = &off
	}

	var rec usecase.Recommendation
	if *resumePath != "" {
		data, err := os.ReadFile(*resumePath)
		if err != nil {
			log.Fatalf("failed to read resume: %v", err)
		}
		out, err := c.Recommender.RecommendFromResume(ctx, usecase.ResumeParams{
			ContentType: resume.ContentTypeForName(*resumePath),
			Data:        data,
			Limit:       *top,
			All:         *all,
		})
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		pterm.Info.Printfln("skills found in resume: %s", strings.Join(out.ExtractedSkills, ", "))
		rec = out.Recommendation
	} else {
		rec, err = c.Recommender.Recommend(ctx, usecase.RecommendParams{
			Raw:        *skills,
			Limit:      *top,
			All:        *all,
			MinPercent: *minPercent,
			Similarity: similarity,
		})
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	if err := ui.RenderRecommendation(rec); err != nil {
		log.Fatalf("render: %v", err)
	}
}
