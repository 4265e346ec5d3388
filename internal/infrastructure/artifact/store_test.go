package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"skill-match/internal/search"
)

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "vectorizer.json")
	store := NewFileStore(path)

	v := search.Fit([]string{"python sql", "excel finance"}, search.WeightingTFIDF)
	in := Artifact{
		Fingerprint: "abc",
		Documents:   2,
		FittedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		State:       v.State(),
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, restored, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Fingerprint != "abc" || out.Documents != 2 || !out.FittedAt.Equal(in.FittedAt) {
		t.Fatalf("unexpected artifact %+v", out)
	}
	if !reflect.DeepEqual(restored.Terms(), v.Terms()) {
		t.Fatalf("terms = %v, want %v", restored.Terms(), v.Terms())
	}
	if restored.Weighting() != search.WeightingTFIDF {
		t.Fatalf("weighting = %s", restored.Weighting())
	}
}

func TestFileStore_NotFound(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	if _, _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	cases := map[string]string{
		"not json":       "{{{",
		"no fingerprint": `{"state":{"weighting":"count","vocabulary":{}}}`,
		"bad vocabulary": `{"fingerprint":"x","state":{"weighting":"count","vocabulary":{"a":5}}}`,
		"bad weighting":  `{"fingerprint":"x","state":{"weighting":"bm25","vocabulary":{}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vectorizer.json")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, _, err := NewFileStore(path).Load(); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}
