package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"skill-match/internal/domain/job"
)

var ErrNoDatasetFile = errors.New("no dataset file found")

// Read parses CSV job records from r. Exact duplicate rows are dropped;
// IDs follow the remaining row order.
func Read(r io.Reader) ([]job.Record, Schema, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Schema{}, fmt.Errorf("%w: empty file", ErrSkillColumnNotFound)
		}
		return nil, Schema{}, fmt.Errorf("read header: %w", err)
	}

	schema, err := ResolveSchema(header)
	if err != nil {
		return nil, Schema{}, err
	}

	out := make([]job.Record, 0, 64)
	seen := map[string]struct{}{}
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, Schema{}, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		skillText := field(row, schema.Skills)
		out = append(out, job.Record{
			ID:             len(out),
			Title:          field(row, schema.Title),
			Company:        field(row, schema.Company),
			Location:       field(row, schema.Location),
			Industry:       field(row, schema.Industry),
			RequiredSkills: job.SplitSkills(skillText),
			SkillText:      skillText,
		})
	}
	return out, schema, nil
}

func LoadCSV(path string) ([]job.Record, Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Schema{}, err
	}
	defer f.Close()

	records, schema, err := Read(f)
	if err != nil {
		return nil, Schema{}, fmt.Errorf("%s: %w", path, err)
	}
	return records, schema, nil
}

// LoadFirst loads the first readable path. A file that exists but lacks a
// skills column is returned as an error instead of falling through.
func LoadFirst(paths []string) ([]job.Record, Schema, string, error) {
	var lastErr error
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		records, schema, err := LoadCSV(p)
		if err == nil {
			return records, schema, p, nil
		}
		if errors.Is(err, ErrSkillColumnNotFound) {
			return nil, Schema{}, p, err
		}
		if !errors.Is(err, fs.ErrNotExist) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, Schema{}, "", lastErr
	}
	return nil, Schema{}, "", fmt.Errorf("%w: tried %s", ErrNoDatasetFile, strings.Join(paths, ", "))
}

// WriteCSV writes records with the standardized column set.
func WriteCSV(w io.Writer, records []job.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"job_title", "company", "location", "required_skills", "industry"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Title, r.Company, r.Location, r.SkillText, r.Industry}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVSource serves records from the first readable file in Paths.
type CSVSource struct {
	Paths []string
}

func (s CSVSource) Name() string {
	return "csv"
}

func (s CSVSource) LoadJobs(ctx context.Context) ([]job.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, _, _, err := LoadFirst(s.Paths)
	return records, err
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
