package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSkillColumnNotFound means no header looks like a skills column. No
// scoring is possible without one.
var ErrSkillColumnNotFound = errors.New("skills column not found")

var (
	titleCandidates    = []string{"job_title", "title", "position", "role"}
	companyCandidates  = []string{"company", "company_name", "employer"}
	locationCandidates = []string{"location", "city", "job_location"}
	industryCandidates = []string{"industry", "sector"}
	skillCandidates    = []string{"required_skills", "skills", "skills_required", "skillset"}
)

// Schema maps record fields to column positions. -1 means absent.
type Schema struct {
	Header   []string
	Title    int
	Company  int
	Location int
	Industry int
	Skills   int
}

// StandardizeColumn trims, lowercases and replaces spaces with underscores.
func StandardizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// ResolveSchema locates columns by name. Only the skills column is
// required; it is the first header mentioning "skill" or "required", else
// one of the known skills column names.
func ResolveSchema(header []string) (Schema, error) {
	std := make([]string, len(header))
	for i, h := range header {
		std[i] = StandardizeColumn(h)
	}

	s := Schema{
		Header:   std,
		Title:    findColumn(std, titleCandidates),
		Company:  findColumn(std, companyCandidates),
		Location: findColumn(std, locationCandidates),
		Industry: findColumn(std, industryCandidates),
		Skills:   -1,
	}

	for i, h := range std {
		if strings.Contains(h, "skill") || strings.Contains(h, "required") {
			s.Skills = i
			break
		}
	}
	if s.Skills < 0 {
		s.Skills = findColumn(std, skillCandidates)
	}
	if s.Skills < 0 {
		return Schema{}, fmt.Errorf("%w: columns=%s", ErrSkillColumnNotFound, strings.Join(std, ","))
	}
	return s, nil
}

func (s Schema) SkillColumn() string {
	if s.Skills < 0 || s.Skills >= len(s.Header) {
		return ""
	}
	return s.Header[s.Skills]
}

func findColumn(header []string, candidates []string) int {
	for _, c := range candidates {
		for i, h := range header {
			if h == c {
				return i
			}
		}
	}
	return -1
}

// field returns row[idx] trimmed, or "" when the column is absent or the row
// is short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[idx])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}
