package job

import (
	"strings"

	"skill-match/internal/domain/skill"
)

// Record is one job posting. Records are loaded once per catalog build and
// never mutated afterwards.
type Record struct {
	ID             int
	Title          string
	Company        string
	Location       string
	Industry       string
	RequiredSkills []string
	// SkillText is the raw skills cell, kept for the vectorizer corpus.
	SkillText string
}

// Skills returns the normalized required-skill set.
func (r Record) Skills() skill.Set {
	return skill.FromList(r.RequiredSkills)
}

// SplitSkills keeps the dataset's spelling and order of a raw skills cell,
// dropping blanks and case-insensitive duplicates.
func SplitSkills(raw string) []string {
	out := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return out
	}
	seen := skill.Set{}
	for _, part := range strings.Split(raw, ",") {
		t := skill.Token(part)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, strings.Join(strings.Fields(part), " "))
	}
	return out
}
