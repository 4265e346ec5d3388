package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"skill-match/internal/search"
	"skill-match/internal/usecase"
)

// ColorizePercent colors a match percentage: green from 60, yellow from 30,
// red below.
func ColorizePercent(p float64) string {
	text := fmt.Sprintf("%.2f%%", p)
	switch {
	case p >= 60:
		return pterm.Green(text)
	case p >= 30:
		return pterm.Yellow(text)
	default:
		return pterm.Red(text)
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// RecommendationRows builds the ranked table, header first.
func RecommendationRows(rec usecase.Recommendation) pterm.TableData {
	header := []string{"#", "Title", "Company", "Location", "Match", "Matched", "Unmatched"}
	if rec.SimilarityUsed {
		header = append(header, "Similarity", "Score")
	}

	rows := pterm.TableData{header}
	for _, j := range rec.Jobs {
		row := []string{
			fmt.Sprintf("%d", j.Rank),
			j.Title,
			j.Company,
			j.Location,
			ColorizePercent(j.MatchPercent),
			joinOrDash(j.MatchedSkills),
			joinOrDash(j.UnmatchedSkills),
		}
		if rec.SimilarityUsed {
			row = append(row, fmt.Sprintf("%.4f", j.Similarity), fmt.Sprintf("%.4f", j.FinalScore))
		}
		rows = append(rows, row)
	}
	return rows
}

func RenderRecommendation(rec usecase.Recommendation) error {
	pterm.DefaultSection.Printfln("Recommendations for: %s", strings.Join(rec.Query, ", "))
	pterm.Info.Printfln("showing %s of %s matching jobs (%s scored)",
		humanize.Comma(int64(len(rec.Jobs))),
		humanize.Comma(int64(rec.Total)),
		humanize.Comma(int64(rec.Scored)),
	)
	if len(rec.Jobs) == 0 {
		pterm.Warning.Println("No jobs found")
		return nil
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(RecommendationRows(rec)).Render(); err != nil {
		return err
	}
	return RenderInsights(rec.Insights)
}

// SkillBars converts matched skill frequencies into chart bars.
func SkillBars(counts []search.SkillCount) pterm.Bars {
	bars := make(pterm.Bars, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, pterm.Bar{Label: c.Skill, Value: c.Count})
	}
	return bars
}

func RenderInsights(in search.Insights) error {
	pterm.DefaultSection.Println("Insights")
	pterm.Info.Printfln("matched skills: %s, unmatched skills: %s",
		humanize.Comma(int64(in.MatchedTotal)),
		humanize.Comma(int64(in.UnmatchedTotal)),
	)

	if len(in.MatchedFrequency) > 0 {
		if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(SkillBars(in.MatchedFrequency)).Render(); err != nil {
			return err
		}
	}
	if in.Best != nil {
		pterm.Success.Printfln("best match: %s (job %d), %d required skills matched, %d missing",
			in.Best.Title, in.Best.JobID, in.Best.Matched, in.Best.Missing)
	}
	return nil
}
