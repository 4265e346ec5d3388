package search

import "sort"

// SkillCount is how many ranked jobs matched a skill.
type SkillCount struct {
	Skill string
	Count int
}

// JobPercent is one bar of the per-job match chart.
type JobPercent struct {
	JobID   int
	Title   string
	Percent float64
}

// Insights is the chart data for a ranked list. Nothing here renders.
type Insights struct {
	MatchedFrequency []SkillCount
	MatchedTotal     int
	UnmatchedTotal   int
	JobPercents      []JobPercent
	Best             *BestJobBreakdown
}

// BestJobBreakdown splits the top job's required skills into matched and
// missing counts.
type BestJobBreakdown struct {
	JobID   int
	Title   string
	Matched int
	// Missing counts the job's required skills the user lacks.
	Missing int
}

// Summarize aggregates the given ranked jobs.
func Summarize(jobs []RankedJob) Insights {
	out := Insights{
		MatchedFrequency: []SkillCount{},
		JobPercents:      make([]JobPercent, 0, len(jobs)),
	}

	freq := map[string]int{}
	for _, it := range jobs {
		for s := range it.Match.Matched {
			freq[s]++
		}
		out.MatchedTotal += it.Match.Matched.Len()
		out.UnmatchedTotal += it.Match.Unmatched.Len()
		out.JobPercents = append(out.JobPercents, JobPercent{
			JobID:   it.Job.ID,
			Title:   it.Job.Title,
			Percent: it.Match.Percent,
		})
	}

	for s, n := range freq {
		out.MatchedFrequency = append(out.MatchedFrequency, SkillCount{Skill: s, Count: n})
	}
	sort.Slice(out.MatchedFrequency, func(i, j int) bool {
		a, b := out.MatchedFrequency[i], out.MatchedFrequency[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Skill < b.Skill
	})

	if len(jobs) > 0 {
		best := jobs[0]
		out.Best = &BestJobBreakdown{
			JobID:   best.Job.ID,
			Title:   best.Job.Title,
			Matched: best.Match.Matched.Len(),
			Missing: best.Match.Extra.Len(),
		}
	}
	return out
}
