package dto

import (
	"skill-match/internal/search"
	"skill-match/internal/usecase"
)

func FromJobItem(it usecase.JobItem) JobResponse {
	return JobResponse{
		JobID:          it.JobID,
		Title:          it.Title,
		Company:        it.Company,
		Location:       it.Location,
		Industry:       it.Industry,
		RequiredSkills: it.RequiredSkills,
	}
}

func FromRecommendedJob(it usecase.RecommendedJob) RecommendedJobResponse {
	out := RecommendedJobResponse{
		Rank:            it.Rank,
		JobID:           it.JobID,
		Title:           it.Title,
		Company:         it.Company,
		Location:        it.Location,
		Industry:        it.Industry,
		RequiredSkills:  it.RequiredSkills,
		MatchedSkills:   it.MatchedSkills,
		UnmatchedSkills: it.UnmatchedSkills,
		ExtraSkills:     it.ExtraSkills,
		MatchPercent:    it.MatchPercent,
		FinalScore:      it.FinalScore,
	}
	if it.HasSimilarity {
		s := it.Similarity
		out.Similarity = &s
	}
	return out
}

func FromInsights(in search.Insights) InsightsResponse {
	out := InsightsResponse{
		MatchedFrequency: make([]SkillCountResponse, 0, len(in.MatchedFrequency)),
		MatchedTotal:     in.MatchedTotal,
		UnmatchedTotal:   in.UnmatchedTotal,
		JobPercents:      make([]JobPercentResponse, 0, len(in.JobPercents)),
	}
	for _, sc := range in.MatchedFrequency {
		out.MatchedFrequency = append(out.MatchedFrequency, SkillCountResponse{Skill: sc.Skill, Count: sc.Count})
	}
	for _, jp := range in.JobPercents {
		out.JobPercents = append(out.JobPercents, JobPercentResponse{JobID: jp.JobID, Title: jp.Title, Percent: jp.Percent})
	}
	if in.Best != nil {
		out.BestJob = &BestJobResponse{
			JobID:   in.Best.JobID,
			Title:   in.Best.Title,
			Matched: in.Best.Matched,
			Missing: in.Best.Missing,
		}
	}
	return out
}

func FromRecommendation(rec usecase.Recommendation) RecommendationResponse {
	out := RecommendationResponse{
		Query:              rec.Query,
		Total:              rec.Total,
		Scored:             rec.Scored,
		SimilarityUsed:     rec.SimilarityUsed,
		CatalogFingerprint: rec.Fingerprint,
		Jobs:               make([]RecommendedJobResponse, 0, len(rec.Jobs)),
		Insights:           FromInsights(rec.Insights),
	}
	for _, it := range rec.Jobs {
		out.Jobs = append(out.Jobs, FromRecommendedJob(it))
	}
	return out
}

func FromCatalogStatus(st usecase.CatalogStatus) CatalogStatusResponse {
	out := CatalogStatusResponse{
		Loaded:         st.Loaded,
		Source:         st.Source,
		Jobs:           st.Jobs,
		VocabularySize: st.VocabularySize,
		Weighting:      st.Weighting,
		Fingerprint:    st.Fingerprint,
		Refit:          st.Refit,
	}
	if !st.LoadedAt.IsZero() {
		t := st.LoadedAt.UTC()
		out.LoadedAt = &t
	}
	return out
}
