package dto

type RecommendedJobResponse struct {
	Rank            int      `json:"rank,omitempty"`
	JobID           int      `json:"job_id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Industry        string   `json:"industry,omitempty"`
	RequiredSkills  []string `json:"required_skills"`
	MatchedSkills   []string `json:"matched_skills"`
	UnmatchedSkills []string `json:"unmatched_skills"`
	ExtraSkills     []string `json:"extra_skills"`
	MatchPercent    float64  `json:"match_percent"`
	Similarity      *float64 `json:"similarity,omitempty"`
	FinalScore      float64  `json:"final_score"`
}

type SkillCountResponse struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type JobPercentResponse struct {
	JobID   int     `json:"job_id"`
	Title   string  `json:"title"`
	Percent float64 `json:"percent"`
}

type BestJobResponse struct {
	JobID   int    `json:"job_id"`
	Title   string `json:"title"`
	Matched int    `json:"matched"`
	Missing int    `json:"missing"`
}

type InsightsResponse struct {
	MatchedFrequency []SkillCountResponse `json:"matched_frequency"`
	MatchedTotal     int                  `json:"matched_total"`
	UnmatchedTotal   int                  `json:"unmatched_total"`
	JobPercents      []JobPercentResponse `json:"job_percents"`
	BestJob          *BestJobResponse     `json:"best_job"`
}

type RecommendationResponse struct {
	Query              []string                 `json:"query"`
	Total              int                      `json:"total"`
	Scored             int                      `json:"scored"`
	SimilarityUsed     bool                     `json:"similarity_used"`
	CatalogFingerprint string                   `json:"catalog_fingerprint"`
	Jobs               []RecommendedJobResponse `json:"jobs"`
	Insights           InsightsResponse         `json:"insights"`
}

type ResumeRecommendationResponse struct {
	ExtractedSkills []string `json:"extracted_skills"`
	RecommendationResponse
}
