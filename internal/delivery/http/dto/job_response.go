package dto

import "time"

type JobResponse struct {
	JobID          int      `json:"job_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Industry       string   `json:"industry,omitempty"`
	RequiredSkills []string `json:"required_skills"`
}

type JobListResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type SimilarJobResponse struct {
	JobResponse
	Similarity float64 `json:"similarity"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CatalogStatusResponse struct {
	Loaded         bool       `json:"loaded"`
	Source         string     `json:"source,omitempty"`
	Jobs           int        `json:"jobs"`
	VocabularySize int        `json:"vocabulary_size"`
	Weighting      string     `json:"weighting,omitempty"`
	Fingerprint    string     `json:"fingerprint,omitempty"`
	Refit          bool       `json:"refit"`
	LoadedAt       *time.Time `json:"loaded_at,omitempty"`
}

type HealthResponse struct {
	Catalog      CatalogStatusResponse `json:"catalog"`
	Dependencies map[string]string     `json:"dependencies"`
	// SourceJobs is the row count of a database source, which can differ
	// from the loaded catalog until the next reload.
	SourceJobs   *int                  `json:"source_jobs,omitempty"`
}
