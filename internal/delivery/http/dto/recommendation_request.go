package dto

type RecommendationRequest struct {
	Skills     string   `json:"skills"`
	SkillList  []string `json:"skill_list"`
	Limit      int      `json:"limit"`
	All        bool     `json:"all"`
	MinPercent float64  `json:"min_percent"`
	Similarity *bool    `json:"similarity"`
}

type TokenRequest struct {
	Password string `json:"password"`
}
