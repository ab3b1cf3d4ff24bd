package model

// ContentScores grades a channel on a 0-100 scale per dimension.
type ContentScores struct {
	Overall         int `json:"overall"`
	Consistency     int `json:"consistency"`
	Engagement      int `json:"engagement"`
	GrowthPotential int `json:"growth_potential"`
}

// GrowthStrategy is one prioritized, time-boxed action.
type GrowthStrategy struct {
	Priority       string `json:"priority"`
	Action         string `json:"action"`
	ExpectedImpact string `json:"expected_impact"`
	Timeline       string `json:"timeline"`
}

// ContentRecommendation is a recommended content type with example topics.
type ContentRecommendation struct {
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Frequency     string   `json:"frequency"`
	ExampleTopics []string `json:"example_topics"`
}

// StrategicAnalysis is the deep-guidance payload generated from a channel's
// best and latest videos. Generated per request, never persisted.
type StrategicAnalysis struct {
	Strengths              []string                `json:"strengths"`
	Weaknesses             []string                `json:"weaknesses"`
	GrowthStrategy         []GrowthStrategy        `json:"growth_strategy"`
	ContentRecommendations []ContentRecommendation `json:"content_recommendations"`
	ThumbnailAdvice        string                  `json:"thumbnail_advice"`
	TitleAdvice            string                  `json:"title_advice"`
	UploadSchedule         string                  `json:"upload_schedule"`
	EngagementTips         []string                `json:"engagement_tips"`
	Scores                 ContentScores           `json:"scores"`
	OverallVerdict         string                  `json:"overall_verdict"`
}
