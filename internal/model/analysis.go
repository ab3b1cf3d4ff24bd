package model

import "time"

// Freshness buckets for a stored analysis, derived purely from elapsed time.
const (
	FreshnessFresh  = "fresh"  // < 7 days old
	FreshnessRecent = "recent" // < 14 days old
	FreshnessAging  = "aging"  // older, but not past expiry
	FreshnessStale  = "stale"  // past expires_at; treated as absent
)

// ChannelAnalysis is the AI-generated analysis record for a channel. One record
// per channel (unique channel_id); overwritten entirely on re-analysis, never
// deleted by the engine.
type ChannelAnalysis struct {
	ChannelID           string    `json:"channel_id"`
	Summary             string    `json:"summary"`
	Themes              []string  `json:"themes"`
	TargetAudience      string    `json:"target_audience"`
	ContentStyle        string    `json:"content_style"`
	UploadFrequency     string    `json:"upload_frequency"`
	AnalyzedVideosCount int       `json:"analyzed_videos_count"`
	TotalVideosCount    int       `json:"total_videos_count"`
	ConfidenceScore     float64   `json:"confidence_score"`
	ModelVersion        string    `json:"model_version"`
	AnalyzedAt          time.Time `json:"analyzed_at"`
	ExpiresAt           time.Time `json:"expires_at"`
	// Exact sample used, kept for reproducibility.
	VideoSampleIDs []string `json:"video_sample_ids"`
}

// ComputeFreshness classifies an analysis by age. Total over all inputs with
// expiresAt >= analyzedAt: exactly one bucket is returned, and any now past
// expiresAt is stale regardless of age.
func ComputeFreshness(analyzedAt, expiresAt, now time.Time) string {
	if now.After(expiresAt) {
		return FreshnessStale
	}
	age := now.Sub(analyzedAt)
	switch {
	case age < 7*24*time.Hour:
		return FreshnessFresh
	case age < 14*24*time.Hour:
		return FreshnessRecent
	default:
		return FreshnessAging
	}
}

// Freshness returns the analysis' bucket at the given instant.
func (a *ChannelAnalysis) Freshness(now time.Time) string {
	return ComputeFreshness(a.AnalyzedAt, a.ExpiresAt, now)
}

// Expired reports whether the analysis is past its expiry window.
func (a *ChannelAnalysis) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// AnalysisContent is the analysis block embedded in API responses.
type AnalysisContent struct {
	Summary         string   `json:"summary"`
	Themes          []string `json:"themes"`
	TargetAudience  string   `json:"target_audience"`
	ContentStyle    string   `json:"content_style"`
	UploadFrequency string   `json:"upload_frequency"`
}

// AnalysisMeta is the metadata block embedded in API responses.
type AnalysisMeta struct {
	AnalyzedAt     string  `json:"analyzed_at"`
	VideosAnalyzed int     `json:"videos_analyzed"`
	TotalVideos    int     `json:"total_videos"`
	Freshness      string  `json:"freshness"`
	Confidence     float64 `json:"confidence"`
	ModelVersion   string  `json:"model_version"`
}

// Content projects the record into the response analysis block.
func (a *ChannelAnalysis) Content() AnalysisContent {
	return AnalysisContent{
		Summary:         a.Summary,
		Themes:          a.Themes,
		TargetAudience:  a.TargetAudience,
		ContentStyle:    a.ContentStyle,
		UploadFrequency: a.UploadFrequency,
	}
}

// Meta projects the record into the response metadata block.
func (a *ChannelAnalysis) Meta(now time.Time) AnalysisMeta {
	return AnalysisMeta{
		AnalyzedAt:     a.AnalyzedAt.UTC().Format(time.RFC3339),
		VideosAnalyzed: a.AnalyzedVideosCount,
		TotalVideos:    a.TotalVideosCount,
		Freshness:      a.Freshness(now),
		Confidence:     a.ConfidenceScore,
		ModelVersion:   a.ModelVersion,
	}
}
