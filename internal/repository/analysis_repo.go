package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/channelscope/channelscope-go/internal/model"
)

type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

// FindByChannelID returns the stored analysis, or (nil, nil) when none exists.
// Staleness is the caller's decision; expired records are returned as-is.
func (r *AnalysisRepo) FindByChannelID(ctx context.Context, channelID string) (*model.ChannelAnalysis, error) {
	query := `
		SELECT channel_id, summary, themes, target_audience, content_style,
		       upload_frequency, analyzed_videos_count, total_videos_count,
		       confidence_score, model_version, analyzed_at, expires_at,
		       video_sample_ids
		FROM channel_analyses
		WHERE channel_id = $1`

	var a model.ChannelAnalysis
	var themes, sampleIDs []byte
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&a.ChannelID, &a.Summary, &themes, &a.TargetAudience, &a.ContentStyle,
		&a.UploadFrequency, &a.AnalyzedVideosCount, &a.TotalVideosCount,
		&a.ConfidenceScore, &a.ModelVersion, &a.AnalyzedAt, &a.ExpiresAt,
		&sampleIDs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(themes, &a.Themes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sampleIDs, &a.VideoSampleIDs); err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert overwrites the channel's analysis entirely, keyed by the unique
// channel_id.
func (r *AnalysisRepo) Upsert(ctx context.Context, a *model.ChannelAnalysis) error {
	themes, err := json.Marshal(a.Themes)
	if err != nil {
		return err
	}
	sampleIDs, err := json.Marshal(a.VideoSampleIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO channel_analyses (channel_id, summary, themes, target_audience,
		                              content_style, upload_frequency,
		                              analyzed_videos_count, total_videos_count,
		                              confidence_score, model_version, analyzed_at,
		                              expires_at, video_sample_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (channel_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			themes = EXCLUDED.themes,
			target_audience = EXCLUDED.target_audience,
			content_style = EXCLUDED.content_style,
			upload_frequency = EXCLUDED.upload_frequency,
			analyzed_videos_count = EXCLUDED.analyzed_videos_count,
			total_videos_count = EXCLUDED.total_videos_count,
			confidence_score = EXCLUDED.confidence_score,
			model_version = EXCLUDED.model_version,
			analyzed_at = EXCLUDED.analyzed_at,
			expires_at = EXCLUDED.expires_at,
			video_sample_ids = EXCLUDED.video_sample_ids`

	_, err = r.pool.Exec(ctx, query,
		a.ChannelID, a.Summary, themes, a.TargetAudience,
		a.ContentStyle, a.UploadFrequency,
		a.AnalyzedVideosCount, a.TotalVideosCount,
		a.ConfidenceScore, a.ModelVersion, a.AnalyzedAt,
		a.ExpiresAt, sampleIDs,
	)
	return err
}

// Stats returns row counts for the stats endpoint.
func (r *AnalysisRepo) Stats(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM channels),
			(SELECT COUNT(*) FROM channel_analyses),
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM coaching_sessions)`

	var channels, analyses, videos, sessions int64
	if err := r.pool.QueryRow(ctx, query).Scan(&channels, &analyses, &videos, &sessions); err != nil {
		return nil, err
	}
	return map[string]int64{
		"channels":          channels,
		"analyses":          analyses,
		"videos":            videos,
		"coaching_sessions": sessions,
	}, nil
}
