package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/channelscope/channelscope-go/internal/extract"
	"github.com/channelscope/channelscope-go/internal/model"
)

// Fields the extractor requires in every strategic-guidance response.
var requiredStrategicFields = []string{
	"strengths", "weaknesses", "growth_strategy", "content_recommendations",
	"thumbnail_advice", "title_advice", "upload_schedule", "engagement_tips",
	"scores", "overall_verdict",
}

// StrategicResult pairs the generated guidance with the channel snapshot and
// the videos that drove it.
type StrategicResult struct {
	Channel      *model.ChannelMetadata
	TopVideos    []model.Video
	RecentVideos []model.Video
	Analysis     *model.StrategicAnalysis
	ModelVersion string
	GeneratedAt  time.Time
}

// AnalyzeStrategic generates deep guidance for a channel from its top
// performers and latest uploads. Unlike Analyze, nothing is persisted or
// cached; every call reflects the channel as it stands right now.
func (s *AnalysisService) AnalyzeStrategic(ctx context.Context, reference string) (*StrategicResult, error) {
	channelID, err := s.ResolveChannelID(ctx, reference)
	if err != nil {
		return nil, err
	}

	meta, err := s.channelMetadata(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrChannelNotFound
	}

	catalog, err := s.platform.Catalog(ctx, meta.UploadPlaylistID, int64(s.cfg.MaxVideosToAnalyze))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoVideosFound, err)
	}
	if len(catalog) == 0 {
		return nil, ErrNoVideosFound
	}

	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.VideoID
	}
	videos, err := s.platform.VideoDetails(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVideoFetch, err)
	}
	if len(videos) == 0 {
		return nil, ErrVideoFetch
	}

	top, recent := rankNotableVideos(videos, topVideoCount, recentVideoCount)

	raw, err := s.gen.Generate(ctx, buildStrategicPrompt(meta, top, recent), strategicSystemInstruction,
		s.cfg.GeminiTemperature, s.cfg.GeminiMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	obj, err := extract.Object(raw, requiredStrategicFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	analysis, err := decodeStrategic(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	log.Info().
		Str("channel_id", channelID).
		Int("top_videos", len(top)).
		Int("recent_videos", len(recent)).
		Msg("strategic analysis generated")

	return &StrategicResult{
		Channel:      meta,
		TopVideos:    top,
		RecentVideos: recent,
		Analysis:     analysis,
		ModelVersion: s.gen.Model(),
		GeneratedAt:  s.now(),
	}, nil
}

// decodeStrategic shapes an extracted object into the typed payload. Field
// presence is already guaranteed by the extractor; this catches type mismatches.
func decodeStrategic(obj map[string]any) (*model.StrategicAnalysis, error) {
	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var a model.StrategicAnalysis
	if err := json.Unmarshal(buf, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// rankNotableVideos picks the top performers by views and the most recent
// uploads from one detail set. The input slice is not reordered.
func rankNotableVideos(videos []model.Video, topN, recentN int) (top, recent []model.Video) {
	if len(videos) == 0 {
		return nil, nil
	}

	byViews := make([]model.Video, len(videos))
	copy(byViews, videos)
	sort.SliceStable(byViews, func(i, j int) bool {
		return byViews[i].ViewCount > byViews[j].ViewCount
	})
	top = byViews[:min(topN, len(byViews))]

	byDate := make([]model.Video, len(videos))
	copy(byDate, videos)
	sort.SliceStable(byDate, func(i, j int) bool {
		ti, tj := byDate[i].PublishedAt, byDate[j].PublishedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	recent = byDate[:min(recentN, len(byDate))]

	return top, recent
}
