package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/channelscope/channelscope-go/internal/cache"
	"github.com/channelscope/channelscope-go/internal/config"
	"github.com/channelscope/channelscope-go/internal/extract"
	"github.com/channelscope/channelscope-go/internal/model"
	"github.com/channelscope/channelscope-go/pkg/hash"
)

// Analysis result provenance, carried in API responses.
const (
	SourceCache = "cache"
	SourceStore = "store"
	SourceFresh = "fresh_analysis"
)

// Confidence assumed when the model omits or garbles its own estimate.
const defaultConfidence = 0.85

// AnalyzeResult pairs the analysis with its channel snapshot and provenance.
type AnalyzeResult struct {
	Channel  *model.ChannelMetadata
	Analysis *model.ChannelAnalysis
	Source   string
}

// AnalysisService runs the channel analysis pipeline: resolve the reference,
// reuse any non-stale stored analysis, and otherwise fetch, sample, and
// generate a fresh one. Failures never disturb previously stored state.
type AnalysisService struct {
	cfg      *config.Config
	cache    cache.Store
	channels ChannelStore
	videos   VideoStore
	analyses AnalysisStore
	platform Platform
	gen      Generator

	// flight collapses concurrent full-miss analyses of the same channel into
	// a single upstream run.
	flight singleflight.Group

	now func() time.Time
}

func NewAnalysisService(cfg *config.Config, c cache.Store, channels ChannelStore, videos VideoStore, analyses AnalysisStore, platform Platform, gen Generator) *AnalysisService {
	return &AnalysisService{
		cfg:      cfg,
		cache:    c,
		channels: channels,
		videos:   videos,
		analyses: analyses,
		platform: platform,
		gen:      gen,
		now:      time.Now,
	}
}

// Analyze resolves reference (a channel URL, handle, or bare channel id) and
// returns its analysis, generating one only when nothing reusable exists.
func (s *AnalysisService) Analyze(ctx context.Context, reference string) (*AnalyzeResult, error) {
	channelID, err := s.ResolveChannelID(ctx, reference)
	if err != nil {
		return nil, err
	}

	if res := s.reuseExisting(ctx, channelID); res != nil {
		return res, nil
	}

	v, err, _ := s.flight.Do(channelID, func() (any, error) {
		return s.freshAnalysis(ctx, channelID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AnalyzeResult), nil
}

// ResolveChannelID maps a channel reference to a canonical channel id. The
// mapping is cached by URL fingerprint and written SetNX, so the first
// resolution of a reference wins for the mapping's lifetime.
func (s *AnalysisService) ResolveChannelID(ctx context.Context, reference string) (string, error) {
	key := cache.URLMappingKey(hash.URLFingerprint(reference))
	if raw, ok := s.cache.Get(ctx, key); ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id, nil
		}
	}

	id, err := s.platform.ResolveIdentity(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	if id == "" {
		return "", ErrInvalidReference
	}

	s.cache.SetNX(ctx, key, id, s.cfg.URLMappingTTL)
	return id, nil
}

// reuseExisting returns a cached or stored analysis when one is still live.
// Expired entries are treated as absent; an expired cache entry is evicted on
// sight, while an expired stored record is left for the fresh run to overwrite.
func (s *AnalysisService) reuseExisting(ctx context.Context, channelID string) *AnalyzeResult {
	now := s.now()

	if raw, ok := s.cache.Get(ctx, cache.AnalysisKey(channelID)); ok {
		var a model.ChannelAnalysis
		if err := json.Unmarshal(raw, &a); err == nil {
			if a.Expired(now) {
				s.cache.Delete(ctx, cache.AnalysisKey(channelID))
			} else {
				return &AnalyzeResult{
					Channel:  s.channelSnapshot(ctx, channelID),
					Analysis: &a,
					Source:   SourceCache,
				}
			}
		}
	}

	a, err := s.analyses.FindByChannelID(ctx, channelID)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("analysis lookup failed, proceeding to fresh analysis")
		return nil
	}
	if a == nil || a.Expired(now) {
		return nil
	}

	s.cache.Set(ctx, cache.AnalysisKey(channelID), a, s.cfg.AnalysisCacheTTL)
	return &AnalyzeResult{
		Channel:  s.channelSnapshot(ctx, channelID),
		Analysis: a,
		Source:   SourceStore,
	}
}

// FindExisting returns the stored analysis for a channel id without ever
// triggering generation, or (nil, nil) when none exists. Stale records are
// returned as-is; the caller decides how to present staleness.
func (s *AnalysisService) FindExisting(ctx context.Context, channelID string) (*AnalyzeResult, error) {
	if raw, ok := s.cache.Get(ctx, cache.AnalysisKey(channelID)); ok {
		var a model.ChannelAnalysis
		if err := json.Unmarshal(raw, &a); err == nil {
			return &AnalyzeResult{
				Channel:  s.channelSnapshot(ctx, channelID),
				Analysis: &a,
				Source:   SourceCache,
			}, nil
		}
	}

	a, err := s.analyses.FindByChannelID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return &AnalyzeResult{
		Channel:  s.channelSnapshot(ctx, channelID),
		Analysis: a,
		Source:   SourceStore,
	}, nil
}

// freshAnalysis runs the full pipeline for a channel with no reusable
// analysis. Nothing is persisted until generation and extraction succeed.
func (s *AnalysisService) freshAnalysis(ctx context.Context, channelID string) (*AnalyzeResult, error) {
	meta, err := s.channelMetadata(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrChannelNotFound
	}

	catalog, err := s.platform.Catalog(ctx, meta.UploadPlaylistID, s.cfg.CatalogFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoVideosFound, err)
	}
	if len(catalog) == 0 {
		return nil, ErrNoVideosFound
	}

	sampleIDs, strategy := SelectRepresentativeVideos(catalog, s.cfg.MaxVideosToAnalyze)

	videos, err := s.platform.VideoDetails(ctx, sampleIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVideoFetch, err)
	}
	if len(videos) == 0 {
		return nil, ErrVideoFetch
	}
	for i := range videos {
		videos[i].ChannelID = channelID
	}
	if err := s.videos.InsertIfAbsent(ctx, videos); err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("video detail persistence failed")
	}

	raw, err := s.gen.Generate(ctx, buildAnalysisPrompt(meta, videos), analysisSystemInstruction,
		s.cfg.GeminiTemperature, s.cfg.GeminiMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	obj, err := extract.Object(raw, requiredAnalysisFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	now := s.now()
	analysis := &model.ChannelAnalysis{
		ChannelID:           channelID,
		Summary:             extract.String(obj, "summary"),
		Themes:              extract.StringSlice(obj, "themes"),
		TargetAudience:      extract.String(obj, "target_audience"),
		ContentStyle:        extract.String(obj, "content_style"),
		UploadFrequency:     extract.String(obj, "upload_frequency"),
		AnalyzedVideosCount: len(videos),
		TotalVideosCount:    len(catalog),
		ConfidenceScore:     clampConfidence(extract.Float(obj, "confidence", defaultConfidence)),
		ModelVersion:        s.gen.Model(),
		AnalyzedAt:          now,
		ExpiresAt:           now.Add(s.cfg.AnalysisExpiry),
		VideoSampleIDs:      sampleIDs,
	}

	if err := s.analyses.Upsert(ctx, analysis); err != nil {
		return nil, fmt.Errorf("storing analysis: %w", err)
	}
	s.cache.Set(ctx, cache.AnalysisKey(channelID), analysis, s.cfg.AnalysisCacheTTL)

	log.Info().
		Str("channel_id", channelID).
		Str("strategy", strategy).
		Int("videos_analyzed", len(videos)).
		Int("total_videos", len(catalog)).
		Msg("fresh analysis stored")

	return &AnalyzeResult{Channel: meta, Analysis: analysis, Source: SourceFresh}, nil
}

// channelMetadata serves the tiered metadata lookup: cache, then store (only
// when the stored snapshot is younger than the metadata TTL), then platform
// with write-back to both tiers. Returns (nil, nil) when the platform has no
// such channel.
func (s *AnalysisService) channelMetadata(ctx context.Context, channelID string) (*model.ChannelMetadata, error) {
	key := cache.MetadataKey(channelID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var m model.ChannelMetadata
		if err := json.Unmarshal(raw, &m); err == nil {
			return &m, nil
		}
	}

	if m, err := s.channels.FindByChannelID(ctx, channelID); err == nil && m != nil {
		if s.now().Sub(m.FetchedAt) < s.cfg.MetadataCacheTTL {
			s.cache.Set(ctx, key, m, s.cfg.MetadataCacheTTL)
			return m, nil
		}
	}

	m, err := s.platform.ChannelMetadata(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelNotFound, err)
	}
	if m == nil {
		return nil, nil
	}
	m.FetchedAt = s.now()

	if err := s.channels.Upsert(ctx, m); err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("channel metadata persistence failed")
	}
	s.cache.Set(ctx, key, m, s.cfg.MetadataCacheTTL)
	return m, nil
}

// channelSnapshot is a best-effort channel block for responses built from
// reused analyses. A missing snapshot is not an error.
func (s *AnalysisService) channelSnapshot(ctx context.Context, channelID string) *model.ChannelMetadata {
	m, err := s.channelMetadata(ctx, channelID)
	if err != nil || m == nil {
		return &model.ChannelMetadata{ChannelID: channelID}
	}
	return m
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
