package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/channelscope/channelscope-go/internal/model"
)

// How many recent uploads feed the channel summary during chat setup.
const chatSetupVideoCount = 10

// ChatPreferences carries the creator-stated fields recorded during setup.
type ChatPreferences struct {
	PreferredGenres   []string
	FutureGoals       string
	EffortLevel       string
	EditingSkills     string
	CurrentChallenges []string
}

// ChatSetupResult identifies the channel the chat profile was built for.
type ChatSetupResult struct {
	ChannelID   string
	ChannelName string
}

// SetupChat resolves the channel, generates a hidden channel summary from its
// recent uploads, and stores it on the creator profile together with the
// stated preferences. Profile fields setup does not carry keep their stored
// values.
func (s *CoachingService) SetupChat(ctx context.Context, reference string, prefs ChatPreferences) (*ChatSetupResult, error) {
	channelID, err := s.analysis.ResolveChannelID(ctx, reference)
	if err != nil {
		return nil, err
	}

	meta, err := s.analysis.channelMetadata(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrChannelNotFound
	}

	videos := s.recentUploads(ctx, meta)

	summary, err := s.gen.Generate(ctx, buildSummaryPrompt(meta, videos), summarySystemInstruction,
		s.cfg.GeminiTemperature, s.cfg.GeminiMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChatFailed, err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: empty channel summary", ErrChatFailed)
	}

	profile, err := s.profiles.FindByChannelID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.CreatorProfile{ChannelID: channelID}
	}
	profile.PreferredGenres = prefs.PreferredGenres
	profile.FutureGoals = prefs.FutureGoals
	profile.EffortLevel = prefs.EffortLevel
	profile.EditingSkills = prefs.EditingSkills
	profile.CurrentChallenges = prefs.CurrentChallenges
	profile.ChannelSummary = summary

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("storing creator profile: %w", err)
	}

	log.Info().
		Str("channel_id", channelID).
		Int("summary_len", len(summary)).
		Msg("chat setup complete")

	return &ChatSetupResult{ChannelID: channelID, ChannelName: meta.Title}, nil
}

// Chat answers one free-form coaching message grounded in the stored channel
// summary and preferences. Stateless between turns; nothing is persisted.
func (s *CoachingService) Chat(ctx context.Context, channelID, message string) (string, error) {
	profile, err := s.profiles.FindByChannelID(ctx, channelID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrProfileNotFound
	}
	if profile.ChannelSummary == "" {
		return "", ErrSummaryMissing
	}

	reply, err := s.gen.Generate(ctx, buildChatPrompt(profile, message), chatSystemInstruction,
		s.cfg.GeminiTemperature, s.cfg.GeminiMaxOutputTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChatFailed, err)
	}
	return strings.TrimSpace(reply), nil
}

// recentUploads fetches details for the head of the upload catalog. Platform
// trouble degrades to an empty sample; the summary still covers the metadata.
func (s *CoachingService) recentUploads(ctx context.Context, meta *model.ChannelMetadata) []model.Video {
	catalog, err := s.platform.Catalog(ctx, meta.UploadPlaylistID, chatSetupVideoCount)
	if err != nil || len(catalog) == 0 {
		return nil
	}
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.VideoID
	}
	videos, err := s.platform.VideoDetails(ctx, ids)
	if err != nil {
		return nil
	}
	return videos
}
