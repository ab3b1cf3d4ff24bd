package service

import (
	"context"

	"github.com/channelscope/channelscope-go/internal/model"
)

// Platform is the video-platform collaborator. Implementations treat upstream
// failures as "no result" rather than a separate error channel.
type Platform interface {
	ResolveIdentity(ctx context.Context, url string) (string, error)
	ChannelMetadata(ctx context.Context, channelID string) (*model.ChannelMetadata, error)
	Catalog(ctx context.Context, uploadPlaylistID string, max int64) ([]model.CatalogEntry, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]model.Video, error)
}

// Generator is the generative-text collaborator. Output carries no structural
// guarantee; the extract package recovers structure.
type Generator interface {
	Generate(ctx context.Context, prompt, system string, temperature float32, maxTokens int32) (string, error)
	Model() string
}

// ChannelStore persists channel metadata snapshots, last-write-wins.
type ChannelStore interface {
	FindByChannelID(ctx context.Context, channelID string) (*model.ChannelMetadata, error)
	Upsert(ctx context.Context, m *model.ChannelMetadata) error
}

// VideoStore persists fetched video detail records without overwriting.
type VideoStore interface {
	InsertIfAbsent(ctx context.Context, videos []model.Video) error
}

// AnalysisStore persists one analysis per channel, upsert by channel id.
type AnalysisStore interface {
	FindByChannelID(ctx context.Context, channelID string) (*model.ChannelAnalysis, error)
	Upsert(ctx context.Context, a *model.ChannelAnalysis) error
}

// SessionStore persists coaching sessions.
type SessionStore interface {
	FindBySessionID(ctx context.Context, sessionID string) (*model.CoachingSession, error)
	Insert(ctx context.Context, s *model.CoachingSession) error
	Update(ctx context.Context, s *model.CoachingSession) error
	ListByChannel(ctx context.Context, channelID string) ([]model.CoachingSession, error)
}

// ProfileStore persists at most one creator profile per channel.
type ProfileStore interface {
	FindByChannelID(ctx context.Context, channelID string) (*model.CreatorProfile, error)
	Upsert(ctx context.Context, p *model.CreatorProfile) error
}
