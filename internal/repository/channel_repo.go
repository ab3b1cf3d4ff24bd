package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/channelscope/channelscope-go/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// FindByChannelID returns the stored metadata snapshot, or (nil, nil) when
// the channel is unknown.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.ChannelMetadata, error) {
	query := `
		SELECT channel_id, title, description, custom_url, country, thumbnail_url,
		       subscriber_count, video_count, view_count, upload_playlist_id,
		       published_at, fetched_at
		FROM channels
		WHERE channel_id = $1`

	var m model.ChannelMetadata
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&m.ChannelID, &m.Title, &m.Description, &m.CustomURL, &m.Country, &m.ThumbnailURL,
		&m.SubscriberCount, &m.VideoCount, &m.ViewCount, &m.UploadPlaylistID,
		&m.PublishedAt, &m.FetchedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert stores the snapshot last-write-wins, keyed by channel_id.
func (r *ChannelRepo) Upsert(ctx context.Context, m *model.ChannelMetadata) error {
	query := `
		INSERT INTO channels (channel_id, title, description, custom_url, country,
		                      thumbnail_url, subscriber_count, video_count, view_count,
		                      upload_playlist_id, published_at, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (channel_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			custom_url = EXCLUDED.custom_url,
			country = EXCLUDED.country,
			thumbnail_url = EXCLUDED.thumbnail_url,
			subscriber_count = EXCLUDED.subscriber_count,
			video_count = EXCLUDED.video_count,
			view_count = EXCLUDED.view_count,
			upload_playlist_id = EXCLUDED.upload_playlist_id,
			published_at = EXCLUDED.published_at,
			fetched_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		m.ChannelID, m.Title, m.Description, m.CustomURL, m.Country,
		m.ThumbnailURL, m.SubscriberCount, m.VideoCount, m.ViewCount,
		m.UploadPlaylistID, m.PublishedAt,
	)
	return err
}
