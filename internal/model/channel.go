package model

import "time"

// ChannelMetadata is the latest known snapshot of a channel. It is refreshed
// on every cache miss and persisted last-write-wins.
type ChannelMetadata struct {
	ChannelID        string     `json:"channel_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	CustomURL        string     `json:"custom_url,omitempty"`
	Country          string     `json:"country,omitempty"`
	ThumbnailURL     string     `json:"thumbnail_url,omitempty"`
	SubscriberCount  int64      `json:"subscriber_count"`
	VideoCount       int64      `json:"video_count"`
	ViewCount        int64      `json:"view_count"`
	UploadPlaylistID string     `json:"upload_playlist_id,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	FetchedAt        time.Time  `json:"fetched_at,omitempty"`
}

// ChannelInfo is the channel block embedded in API responses.
type ChannelInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
}

// Info projects the metadata snapshot into the response shape.
func (m *ChannelMetadata) Info() ChannelInfo {
	return ChannelInfo{
		ID:              m.ChannelID,
		Title:           m.Title,
		SubscriberCount: m.SubscriberCount,
		VideoCount:      m.VideoCount,
		ThumbnailURL:    m.ThumbnailURL,
	}
}
