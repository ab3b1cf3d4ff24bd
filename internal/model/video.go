package model

import "time"

// CatalogEntry is a lightweight listing row from a channel's upload catalog,
// delivered reverse-chronological by the platform.
type CatalogEntry struct {
	VideoID      string     `json:"video_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
}

// Video is the full detail record for a single video. Immutable once fetched,
// superseded only by a newer fetch of the same id.
type Video struct {
	VideoID      string     `json:"video_id"`
	ChannelID    string     `json:"channel_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	Tags         []string   `json:"tags,omitempty"`
	CategoryID   string     `json:"category_id,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at,omitempty"`
}

// VideoInfo is the condensed video block embedded in API responses.
type VideoInfo struct {
	Title       string     `json:"title"`
	Views       int64      `json:"views"`
	Likes       int64      `json:"likes"`
	Comments    int64      `json:"comments"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Info projects a detail record into the condensed shape.
func (v *Video) Info() VideoInfo {
	return VideoInfo{
		Title:       v.Title,
		Views:       v.ViewCount,
		Likes:       v.LikeCount,
		Comments:    v.CommentCount,
		PublishedAt: v.PublishedAt,
	}
}
