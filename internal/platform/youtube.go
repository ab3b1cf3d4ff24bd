// Package platform wraps the YouTube Data API v3 behind the narrow contract
// the orchestration layer consumes. All lookups treat API failures as "no
// result"; the caller decides what absence means.
package platform

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/channelscope/channelscope-go/internal/model"
)

const detailBatchSize = 50 // videos.list accepts at most 50 ids per call

var (
	channelURLRe = regexp.MustCompile(`youtube\.com/channel/([A-Za-z0-9_-]+)`)
	handleURLRe  = regexp.MustCompile(`youtube\.com/@([A-Za-z0-9_.-]+)`)
	customURLRe  = regexp.MustCompile(`youtube\.com/c/([A-Za-z0-9_.-]+)`)
	userURLRe    = regexp.MustCompile(`youtube\.com/user/([A-Za-z0-9_.-]+)`)
	bareIDRe     = regexp.MustCompile(`^UC[A-Za-z0-9_-]{10,}$`)
	bareHandleRe = regexp.MustCompile(`^@([A-Za-z0-9_.-]+)$`)
)

// Client is a YouTube Data API v3 client.
type Client struct {
	svc *youtube.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ResolveIdentity extracts or resolves a channel ID from a channel reference.
// Supported forms: /channel/UC..., /@handle, /c/name, /user/name, a bare
// channel id, or a bare @handle.
// Returns "" when the reference doesn't match any form or resolution finds
// nothing.
func (c *Client) ResolveIdentity(ctx context.Context, url string) (string, error) {
	if m := channelURLRe.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}
	if m := handleURLRe.FindStringSubmatch(url); m != nil {
		return c.searchChannel(ctx, "@"+m[1])
	}
	if m := customURLRe.FindStringSubmatch(url); m != nil {
		return c.searchChannel(ctx, m[1])
	}
	if m := userURLRe.FindStringSubmatch(url); m != nil {
		return c.resolveUsername(ctx, m[1])
	}
	if bareIDRe.MatchString(url) {
		return url, nil
	}
	if m := bareHandleRe.FindStringSubmatch(url); m != nil {
		return c.searchChannel(ctx, "@"+m[1])
	}
	return "", nil
}

func (c *Client) searchChannel(ctx context.Context, query string) (string, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("youtube: channel search %q failed: %v", query, err)
		return "", nil
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Snippet.ChannelId, nil
}

func (c *Client) resolveUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("youtube: username lookup %q failed: %v", username, err)
		return "", nil
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Id, nil
}

// ChannelMetadata fetches the channel snapshot. Returns nil when the channel
// does not exist or the API call fails.
func (c *Client) ChannelMetadata(ctx context.Context, channelID string) (*model.ChannelMetadata, error) {
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("youtube: channel fetch %s failed: %v", channelID, err)
		return nil, nil
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	ch := resp.Items[0]
	meta := &model.ChannelMetadata{
		ChannelID:       channelID,
		Title:           ch.Snippet.Title,
		Description:     ch.Snippet.Description,
		CustomURL:       ch.Snippet.CustomUrl,
		Country:         ch.Snippet.Country,
		SubscriberCount: int64(ch.Statistics.SubscriberCount),
		VideoCount:      int64(ch.Statistics.VideoCount),
		ViewCount:       int64(ch.Statistics.ViewCount),
		PublishedAt:     parseTime(ch.Snippet.PublishedAt),
		FetchedAt:       time.Now().UTC(),
	}
	if ch.Snippet.Thumbnails != nil && ch.Snippet.Thumbnails.High != nil {
		meta.ThumbnailURL = ch.Snippet.Thumbnails.High.Url
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		meta.UploadPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	return meta, nil
}

// Catalog lists up to max entries from the channel's upload playlist, in the
// reverse-chronological order the API delivers them.
func (c *Client) Catalog(ctx context.Context, uploadPlaylistID string, max int64) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	pageToken := ""

	for int64(len(entries)) < max {
		pageSize := max - int64(len(entries))
		if pageSize > 50 {
			pageSize = 50
		}

		call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(uploadPlaylistID).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			// Partial listings are still usable for sampling.
			log.Printf("youtube: playlist page fetch %s failed: %v", uploadPlaylistID, err)
			return entries, nil
		}

		for _, item := range resp.Items {
			entry := model.CatalogEntry{
				VideoID:     item.ContentDetails.VideoId,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
				PublishedAt: parseTime(item.Snippet.PublishedAt),
			}
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
				entry.ThumbnailURL = item.Snippet.Thumbnails.High.Url
			}
			entries = append(entries, entry)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if int64(len(entries)) > max {
		entries = entries[:max]
	}
	return entries, nil
}

// VideoDetails fetches full detail records for the given ids, batching at the
// API's 50-id limit.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]model.Video, error) {
	var videos []model.Video

	for start := 0; start < len(videoIDs); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(videoIDs[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			log.Printf("youtube: video details batch failed: %v", err)
			continue
		}

		for _, item := range resp.Items {
			v := model.Video{
				VideoID:     item.Id,
				ChannelID:   item.Snippet.ChannelId,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
				PublishedAt: parseTime(item.Snippet.PublishedAt),
				Tags:        item.Snippet.Tags,
				CategoryID:  item.Snippet.CategoryId,
				FetchedAt:   time.Now().UTC(),
			}
			if item.ContentDetails != nil {
				v.Duration = item.ContentDetails.Duration
			}
			if item.Statistics != nil {
				v.ViewCount = int64(item.Statistics.ViewCount)
				v.LikeCount = int64(item.Statistics.LikeCount)
				v.CommentCount = int64(item.Statistics.CommentCount)
			}
			videos = append(videos, v)
		}
	}

	return videos, nil
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
