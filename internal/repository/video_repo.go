package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/channelscope/channelscope-go/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// InsertIfAbsent persists fetched detail records. Existing rows are left
// untouched so a fresh fetch never overwrites stored detail with a partial
// record.
func (r *VideoRepo) InsertIfAbsent(ctx context.Context, videos []model.Video) error {
	query := `
		INSERT INTO videos (video_id, channel_id, title, description, published_at,
		                    duration, view_count, like_count, comment_count, tags,
		                    category_id, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (video_id) DO NOTHING`

	for _, v := range videos {
		tags, err := json.Marshal(v.Tags)
		if err != nil {
			return err
		}
		_, err = r.pool.Exec(ctx, query,
			v.VideoID, v.ChannelID, v.Title, v.Description, v.PublishedAt,
			v.Duration, v.ViewCount, v.LikeCount, v.CommentCount, tags,
			v.CategoryID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
