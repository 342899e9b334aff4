package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

const videoColumns = `id, video_id, title, description, published_at, created_at, topic_label, channel_key`

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// FindByVideoID returns a single video by its YouTube video ID.
func (r *VideoRepo) FindByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1`
	return scanVideo(r.pool.QueryRow(ctx, query, videoID))
}

// Upsert inserts a parsed feed entry or overwrites the title, description,
// publish time and channel of an existing one. topic_label is left as is.
func (r *VideoRepo) Upsert(ctx context.Context, v model.ParsedVideo, channelKey int64) (*model.Video, error) {
	query := `
		INSERT INTO videos (video_id, title, description, published_at, channel_key)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (video_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    published_at = EXCLUDED.published_at,
		    channel_key = EXCLUDED.channel_key
		RETURNING ` + videoColumns
	return scanVideo(r.pool.QueryRow(ctx, query, v.VideoID, v.Title, v.Description, v.PublishedAt, channelKey))
}

// SaveLabels writes the topic label of each video key in one transaction.
func (r *VideoRepo) SaveLabels(ctx context.Context, labels map[int64]string) error {
	if len(labels) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for id, label := range labels {
		batch.Queue(`UPDATE videos SET topic_label = $1 WHERE id = $2`, label, id)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// FindAll returns every video in creation order.
func (r *VideoRepo) FindAll(ctx context.Context) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.ID, &v.VideoID, &v.Title, &v.Description,
			&v.PublishedAt, &v.CreatedAt, &v.TopicLabel, &v.ChannelKey,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.VideoID, &v.Title, &v.Description,
		&v.PublishedAt, &v.CreatedAt, &v.TopicLabel, &v.ChannelKey,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
