package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

// SQLiteChannelRepo is the embedded-database counterpart of ChannelRepo.
type SQLiteChannelRepo struct {
	db *sql.DB
}

func NewSQLiteChannelRepo(db *sql.DB) *SQLiteChannelRepo {
	return &SQLiteChannelRepo{db: db}
}

func (r *SQLiteChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE channel_id = ?`
	return scanSQLiteChannel(r.db.QueryRowContext(ctx, query, channelID))
}

func (r *SQLiteChannelRepo) FindByID(ctx context.Context, id int64) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = ?`
	return scanSQLiteChannel(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteChannelRepo) Upsert(ctx context.Context, channelID, url string) (*model.Channel, error) {
	query := `
		INSERT INTO channels (channel_id, url)
		VALUES (?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET url = excluded.url
		RETURNING ` + channelColumns
	return scanSQLiteChannel(r.db.QueryRowContext(ctx, query, channelID, url))
}

func (r *SQLiteChannelRepo) SaveThemes(ctx context.Context, themes map[int64]*string) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		for id, theme := range themes {
			if _, err := tx.ExecContext(ctx, `UPDATE channels SET theme_summary = ? WHERE id = ?`, theme, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteChannelRepo) FindAll(ctx context.Context) ([]model.Channel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		var theme sql.NullString
		if err := rows.Scan(&ch.ID, &ch.ChannelID, &ch.URL, &theme); err != nil {
			return nil, err
		}
		ch.ThemeSummary = nullableString(theme)
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// SQLiteVideoRepo is the embedded-database counterpart of VideoRepo.
// Timestamps are stored as RFC 3339 text.
type SQLiteVideoRepo struct {
	db *sql.DB
}

func NewSQLiteVideoRepo(db *sql.DB) *SQLiteVideoRepo {
	return &SQLiteVideoRepo{db: db}
}

func (r *SQLiteVideoRepo) FindByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = ?`
	return scanSQLiteVideo(r.db.QueryRowContext(ctx, query, videoID))
}

func (r *SQLiteVideoRepo) Upsert(ctx context.Context, v model.ParsedVideo, channelKey int64) (*model.Video, error) {
	query := `
		INSERT INTO videos (video_id, title, description, published_at, created_at, channel_key)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (video_id) DO UPDATE
		SET title = excluded.title,
		    description = excluded.description,
		    published_at = excluded.published_at,
		    channel_key = excluded.channel_key
		RETURNING ` + videoColumns
	now := time.Now().UTC().Format(time.RFC3339Nano)
	published := v.PublishedAt.UTC().Format(time.RFC3339Nano)
	return scanSQLiteVideo(r.db.QueryRowContext(ctx, query, v.VideoID, v.Title, v.Description, published, now, channelKey))
}

func (r *SQLiteVideoRepo) SaveLabels(ctx context.Context, labels map[int64]string) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		for id, label := range labels {
			if _, err := tx.ExecContext(ctx, `UPDATE videos SET topic_label = ? WHERE id = ?`, label, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteVideoRepo) FindAll(ctx context.Context) ([]model.Video, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanSQLiteVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteChannel(row rowScanner) (*model.Channel, error) {
	var ch model.Channel
	var theme sql.NullString
	err := row.Scan(&ch.ID, &ch.ChannelID, &ch.URL, &theme)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ch.ThemeSummary = nullableString(theme)
	return &ch, nil
}

func scanSQLiteVideo(row rowScanner) (*model.Video, error) {
	var v model.Video
	var published, created string
	var label sql.NullString
	err := row.Scan(&v.ID, &v.VideoID, &v.Title, &v.Description, &published, &created, &label, &v.ChannelKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if v.PublishedAt, err = time.Parse(time.RFC3339Nano, published); err != nil {
		return nil, fmt.Errorf("video %s published_at: %w", v.VideoID, err)
	}
	if v.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("video %s created_at: %w", v.VideoID, err)
	}
	v.TopicLabel = nullableString(label)
	return &v, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
