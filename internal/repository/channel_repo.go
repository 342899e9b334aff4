package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

const channelColumns = `id, channel_id, url, theme_summary`

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// FindByChannelID returns a single channel by its YouTube channel ID.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE channel_id = $1`
	return scanChannel(r.pool.QueryRow(ctx, query, channelID))
}

// FindByID returns a single channel by its internal key.
func (r *ChannelRepo) FindByID(ctx context.Context, id int64) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`
	return scanChannel(r.pool.QueryRow(ctx, query, id))
}

// Upsert creates the channel or, if the channel ID is already known, updates its URL.
// A single statement keeps concurrent ingests of the same channel from racing.
func (r *ChannelRepo) Upsert(ctx context.Context, channelID, url string) (*model.Channel, error) {
	query := `
		INSERT INTO channels (channel_id, url)
		VALUES ($1, $2)
		ON CONFLICT (channel_id) DO UPDATE SET url = EXCLUDED.url
		RETURNING ` + channelColumns
	return scanChannel(r.pool.QueryRow(ctx, query, channelID, url))
}

// SaveThemes overwrites the theme summary of each channel key in one transaction.
// A nil summary clears the column.
func (r *ChannelRepo) SaveThemes(ctx context.Context, themes map[int64]*string) error {
	if len(themes) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for id, theme := range themes {
		batch.Queue(`UPDATE channels SET theme_summary = $1 WHERE id = $2`, theme, id)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// FindAll returns every channel ordered by internal key.
func (r *ChannelRepo) FindAll(ctx context.Context) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ID, &ch.ChannelID, &ch.URL, &ch.ThemeSummary); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func scanChannel(row pgx.Row) (*model.Channel, error) {
	var ch model.Channel
	err := row.Scan(&ch.ID, &ch.ChannelID, &ch.URL, &ch.ThemeSummary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
