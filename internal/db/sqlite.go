package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS channels (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	channel_id    TEXT NOT NULL UNIQUE,
	url           TEXT NOT NULL,
	theme_summary TEXT
);

CREATE TABLE IF NOT EXISTS videos (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id     TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	topic_label  TEXT,
	channel_key  INTEGER NOT NULL REFERENCES channels(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_videos_channel_key ON videos (channel_key);`

// OpenSQLite opens (creating if needed) a SQLite database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between upserts
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return sqlDB, nil
}
