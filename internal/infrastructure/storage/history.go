package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// TickRow - итог одного завершенного тика.
type TickRow struct {
	Tick      int    `json:"tick"`
	Score     int    `json:"score"`
	Hivelings int    `json:"hivelings"`
	Food      int    `json:"food"`
	Trails    int    `json:"trails"`
	Digest    string `json:"digest"`
}

// History - журнал тиков и снапшотов в SQLite.
type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			score INTEGER NOT NULL,
			hivelings INTEGER NOT NULL,
			food INTEGER NOT NULL,
			trails INTEGER NOT NULL,
			digest TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			tick INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordTick пишет итог тика. Повторная запись того же тика (после resume) его перезаписывает.
func (h *History) RecordTick(ctx context.Context, row TickRow) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ticks (tick, score, hivelings, food, trails, digest) VALUES (?, ?, ?, ?, ?, ?)`,
		row.Tick, row.Score, row.Hivelings, row.Food, row.Trails, row.Digest,
	)
	return err
}

func (h *History) RecordSnapshot(ctx context.Context, tick int, path string) error {
	_, err := h.db.ExecContext(ctx, `INSERT OR REPLACE INTO snapshots (tick, path) VALUES (?, ?)`, tick, path)
	return err
}

// LatestSnapshot возвращает самый поздний записанный снапшот.
func (h *History) LatestSnapshot(ctx context.Context) (tick int, path string, ok bool, err error) {
	err = h.db.QueryRowContext(ctx, `SELECT tick, path FROM snapshots ORDER BY tick DESC LIMIT 1`).Scan(&tick, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return tick, path, true, nil
}

// Ticks возвращает до limit тиков начиная с from, по возрастанию.
func (h *History) Ticks(ctx context.Context, from, limit int) ([]TickRow, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT tick, score, hivelings, food, trails, digest FROM ticks WHERE tick >= ? ORDER BY tick LIMIT ?`,
		from, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TickRow, 0)
	for rows.Next() {
		var r TickRow
		if err := rows.Scan(&r.Tick, &r.Score, &r.Hivelings, &r.Food, &r.Trails, &r.Digest); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
