package repository

import (
	"context"
	"fmt"
	"time"
)

// MatchRecord is one finished match in the archive.
type MatchRecord struct {
	GameID      string
	WinnerID    string
	WinnerName  string
	PlayerCount int
	FinishedAt  time.Time
}

// MatchRepository archives finished matches. The game engine never touches
// this; the transport layer writes a record once a game reaches ENDED.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a match repository.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// EnsureSchema creates the archive table if it does not exist.
func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_results (
			id           BIGSERIAL PRIMARY KEY,
			game_id      TEXT NOT NULL,
			winner_id    TEXT NOT NULL,
			winner_name  TEXT NOT NULL,
			player_count INT NOT NULL,
			finished_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating match_results table: %w", err)
	}
	return nil
}

// SaveResult writes one finished match.
func (r *MatchRepository) SaveResult(ctx context.Context, rec MatchRecord) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO match_results (game_id, winner_id, winner_name, player_count, finished_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.GameID, rec.WinnerID, rec.WinnerName, rec.PlayerCount, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting match result: %w", err)
	}
	return nil
}

// RecentResults returns the latest archived matches, newest first.
func (r *MatchRepository) RecentResults(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT game_id, winner_id, winner_name, player_count, finished_at
		FROM match_results
		ORDER BY finished_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying match results: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(&rec.GameID, &rec.WinnerID, &rec.WinnerName, &rec.PlayerCount, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning match result: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
