// Package store handles SQLite persistence for the leaderboard.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/runtally/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			time_seconds REAL NOT NULL,
			depth_reached REAL NOT NULL,
			achievements INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			victory INTEGER NOT NULL,
			game_mode INTEGER NOT NULL,
			config TEXT NOT NULL,
			is_legacy INTEGER NOT NULL,
			legacy_setting_count INTEGER NOT NULL,
			score_base REAL NOT NULL,
			score_mult REAL NOT NULL,
			score_bonus REAL NOT NULL,
			score_total REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_score_total ON runs(score_total);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a scored run and returns its row id.
func (s *Store) InsertRun(ctx context.Context, stats model.RunStats) (int64, error) {
	cfg, err := json.Marshal(stats.Config)
	if err != nil {
		return 0, fmt.Errorf("failed to encode config: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (recorded_at, time_seconds, depth_reached, achievements, deaths, victory, game_mode, config, is_legacy, legacy_setting_count, score_base, score_mult, score_bonus, score_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RecordedAt.Format(time.RFC3339Nano),
		stats.Time,
		stats.DepthReached,
		int64(stats.Achievements),
		stats.Deaths,
		boolToInt(stats.Victory),
		int64(stats.GameMode),
		string(cfg),
		boolToInt(stats.IsLegacy),
		stats.LegacySettingsCount,
		stats.ScoreBase,
		stats.ScoreMult,
		stats.ScoreBonus,
		stats.ScoreTotal,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs matching the board filters, ordered by recording
// time ascending.
func (s *Store) ListRuns(ctx context.Context, cfg model.BoardConfig) ([]model.RunStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.VictoryOnly {
		clauses = append(clauses, "victory = 1")
	}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, recorded_at, time_seconds, depth_reached, achievements, deaths, victory, game_mode, config, is_legacy, legacy_setting_count, score_base, score_mult, score_bonus, score_total
		FROM runs
		WHERE %s
		ORDER BY recorded_at ASC`, strings.Join(clauses, " AND "))
	runs, err := s.queryRuns(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

// TopRuns returns the highest-scoring runs, best first.
func (s *Store) TopRuns(ctx context.Context, cfg model.BoardConfig) ([]model.RunStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.VictoryOnly {
		clauses = append(clauses, "victory = 1")
	}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	limit := cfg.Top
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, recorded_at, time_seconds, depth_reached, achievements, deaths, victory, game_mode, config, is_legacy, legacy_setting_count, score_base, score_mult, score_bonus, score_total
		FROM runs
		WHERE %s
		ORDER BY score_total DESC, recorded_at ASC
		LIMIT ?`, strings.Join(clauses, " AND "))
	return s.queryRuns(ctx, query, args...)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]model.RunStats, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunStats
	for rows.Next() {
		var stats model.RunStats
		var recordedAt, cfgJSON string
		var achievements, gameMode int64
		var victory, isLegacy int
		if err := rows.Scan(
			&stats.ID,
			&recordedAt,
			&stats.Time,
			&stats.DepthReached,
			&achievements,
			&stats.Deaths,
			&victory,
			&gameMode,
			&cfgJSON,
			&isLegacy,
			&stats.LegacySettingsCount,
			&stats.ScoreBase,
			&stats.ScoreMult,
			&stats.ScoreBonus,
			&stats.ScoreTotal,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		stats.RecordedAt = parsed
		stats.Achievements = model.Achievement(achievements)
		stats.GameMode = model.GameMode(gameMode)
		stats.Victory = victory != 0
		stats.IsLegacy = isLegacy != 0
		if err := json.Unmarshal([]byte(cfgJSON), &stats.Config); err != nil {
			return nil, fmt.Errorf("failed to decode config for run %d: %w", stats.ID, err)
		}
		runs = append(runs, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
