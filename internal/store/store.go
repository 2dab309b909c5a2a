// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lumen/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Setting keys.
const (
	KeyDisplayMode       = "display.mode"
	KeyConsecrationStart = "consecration.start"
)

// timeLayout keeps stored timestamps fixed-width UTC so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Store wraps SQLite access for the session log and settings.
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
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uid TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			duration_seconds INTEGER,
			meditation_type TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordSession appends a completed session to the log.
func (s *Store) RecordSession(ctx context.Context, category model.MysteryCategory, completedAt time.Time, durationSeconds *int, meditationType *string) (model.PrayerSessionRecord, error) {
	if !category.Valid() {
		return model.PrayerSessionRecord{}, fmt.Errorf("invalid category %s", category)
	}
	rec := model.PrayerSessionRecord{
		UID:             uuid.NewString(),
		Category:        category,
		CompletedAt:     completedAt,
		DurationSeconds: durationSeconds,
		MeditationType:  meditationType,
	}
	var duration sql.NullInt64
	if durationSeconds != nil {
		duration = sql.NullInt64{Int64: int64(*durationSeconds), Valid: true}
	}
	var medType sql.NullString
	if meditationType != nil {
		medType = sql.NullString{String: *meditationType, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (uid, category, completed_at, duration_seconds, meditation_type)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.UID,
		category.String(),
		completedAt.UTC().Format(timeLayout),
		duration,
		medType,
	)
	if err != nil {
		return model.PrayerSessionRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PrayerSessionRecord{}, err
	}
	rec.ID = id
	return rec, nil
}

// AllSessions returns the whole session log ordered by completion time.
func (s *Store) AllSessions(ctx context.Context) ([]model.PrayerSessionRecord, error) {
	return s.ListSessions(ctx, model.StatsConfig{})
}

// ListSessions returns sessions filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.PrayerSessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, cfg.Category.String())
	}
	if cfg.Since != nil {
		clauses = append(clauses, "completed_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, uid, category, completed_at, duration_seconds, meditation_type
		FROM sessions
		WHERE %s
		ORDER BY completed_at ASC, id ASC`, strings.Join(clauses, " AND "))
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

	var sessions []model.PrayerSessionRecord
	for rows.Next() {
		var (
			rec         model.PrayerSessionRecord
			category    string
			completedAt string
			duration    sql.NullInt64
			medType     sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.UID, &category, &completedAt, &duration, &medType); err != nil {
			return nil, err
		}
		rec.Category, err = model.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", rec.ID, err)
		}
		parsed, err := time.Parse(timeLayout, completedAt)
		if err != nil {
			return nil, err
		}
		rec.CompletedAt = parsed.Local()
		if duration.Valid {
			d := int(duration.Int64)
			rec.DurationSeconds = &d
		}
		if medType.Valid {
			m := medType.String
			rec.MeditationType = &m
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteSession removes a session by id. It is only reached through an
// explicit user request.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete session %d: %w", id, ErrSessionNotFound)
	}
	return nil
}

// Setting returns a stored value. ok is false when the key is unset.
func (s *Store) Setting(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting stores or replaces a value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// DisplayMode returns the persisted display mode, or fallback when unset.
func (s *Store) DisplayMode(ctx context.Context, fallback model.DisplayMode) (model.DisplayMode, error) {
	raw, ok, err := s.Setting(ctx, KeyDisplayMode)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	mode, err := model.ParseDisplayMode(raw)
	if err != nil {
		return fallback, fmt.Errorf("stored display mode: %w", err)
	}
	return mode, nil
}

// SetDisplayMode persists the display mode preference.
func (s *Store) SetDisplayMode(ctx context.Context, mode model.DisplayMode) error {
	return s.SetSetting(ctx, KeyDisplayMode, mode.String())
}
