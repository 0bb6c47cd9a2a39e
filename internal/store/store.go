package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs
// migrations. An error here means durable storage is unavailable; no
// persistence operation can succeed without it.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One logical writer; the app runs in a single process.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		id            TEXT PRIMARY KEY,
		owner_id      TEXT NOT NULL,
		timestamp     INTEGER NOT NULL,
		meal_type     TEXT NOT NULL DEFAULT 'snack',
		food_name     TEXT NOT NULL DEFAULT '',
		weight_grams  REAL NOT NULL DEFAULT 0,
		calories      REAL NOT NULL DEFAULT 0,
		carbs         REAL NOT NULL DEFAULT 0,
		protein       REAL NOT NULL DEFAULT 0,
		fat           REAL NOT NULL DEFAULT 0,
		confidence    REAL NOT NULL DEFAULT 0,
		health_score  REAL NOT NULL DEFAULT 0,
		ingredients   TEXT NOT NULL DEFAULT '[]',
		insights      TEXT NOT NULL DEFAULT '[]',
		image_ref     TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_records_owner     ON records(owner_id);
	CREATE INDEX IF NOT EXISTS idx_records_timestamp ON records(timestamp);

	CREATE TABLE IF NOT EXISTS workouts (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL,
		timestamp    INTEGER NOT NULL,
		split        TEXT NOT NULL DEFAULT 'FullBody',
		focus_group  TEXT NOT NULL DEFAULT '',
		exercises    TEXT NOT NULL DEFAULT '[]',
		completed    INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_owner     ON workouts(owner_id);
	CREATE INDEX IF NOT EXISTS idx_workouts_timestamp ON workouts(timestamp);

	CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		joined_at      INTEGER NOT NULL DEFAULT 0,
		weight_kg      REAL NOT NULL DEFAULT 0,
		height_cm      REAL NOT NULL DEFAULT 0,
		age            INTEGER NOT NULL DEFAULT 0,
		gender         TEXT NOT NULL DEFAULT '',
		activity_level TEXT NOT NULL DEFAULT 'moderately_active',
		weight_goal    TEXT NOT NULL DEFAULT 'maintain',
		goal_calories  REAL NOT NULL DEFAULT 2000,
		goal_protein   REAL NOT NULL DEFAULT 140,
		goal_carbs     REAL NOT NULL DEFAULT 220,
		goal_fat       REAL NOT NULL DEFAULT 65,
		goal_water     INTEGER NOT NULL DEFAULT 2500
	);

	CREATE TABLE IF NOT EXISTS day_status (
		owner_id     TEXT NOT NULL,
		day          TEXT NOT NULL,
		finished_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		PRIMARY KEY (owner_id, day)
	);

	CREATE TABLE IF NOT EXISTS water_levels (
		owner_id   TEXT PRIMARY KEY,
		value      INTEGER NOT NULL DEFAULT 0,
		as_of_day  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('theme',        'dark'),
		('water_step',   '250'),
		('session_user', '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/nutrivision/nutrivision.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "nutrivision", "nutrivision.db"), nil
}
