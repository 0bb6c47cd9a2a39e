package store

import (
	"database/sql"
	"fmt"
	"time"
)

// FinishDay marks the owner's calendar day as finished. Finishing an
// already-finished day overwrites the single existing row.
func (s *Store) FinishDay(ownerID, day string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO day_status (owner_id, day, finished_at) VALUES (?, ?, ?)
		 ON CONFLICT(owner_id, day) DO UPDATE SET finished_at = excluded.finished_at`,
		ownerID, day, now,
	)
	if err != nil {
		return fmt.Errorf("finish day %s: %w", day, err)
	}
	return nil
}

// ReopenDay removes the finished marker; reopening an open day is a
// no-op.
func (s *Store) ReopenDay(ownerID, day string) error {
	_, err := s.db.Exec(`DELETE FROM day_status WHERE owner_id = ? AND day = ?`, ownerID, day)
	if err != nil {
		return fmt.Errorf("reopen day %s: %w", day, err)
	}
	return nil
}

// DayFinished reports whether the day has a finished marker.
func (s *Store) DayFinished(ownerID, day string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM day_status WHERE owner_id = ? AND day = ?`, ownerID, day,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("day status %s: %w", day, err)
	}
	return n > 0, nil
}

// GetDayStatus returns the marker, or nil when the day is open.
func (s *Store) GetDayStatus(ownerID, day string) (*DayStatus, error) {
	ds := &DayStatus{}
	var finishedAt string
	err := s.db.QueryRow(
		`SELECT owner_id, day, finished_at FROM day_status WHERE owner_id = ? AND day = ?`,
		ownerID, day,
	).Scan(&ds.OwnerID, &ds.Day, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day status %s: %w", day, err)
	}
	ds.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
	return ds, nil
}
