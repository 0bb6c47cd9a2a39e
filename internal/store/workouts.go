package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// PutWorkout inserts or fully replaces the session with the same ID.
func (s *Store) PutWorkout(w WorkoutSession) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}
	if w.Exercises == nil {
		exercises = []byte("[]")
	}

	_, err = s.db.Exec(
		`INSERT INTO workouts (id, owner_id, timestamp, split, focus_group, exercises, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			timestamp   = excluded.timestamp,
			split       = excluded.split,
			focus_group = excluded.focus_group,
			exercises   = excluded.exercises,
			completed   = excluded.completed`,
		w.ID, w.OwnerID, w.Timestamp, w.Split, w.FocusGroup, string(exercises), w.Completed,
	)
	if err != nil {
		return fmt.Errorf("put workout %s: %w", w.ID, err)
	}
	return nil
}

// GetWorkout returns the session, or nil when absent.
func (s *Store) GetWorkout(id string) (*WorkoutSession, error) {
	row := s.db.QueryRow(
		`SELECT id, owner_id, timestamp, split, focus_group, exercises, completed
		 FROM workouts WHERE id = ?`, id,
	)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", id, err)
	}
	return w, nil
}

func (s *Store) DeleteWorkout(id string) error {
	_, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	return nil
}

// ListWorkouts returns the owner's sessions, newest first.
func (s *Store) ListWorkouts(ownerID string) ([]WorkoutSession, error) {
	rows, err := s.db.Query(
		`SELECT id, owner_id, timestamp, split, focus_group, exercises, completed
		 FROM workouts WHERE owner_id = ? ORDER BY timestamp DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var sessions []WorkoutSession
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *w)
	}
	return sessions, rows.Err()
}

func scanWorkout(row rowScanner) (*WorkoutSession, error) {
	w := &WorkoutSession{}
	var exercises string
	err := row.Scan(&w.ID, &w.OwnerID, &w.Timestamp, &w.Split, &w.FocusGroup, &exercises, &w.Completed)
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(exercises), &w.Exercises)
	return w, nil
}
