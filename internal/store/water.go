package store

import (
	"database/sql"
	"fmt"
)

// GetWater returns the owner's stored counter, or nil when never set.
// The caller decides whether the stored day still applies.
func (s *Store) GetWater(ownerID string) (*WaterLevel, error) {
	w := &WaterLevel{}
	err := s.db.QueryRow(
		`SELECT owner_id, value, as_of_day FROM water_levels WHERE owner_id = ?`, ownerID,
	).Scan(&w.OwnerID, &w.Value, &w.AsOfDay)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get water %s: %w", ownerID, err)
	}
	return w, nil
}

// SetWater stores the counter value together with the day it applies
// to, one row per owner.
func (s *Store) SetWater(ownerID string, value int, asOfDay string) error {
	_, err := s.db.Exec(
		`INSERT INTO water_levels (owner_id, value, as_of_day) VALUES (?, ?, ?)
		 ON CONFLICT(owner_id) DO UPDATE SET value = excluded.value, as_of_day = excluded.as_of_day`,
		ownerID, value, asOfDay,
	)
	if err != nil {
		return fmt.Errorf("set water %s: %w", ownerID, err)
	}
	return nil
}
