package store

import (
	"database/sql"
	"fmt"
)

// SaveUser inserts or fully replaces the user profile.
func (s *Store) SaveUser(u User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, name, email, joined_at, weight_kg, height_cm, age, gender,
			activity_level, weight_goal, goal_calories, goal_protein, goal_carbs, goal_fat, goal_water)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name           = excluded.name,
			email          = excluded.email,
			joined_at      = excluded.joined_at,
			weight_kg      = excluded.weight_kg,
			height_cm      = excluded.height_cm,
			age            = excluded.age,
			gender         = excluded.gender,
			activity_level = excluded.activity_level,
			weight_goal    = excluded.weight_goal,
			goal_calories  = excluded.goal_calories,
			goal_protein   = excluded.goal_protein,
			goal_carbs     = excluded.goal_carbs,
			goal_fat       = excluded.goal_fat,
			goal_water     = excluded.goal_water`,
		u.ID, u.Name, u.Email, u.JoinedAt, u.WeightKg, u.HeightCm, u.Age, u.Gender,
		u.ActivityLevel, u.WeightGoal,
		u.Goals.Calories, u.Goals.Protein, u.Goals.Carbs, u.Goals.Fat, u.Goals.Water,
	)
	if err != nil {
		return fmt.Errorf("save user %s: %w", u.ID, err)
	}
	return nil
}

// GetUser returns the user, or nil when no profile exists for the ID.
func (s *Store) GetUser(id string) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(
		`SELECT id, name, email, joined_at, weight_kg, height_cm, age, gender,
			activity_level, weight_goal, goal_calories, goal_protein, goal_carbs, goal_fat, goal_water
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.JoinedAt, &u.WeightKg, &u.HeightCm, &u.Age, &u.Gender,
		&u.ActivityLevel, &u.WeightGoal,
		&u.Goals.Calories, &u.Goals.Protein, &u.Goals.Carbs, &u.Goals.Fat, &u.Goals.Water)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}
