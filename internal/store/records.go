package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// PutRecord inserts or fully replaces the record with the same ID.
// The owner is fixed at first insert and never updated on conflict.
func (s *Store) PutRecord(r AnalysisRecord) error {
	ingredients, err := json.Marshal(stringList(r.Ingredients))
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	insights, err := json.Marshal(stringList(r.Insights))
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO records (id, owner_id, timestamp, meal_type, food_name, weight_grams,
			calories, carbs, protein, fat, confidence, health_score, ingredients, insights, image_ref)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			timestamp    = excluded.timestamp,
			meal_type    = excluded.meal_type,
			food_name    = excluded.food_name,
			weight_grams = excluded.weight_grams,
			calories     = excluded.calories,
			carbs        = excluded.carbs,
			protein      = excluded.protein,
			fat          = excluded.fat,
			confidence   = excluded.confidence,
			health_score = excluded.health_score,
			ingredients  = excluded.ingredients,
			insights     = excluded.insights,
			image_ref    = excluded.image_ref`,
		r.ID, r.OwnerID, r.Timestamp, string(NormalizeMealType(r.MealType)), r.FoodName, r.WeightGrams,
		r.Calories, r.Carbs, r.Protein, r.Fat, r.Confidence, r.HealthScore,
		string(ingredients), string(insights), r.ImageRef,
	)
	if err != nil {
		return fmt.Errorf("put record %s: %w", r.ID, err)
	}
	return nil
}

// GetRecord returns the record, or nil when no record has that ID.
func (s *Store) GetRecord(id string) (*AnalysisRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, owner_id, timestamp, meal_type, food_name, weight_grams,
			calories, carbs, protein, fat, confidence, health_score, ingredients, insights, image_ref
		 FROM records WHERE id = ?`, id,
	)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return r, nil
}

// DeleteRecord removes the record if present; deleting an absent ID is
// a no-op.
func (s *Store) DeleteRecord(id string) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// ListRecords returns every record, newest first. An empty ownerID
// returns records for all owners.
func (s *Store) ListRecords(ownerID string) ([]AnalysisRecord, error) {
	query := `SELECT id, owner_id, timestamp, meal_type, food_name, weight_grams,
		calories, carbs, protein, fat, confidence, health_score, ingredients, insights, image_ref
		FROM records`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*AnalysisRecord, error) {
	r := &AnalysisRecord{}
	var mealType, ingredients, insights string
	err := row.Scan(&r.ID, &r.OwnerID, &r.Timestamp, &mealType, &r.FoodName, &r.WeightGrams,
		&r.Calories, &r.Carbs, &r.Protein, &r.Fat, &r.Confidence, &r.HealthScore,
		&ingredients, &insights, &r.ImageRef)
	if err != nil {
		return nil, err
	}
	r.MealType = MealType(mealType)
	json.Unmarshal([]byte(ingredients), &r.Ingredients)
	json.Unmarshal([]byte(insights), &r.Insights)
	return r, nil
}

// stringList keeps JSON columns as [] instead of null.
func stringList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
