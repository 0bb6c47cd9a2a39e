// Package analyze defines the boundary with the external food-image
// analysis and workout-generation service, and the lenient decoding
// applied to its payloads before they enter the diary.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rcosta/nutrivision/internal/store"
)

// Number is a forgiving float64: it accepts JSON numbers and numeric
// strings, and coerces anything else (null, text, booleans) to zero.
// The service occasionally returns "250" or null where a number was
// asked for; a best-effort save beats rejecting the whole analysis.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(f)
			return nil
		}
	}
	*n = 0
	return nil
}

// NutritionData is the structured result of a food-image analysis.
type NutritionData struct {
	FoodName    string   `json:"foodName"`
	WeightGrams Number   `json:"weightGrams"`
	Calories    Number   `json:"calories"`
	Carbs       Number   `json:"carbs"`
	Protein     Number   `json:"protein"`
	Fat         Number   `json:"fat"`
	Confidence  Number   `json:"confidence"`  // 0-100
	HealthScore Number   `json:"healthScore"` // 0-10
	Ingredients []string `json:"ingredients"`
	Insights    []string `json:"insights"`
}

// WorkoutPlan is the structured result of workout generation.
type WorkoutPlan struct {
	Split      string                  `json:"split"`
	FocusGroup string                  `json:"focusGroup"`
	Exercises  []store.WorkoutExercise `json:"exercises"`
}

// Analyzer is the external analysis service. Implementations call out
// over the network; the diary only depends on this interface.
type Analyzer interface {
	AnalyzeFood(ctx context.Context, image []byte) (NutritionData, error)
	GenerateWorkout(ctx context.Context, split, focusGroup string) (WorkoutPlan, error)
}

// DecodeNutrition parses a raw analysis payload. Malformed numeric
// fields decode to zero rather than failing the record.
func DecodeNutrition(b []byte) (NutritionData, error) {
	var d NutritionData
	if err := json.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("decode nutrition payload: %w", err)
	}
	return d, nil
}

// DecodeWorkout parses a raw workout payload. Exercises always start
// uncompleted.
func DecodeWorkout(b []byte) (WorkoutPlan, error) {
	var p WorkoutPlan
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("decode workout payload: %w", err)
	}
	for i := range p.Exercises {
		p.Exercises[i].Completed = false
	}
	return p, nil
}

// InferMealType picks a default meal slot from the time of day.
func InferMealType(t time.Time) store.MealType {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 11:
		return store.MealBreakfast
	case hour >= 11 && hour < 15:
		return store.MealLunch
	case hour >= 18:
		return store.MealDinner
	default:
		return store.MealSnack
	}
}
