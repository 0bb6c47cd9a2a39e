package store

import "time"

// MealType is the diary slot a record is grouped under.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the diary slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// NormalizeMealType maps empty or unrecognized values to snack.
func NormalizeMealType(m MealType) MealType {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return m
	}
	return MealSnack
}

// AnalysisRecord is one saved food analysis. ID and OwnerID never
// change once persisted; every other field may be overwritten in place
// by a later put with the same ID.
type AnalysisRecord struct {
	ID          string
	OwnerID     string
	Timestamp   int64 // epoch milliseconds; decides the record's calendar day
	MealType    MealType
	FoodName    string
	WeightGrams float64
	Calories    float64
	Carbs       float64
	Protein     float64
	Fat         float64
	Confidence  float64 // 0-100
	HealthScore float64 // 0-10
	Ingredients []string
	Insights    []string
	ImageRef    string
}

// Time returns the record's timestamp as a local time.
func (r AnalysisRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

type WorkoutExercise struct {
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	Rest      string `json:"rest"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

// WorkoutSession is stored with the same identity rules as
// AnalysisRecord.
type WorkoutSession struct {
	ID         string
	OwnerID    string
	Timestamp  int64
	Split      string // FullBody, UpperLower, ABC, ABCD, ABCDE
	FocusGroup string
	Exercises  []WorkoutExercise
	Completed  bool
}

func (w WorkoutSession) Time() time.Time {
	return time.UnixMilli(w.Timestamp)
}

// UserGoals are daily targets; Water is in milliliters.
type UserGoals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Water    int
}

type User struct {
	ID            string
	Name          string
	Email         string
	JoinedAt      int64
	WeightKg      float64
	HeightCm      float64
	Age           int
	Gender        string
	ActivityLevel string // sedentary, lightly_active, moderately_active, very_active
	WeightGoal    string // lose_weight, maintain, gain_muscle
	Goals         UserGoals
}

// DayStatus marks a calendar day as finished. Absence means the day is
// open; at most one row exists per owner and day.
type DayStatus struct {
	OwnerID    string
	Day        string // local calendar day key, YYYY-MM-DD
	FinishedAt time.Time
}

// WaterLevel is the rolling water counter. The value only applies to
// AsOfDay; readers treat a stale AsOfDay as zero.
type WaterLevel struct {
	OwnerID string
	Value   int // ml
	AsOfDay string
}

type Setting struct {
	Key   string
	Value string
}
