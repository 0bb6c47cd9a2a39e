package ledger

import (
	"sort"

	"github.com/rcosta/nutrivision/internal/store"
)

// DefaultGoals are applied when a profile has no goals of its own.
var DefaultGoals = store.UserGoals{
	Calories: 2000,
	Protein:  140,
	Carbs:    220,
	Fat:      65,
	Water:    2500,
}

// DayView is one calendar day of the diary: records grouped by meal
// plus the day's nutritional totals and remaining calorie budget.
type DayView struct {
	Day           string
	Meals         map[store.MealType][]store.AnalysisRecord
	TotalCalories float64
	TotalProtein  float64
	TotalCarbs    float64
	TotalFat      float64
	Goals         store.UserGoals
	Remaining     float64
}

// Count returns the number of records in the view.
func (v DayView) Count() int {
	n := 0
	for _, recs := range v.Meals {
		n += len(recs)
	}
	return n
}

// Entries returns the day's records in meal display order, ascending
// by timestamp within each meal.
func (v DayView) Entries() []store.AnalysisRecord {
	var out []store.AnalysisRecord
	for _, mt := range store.MealTypes {
		out = append(out, v.Meals[mt]...)
	}
	return out
}

// BuildDayView filters records to one owner and one local calendar
// day, groups them into the four meals (unknown meal types count as
// snack) and sums the nutrition fields. It is a pure function of its
// inputs: an empty day yields zero totals and Remaining equal to the
// calorie goal. Records with equal timestamps keep their relative
// input order.
func BuildDayView(ownerID, day string, records []store.AnalysisRecord, goals store.UserGoals) DayView {
	if goals.Calories <= 0 {
		goals = DefaultGoals
	}

	view := DayView{
		Day:   day,
		Goals: goals,
		Meals: make(map[store.MealType][]store.AnalysisRecord, len(store.MealTypes)),
	}

	var filtered []store.AnalysisRecord
	for _, r := range records {
		if r.OwnerID != ownerID {
			continue
		}
		if DayKeyOf(r.Time()) != day {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp < filtered[j].Timestamp
	})

	for _, r := range filtered {
		view.TotalCalories += r.Calories
		view.TotalProtein += r.Protein
		view.TotalCarbs += r.Carbs
		view.TotalFat += r.Fat

		mt := store.NormalizeMealType(r.MealType)
		view.Meals[mt] = append(view.Meals[mt], r)
	}

	view.Remaining = goals.Calories - view.TotalCalories
	if view.Remaining < 0 {
		view.Remaining = 0
	}
	return view
}
