package ledger

import (
	"testing"
	"time"

	"github.com/rcosta/nutrivision/internal/store"
)

func dayRecord(id string, ts time.Time, meal store.MealType, cals, protein, carbs, fat float64) store.AnalysisRecord {
	return store.AnalysisRecord{
		ID:        id,
		OwnerID:   "u1",
		Timestamp: ts.UnixMilli(),
		MealType:  meal,
		FoodName:  "food " + id,
		Calories:  cals,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
	}
}

func TestBuildDayViewTotals(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	records := []store.AnalysisRecord{
		dayRecord("r1", day.Add(8*time.Hour), store.MealBreakfast, 400, 20, 50, 12),
		dayRecord("r2", day.Add(13*time.Hour), store.MealLunch, 650, 45, 70, 20),
		dayRecord("r3", day.Add(19*time.Hour), store.MealDinner, 550, 40, 45, 18),
	}

	goals := store.UserGoals{Calories: 2000, Protein: 140, Carbs: 220, Fat: 65, Water: 2500}
	view := BuildDayView("u1", "2026-08-30", records, goals)

	if view.TotalCalories != 1600 {
		t.Fatalf("expected 1600 kcal, got %.0f", view.TotalCalories)
	}
	if view.TotalProtein != 105 || view.TotalCarbs != 165 || view.TotalFat != 50 {
		t.Fatalf("unexpected macros: P%.0f C%.0f F%.0f", view.TotalProtein, view.TotalCarbs, view.TotalFat)
	}
	if view.Remaining != 400 {
		t.Fatalf("expected 400 remaining, got %.0f", view.Remaining)
	}
	if view.Count() != 3 {
		t.Fatalf("expected 3 entries, got %d", view.Count())
	}
}

func TestBuildDayViewFiltersDayAndOwner(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	records := []store.AnalysisRecord{
		dayRecord("same-day", day.Add(12*time.Hour), store.MealLunch, 500, 0, 0, 0),
		dayRecord("day-before", day.Add(-2*time.Hour), store.MealDinner, 800, 0, 0, 0),
		dayRecord("day-after", day.Add(25*time.Hour), store.MealBreakfast, 300, 0, 0, 0),
	}
	other := dayRecord("other-owner", day.Add(12*time.Hour), store.MealLunch, 999, 0, 0, 0)
	other.OwnerID = "u2"
	records = append(records, other)

	view := BuildDayView("u1", "2026-08-30", records, DefaultGoals)
	if view.Count() != 1 {
		t.Fatalf("expected 1 entry on the day, got %d", view.Count())
	}
	if view.TotalCalories != 500 {
		t.Fatalf("expected 500 kcal, got %.0f", view.TotalCalories)
	}
}

func TestBuildDayViewEmptyDay(t *testing.T) {
	view := BuildDayView("u1", "2026-08-30", nil, DefaultGoals)
	if view.Count() != 0 {
		t.Fatalf("expected empty view, got %d entries", view.Count())
	}
	if view.TotalCalories != 0 {
		t.Fatalf("expected zero totals, got %.0f", view.TotalCalories)
	}
	if view.Remaining != DefaultGoals.Calories {
		t.Fatalf("expected remaining == goal, got %.0f", view.Remaining)
	}
}

func TestBuildDayViewRemainingFloor(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	records := []store.AnalysisRecord{
		dayRecord("r1", day.Add(12*time.Hour), store.MealLunch, 2600, 0, 0, 0),
	}
	view := BuildDayView("u1", "2026-08-30", records, store.UserGoals{Calories: 2000})
	if view.Remaining != 0 {
		t.Fatalf("remaining must floor at zero, got %.0f", view.Remaining)
	}
}

func TestBuildDayViewDefaultGoals(t *testing.T) {
	view := BuildDayView("u1", "2026-08-30", nil, store.UserGoals{})
	if view.Goals != DefaultGoals {
		t.Fatalf("expected default goals, got %+v", view.Goals)
	}
}

func TestBuildDayViewUnknownMealGroupsAsSnack(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	rec := dayRecord("r1", day.Add(12*time.Hour), "elevenses", 100, 0, 0, 0)

	view := BuildDayView("u1", "2026-08-30", []store.AnalysisRecord{rec}, DefaultGoals)
	if len(view.Meals[store.MealSnack]) != 1 {
		t.Fatalf("expected unknown meal under snack, got %+v", view.Meals)
	}
}

func TestBuildDayViewMixedMeals(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	records := []store.AnalysisRecord{
		dayRecord("b", day.Add(8*time.Hour), store.MealBreakfast, 200, 0, 0, 0),
		dayRecord("uncategorized", day.Add(16*time.Hour), "", 150, 0, 0, 0),
	}

	view := BuildDayView("u1", "2026-08-30", records, DefaultGoals)
	if view.TotalCalories != 350 {
		t.Fatalf("expected 350 kcal, got %.0f", view.TotalCalories)
	}
	if len(view.Meals[store.MealBreakfast]) != 1 || len(view.Meals[store.MealSnack]) != 1 {
		t.Fatalf("unexpected grouping: %+v", view.Meals)
	}
	if view.Meals[store.MealSnack][0].ID != "uncategorized" {
		t.Fatal("missing meal category should group under snack")
	}
}

func TestBuildDayViewStableOrder(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	ts := day.Add(12 * time.Hour)
	records := []store.AnalysisRecord{
		dayRecord("first", ts, store.MealLunch, 100, 0, 0, 0),
		dayRecord("second", ts, store.MealLunch, 200, 0, 0, 0),
		dayRecord("earlier", day.Add(8*time.Hour), store.MealLunch, 50, 0, 0, 0),
	}

	view := BuildDayView("u1", "2026-08-30", records, DefaultGoals)
	lunch := view.Meals[store.MealLunch]
	if len(lunch) != 3 {
		t.Fatalf("expected 3 lunch entries, got %d", len(lunch))
	}
	if lunch[0].ID != "earlier" || lunch[1].ID != "first" || lunch[2].ID != "second" {
		t.Fatalf("unexpected order: %s, %s, %s", lunch[0].ID, lunch[1].ID, lunch[2].ID)
	}
}

func TestEntriesMealOrder(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	records := []store.AnalysisRecord{
		dayRecord("dinner", day.Add(19*time.Hour), store.MealDinner, 0, 0, 0, 0),
		dayRecord("breakfast", day.Add(8*time.Hour), store.MealBreakfast, 0, 0, 0, 0),
		dayRecord("snack", day.Add(16*time.Hour), store.MealSnack, 0, 0, 0, 0),
		dayRecord("lunch", day.Add(12*time.Hour), store.MealLunch, 0, 0, 0, 0),
	}

	view := BuildDayView("u1", "2026-08-30", records, DefaultGoals)
	entries := view.Entries()
	want := []string{"breakfast", "lunch", "dinner", "snack"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, entries[i].ID)
		}
	}
}

func TestDayKeyHelpers(t *testing.T) {
	late := time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local)
	early := time.Date(2026, 8, 31, 0, 1, 0, 0, time.Local)

	if DayKeyOf(late) != "2026-08-30" {
		t.Fatalf("unexpected key: %s", DayKeyOf(late))
	}
	if SameDay(late, early) {
		t.Fatal("different calendar days reported as same")
	}

	start := StartOfDay(late)
	if start.Hour() != 0 || DayKeyOf(start) != "2026-08-30" {
		t.Fatalf("unexpected start of day: %v", start)
	}

	shifted := ShiftDay(late, -1)
	if DayKeyOf(shifted) != "2026-08-29" {
		t.Fatalf("unexpected shifted day: %s", DayKeyOf(shifted))
	}
	if shifted.Hour() != 23 {
		t.Fatal("shift must keep the clock time")
	}
}
