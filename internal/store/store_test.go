package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id, owner string, ts time.Time) AnalysisRecord {
	return AnalysisRecord{
		ID:          id,
		OwnerID:     owner,
		Timestamp:   ts.UnixMilli(),
		MealType:    MealLunch,
		FoodName:    "Grilled chicken",
		WeightGrams: 200,
		Calories:    330,
		Carbs:       0,
		Protein:     62,
		Fat:         7,
		Confidence:  92,
		HealthScore: 8.5,
		Ingredients: []string{"chicken breast", "olive oil"},
		Insights:    []string{"High in protein"},
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/nutrivision.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Records
// ============================================================

func TestPutAndGetRecord(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())

	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRecord("r1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.FoodName != "Grilled chicken" || got.Calories != 330 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0] != "chicken breast" {
		t.Fatalf("unexpected ingredients: %v", got.Ingredients)
	}
}

func TestGetRecordAbsent(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetRecord("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent record, got %+v", got)
	}
}

func TestPutRecordOverwrites(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())
	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	rec.FoodName = "Chicken salad"
	rec.Calories = 410
	rec.MealType = MealDinner
	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRecord("r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FoodName != "Chicken salad" || got.Calories != 410 || got.MealType != MealDinner {
		t.Fatalf("overwrite not applied: %+v", got)
	}

	// Still exactly one row
	all, err := s.ListRecords("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
}

func TestPutRecordOwnerImmutable(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())
	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	rec.OwnerID = "intruder"
	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetRecord("r1")
	if got.OwnerID != "u1" {
		t.Fatalf("owner changed on conflict: %q", got.OwnerID)
	}
}

func TestPutRecordNormalizesMealType(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())
	rec.MealType = "brunch"
	if err := s.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetRecord("r1")
	if got.MealType != MealSnack {
		t.Fatalf("expected snack for unknown meal, got %q", got.MealType)
	}
}

func TestDeleteRecordIdempotent(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())
	s.PutRecord(rec)

	if err := s.DeleteRecord("r1"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetRecord("r1")
	if got != nil {
		t.Fatal("record still present after delete")
	}

	// Deleting again is fine
	if err := s.DeleteRecord("r1"); err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
}

func TestListRecordsFilterAndOrder(t *testing.T) {
	s := newTestStore(t)
	base := time.Now()
	s.PutRecord(testRecord("r1", "u1", base.Add(-2*time.Hour)))
	s.PutRecord(testRecord("r2", "u1", base))
	s.PutRecord(testRecord("r3", "u2", base.Add(-time.Hour)))

	mine, err := s.ListRecords("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(mine))
	}
	if mine[0].ID != "r2" || mine[1].ID != "r1" {
		t.Fatalf("expected newest first, got %s then %s", mine[0].ID, mine[1].ID)
	}

	all, err := s.ListRecords("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records total, got %d", len(all))
	}
}

func TestRecordEmptyListsStayEmpty(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("r1", "u1", time.Now())
	rec.Ingredients = nil
	rec.Insights = nil
	s.PutRecord(rec)

	got, _ := s.GetRecord("r1")
	if got.Ingredients == nil || got.Insights == nil {
		t.Fatal("expected empty slices, got nil")
	}
	if len(got.Ingredients) != 0 {
		t.Fatalf("unexpected ingredients: %v", got.Ingredients)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestPutAndGetWorkout(t *testing.T) {
	s := newTestStore(t)
	w := WorkoutSession{
		ID:         "w1",
		OwnerID:    "u1",
		Timestamp:  time.Now().UnixMilli(),
		Split:      "UpperLower",
		FocusGroup: "Upper",
		Exercises: []WorkoutExercise{
			{Name: "Bench press", Sets: 4, Reps: "6-8", Rest: "120s"},
			{Name: "Row", Sets: 4, Reps: "8-10", Rest: "90s", Completed: true},
		},
	}
	if err := s.PutWorkout(w); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetWorkout("w1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected workout, got nil")
	}
	if len(got.Exercises) != 2 || got.Exercises[1].Completed != true {
		t.Fatalf("exercises not preserved: %+v", got.Exercises)
	}
	if got.Split != "UpperLower" {
		t.Fatalf("unexpected split: %q", got.Split)
	}
}

func TestGetWorkoutAbsent(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetWorkout("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil for absent workout")
	}
}

func TestListWorkoutsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Now()
	s.PutWorkout(WorkoutSession{ID: "w1", OwnerID: "u1", Timestamp: base.Add(-time.Hour).UnixMilli(), Split: "ABC"})
	s.PutWorkout(WorkoutSession{ID: "w2", OwnerID: "u1", Timestamp: base.UnixMilli(), Split: "ABC"})
	s.PutWorkout(WorkoutSession{ID: "w3", OwnerID: "u2", Timestamp: base.UnixMilli(), Split: "ABC"})

	sessions, err := s.ListWorkouts("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "w2" {
		t.Fatalf("expected newest first, got %s", sessions[0].ID)
	}
}

func TestDeleteWorkout(t *testing.T) {
	s := newTestStore(t)
	s.PutWorkout(WorkoutSession{ID: "w1", OwnerID: "u1", Timestamp: time.Now().UnixMilli(), Split: "FullBody"})

	if err := s.DeleteWorkout("w1"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetWorkout("w1")
	if got != nil {
		t.Fatal("workout still present after delete")
	}
}

// ============================================================
// Users
// ============================================================

func TestSaveAndGetUser(t *testing.T) {
	s := newTestStore(t)
	u := User{
		ID:            "u1",
		Name:          "Rita",
		WeightKg:      63.5,
		HeightCm:      168,
		Age:           29,
		ActivityLevel: "very_active",
		WeightGoal:    "gain_muscle",
		Goals:         UserGoals{Calories: 2400, Protein: 160, Carbs: 250, Fat: 70, Water: 3000},
	}
	if err := s.SaveUser(u); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.Name != "Rita" || got.Goals.Calories != 2400 || got.Goals.Water != 3000 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestSaveUserOverwrites(t *testing.T) {
	s := newTestStore(t)
	u := User{ID: "u1", Name: "Rita", Goals: UserGoals{Calories: 2000}}
	s.SaveUser(u)

	u.Goals.Calories = 1800
	if err := s.SaveUser(u); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetUser("u1")
	if got.Goals.Calories != 1800 {
		t.Fatalf("expected updated goal, got %.0f", got.Goals.Calories)
	}
}

func TestGetUserAbsent(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetUser("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil for absent user")
	}
}

// ============================================================
// Day status
// ============================================================

func TestFinishAndReopenDay(t *testing.T) {
	s := newTestStore(t)

	finished, err := s.DayFinished("u1", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if finished {
		t.Fatal("fresh day should be open")
	}

	if err := s.FinishDay("u1", "2026-08-30"); err != nil {
		t.Fatal(err)
	}
	finished, _ = s.DayFinished("u1", "2026-08-30")
	if !finished {
		t.Fatal("day should be finished")
	}

	if err := s.ReopenDay("u1", "2026-08-30"); err != nil {
		t.Fatal(err)
	}
	finished, _ = s.DayFinished("u1", "2026-08-30")
	if finished {
		t.Fatal("day should be open after reopen")
	}
}

func TestFinishDayTwiceSingleRow(t *testing.T) {
	s := newTestStore(t)
	s.FinishDay("u1", "2026-08-30")
	s.FinishDay("u1", "2026-08-30")

	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM day_status WHERE owner_id = 'u1' AND day = '2026-08-30'`).Scan(&n)
	if n != 1 {
		t.Fatalf("expected single marker row, got %d", n)
	}
}

func TestReopenOpenDayNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.ReopenDay("u1", "2026-08-30"); err != nil {
		t.Fatalf("reopening an open day errored: %v", err)
	}
}

func TestDayStatusPerOwner(t *testing.T) {
	s := newTestStore(t)
	s.FinishDay("u1", "2026-08-30")

	finished, _ := s.DayFinished("u2", "2026-08-30")
	if finished {
		t.Fatal("other owner's day should be open")
	}

	ds, err := s.GetDayStatus("u1", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if ds == nil || ds.FinishedAt.IsZero() {
		t.Fatalf("expected marker with timestamp, got %+v", ds)
	}
}

// ============================================================
// Water
// ============================================================

func TestWaterNeverSet(t *testing.T) {
	s := newTestStore(t)
	w, err := s.GetWater("u1")
	if err != nil {
		t.Fatal(err)
	}
	if w != nil {
		t.Fatalf("expected nil before first set, got %+v", w)
	}
}

func TestSetWaterUpserts(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetWater("u1", 250, "2026-08-30"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetWater("u1", 500, "2026-08-31"); err != nil {
		t.Fatal(err)
	}

	w, _ := s.GetWater("u1")
	if w.Value != 500 || w.AsOfDay != "2026-08-31" {
		t.Fatalf("unexpected water level: %+v", w)
	}

	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM water_levels`).Scan(&n)
	if n != 1 {
		t.Fatalf("expected one row per owner, got %d", n)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("water_step")
	if err != nil {
		t.Fatal(err)
	}
	if v != "250" {
		t.Fatalf("expected water_step 250, got %q", v)
	}

	v, _ = s.GetSetting("theme")
	if v != "dark" {
		t.Fatalf("expected theme dark, got %q", v)
	}
}

func TestSetSettingUpserts(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("water_step", "330"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("water_step")
	if v != "330" {
		t.Fatalf("expected 330, got %q", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 3 {
		t.Fatalf("expected seeded settings, got %d", len(settings))
	}
}
