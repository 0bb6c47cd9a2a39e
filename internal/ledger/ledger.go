package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rcosta/nutrivision/internal/analyze"
	"github.com/rcosta/nutrivision/internal/store"
)

// Ledger is the diary context for one owner: the viewing cursor, the
// daily goals and an in-memory copy of the owner's records. Mutations
// update the copy first and then write through to the store, so reads
// immediately reflect a save even while the durable write is pending.
// The copy is a rebuildable cache; the store stays the source of truth
// and Reload reconciles from it after a failed write or a restart.
type Ledger struct {
	store   *store.Store
	ownerID string
	goals   store.UserGoals
	offset  int // viewed day relative to today; 0 = today
	records []store.AnalysisRecord // newest first
	now     func() time.Time
}

// New builds a ledger for the user and loads their records.
func New(s *store.Store, user *store.User) (*Ledger, error) {
	l := &Ledger{
		store:   s,
		ownerID: user.ID,
		goals:   user.Goals,
		now:     time.Now,
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload rebuilds the in-memory records from the store, discarding any
// optimistic state that never made it to disk.
func (l *Ledger) Reload() error {
	records, err := l.store.ListRecords(l.ownerID)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	l.records = records
	return nil
}

func (l *Ledger) OwnerID() string { return l.ownerID }

func (l *Ledger) Goals() store.UserGoals { return l.goals }

// SetGoals updates the targets used for derived views. Persisting the
// profile is the caller's concern.
func (l *Ledger) SetGoals(g store.UserGoals) { l.goals = g }

// Navigate moves the viewing cursor by delta days. It is pure cursor
// movement: no stored day state changes.
func (l *Ledger) Navigate(delta int) { l.offset += delta }

func (l *Ledger) Offset() int { return l.offset }

// ViewedTime is the current wall-clock time shifted to the viewed day.
func (l *Ledger) ViewedTime() time.Time {
	return ShiftDay(l.now(), l.offset)
}

// ViewedDay is the day key of the viewed day.
func (l *Ledger) ViewedDay() string {
	return DayKeyOf(l.ViewedTime())
}

// View computes the viewed day's grouped records and totals.
func (l *Ledger) View() DayView {
	return BuildDayView(l.ownerID, l.ViewedDay(), l.records, l.goals)
}

// ViewAt computes the view for an arbitrary day key.
func (l *Ledger) ViewAt(day string) DayView {
	return BuildDayView(l.ownerID, day, l.records, l.goals)
}

// Records returns a copy of the cached records, newest first.
func (l *Ledger) Records() []store.AnalysisRecord {
	out := make([]store.AnalysisRecord, len(l.records))
	copy(out, l.records)
	return out
}

// SaveAnalysis stores an analysis result as a diary record. With an
// existingID it edits that record in place, keeping its identity,
// original timestamp and media reference. Otherwise a new record is
// created, stamped with the viewed day's date combined with the real
// current time of day, so entries added while browsing another day
// land on that day. The in-memory copy is updated before the durable
// write; a write failure is returned but not rolled back, and the
// record can be retried with the same ID.
func (l *Ledger) SaveAnalysis(data analyze.NutritionData, meal store.MealType, existingID, imageRef string) (store.AnalysisRecord, error) {
	meal = store.NormalizeMealType(meal)

	var rec store.AnalysisRecord
	if existingID != "" {
		existing := l.find(existingID)
		if existing == nil {
			return rec, fmt.Errorf("record %s: not found", existingID)
		}
		rec = *existing
		applyNutrition(&rec, data)
		rec.MealType = meal
		if imageRef != "" {
			rec.ImageRef = imageRef
		}
		l.replace(rec)
	} else {
		now := l.now()
		viewed := ShiftDay(now, l.offset)
		ts := time.Date(viewed.Year(), viewed.Month(), viewed.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, now.Location())

		rec = store.AnalysisRecord{
			ID:        uuid.NewString(),
			OwnerID:   l.ownerID,
			Timestamp: ts.UnixMilli(),
			MealType:  meal,
			ImageRef:  imageRef,
		}
		applyNutrition(&rec, data)
		l.records = append([]store.AnalysisRecord{rec}, l.records...)
	}

	if err := l.store.PutRecord(rec); err != nil {
		return rec, fmt.Errorf("save analysis: %w", err)
	}
	return rec, nil
}

// DeleteAnalysis removes the record from the in-memory copy and then
// from the store. Deleting an unknown ID is a no-op.
func (l *Ledger) DeleteAnalysis(id string) error {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i:i], l.records[i+1:]...)
			break
		}
	}
	if err := l.store.DeleteRecord(id); err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	return nil
}

// FinishDay marks the viewed day finished. Finishing twice leaves a
// single marker.
func (l *Ledger) FinishDay() error {
	return l.store.FinishDay(l.ownerID, l.ViewedDay())
}

// ReopenDay removes the viewed day's finished marker, returning it to
// a state indistinguishable from never finished.
func (l *Ledger) ReopenDay() error {
	return l.store.ReopenDay(l.ownerID, l.ViewedDay())
}

// DayFinished reports the viewed day's state.
func (l *Ledger) DayFinished() (bool, error) {
	return l.store.DayFinished(l.ownerID, l.ViewedDay())
}

func (l *Ledger) find(id string) *store.AnalysisRecord {
	for i := range l.records {
		if l.records[i].ID == id {
			return &l.records[i]
		}
	}
	return nil
}

func (l *Ledger) replace(rec store.AnalysisRecord) {
	for i := range l.records {
		if l.records[i].ID == rec.ID {
			l.records[i] = rec
			return
		}
	}
}

// applyNutrition copies the payload's nutrition fields onto the
// record, flooring negatives at zero.
func applyNutrition(r *store.AnalysisRecord, d analyze.NutritionData) {
	r.FoodName = d.FoodName
	r.WeightGrams = nonNegative(d.WeightGrams)
	r.Calories = nonNegative(d.Calories)
	r.Carbs = nonNegative(d.Carbs)
	r.Protein = nonNegative(d.Protein)
	r.Fat = nonNegative(d.Fat)
	r.Confidence = nonNegative(d.Confidence)
	r.HealthScore = nonNegative(d.HealthScore)
	r.Ingredients = d.Ingredients
	r.Insights = d.Insights
}

func nonNegative(n analyze.Number) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
