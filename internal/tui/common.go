package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rcosta/nutrivision/internal/ledger"
	"github.com/rcosta/nutrivision/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDiary viewState = iota
	viewWorkouts
	viewHistory
	viewProgress
	viewSettings
)

var viewNames = []string{"Diary", "Workouts", "History", "Progress", "Settings"}

// --- Messages ---

type diaryDataMsg struct {
	view     ledger.DayView
	finished bool
	water    int
}

type workoutsDataMsg struct {
	sessions []store.WorkoutSession
}

type historyDataMsg struct {
	records []store.AnalysisRecord
}

type progressDataMsg struct {
	days []ledger.DayView
}

type settingsDataMsg struct {
	settings []store.Setting
}

type settingsSavedMsg struct {
	waterStep int
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatKcal(v float64) string {
	return fmt.Sprintf("%.0f kcal", v)
}

func formatGrams(v float64) string {
	return fmt.Sprintf("%.0fg", v)
}

// parseAmount coerces a form field to a float; anything unparseable
// counts as zero, matching how analysis payloads are handled.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func mealTitle(mt store.MealType) string {
	switch mt {
	case store.MealBreakfast:
		return "Breakfast"
	case store.MealLunch:
		return "Lunch"
	case store.MealDinner:
		return "Dinner"
	default:
		return "Snacks"
	}
}

func relativeDayLabel(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case -1:
		return "Yesterday"
	case 1:
		return "Tomorrow"
	}
	return ""
}

// renderBar draws a simple progress bar, clamped at full.
func renderBar(current, goal float64, width int, style lipgloss.Style) string {
	if width < 4 {
		width = 4
	}
	ratio := 0.0
	if goal > 0 {
		ratio = current / goal
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return style.Render(bar)
}
