package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcosta/nutrivision/internal/analyze"
	"github.com/rcosta/nutrivision/internal/ledger"
	"github.com/rcosta/nutrivision/internal/store"
)

type diaryModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	dayView   ledger.DayView
	finished  bool
	water     int
	waterStep int
	today     string // detects midnight rollover between ticks

	cursor int // index into view.Entries()

	formActive bool
	form       *huh.Form
	editingID  string

	// Form field pointers (survive value copies)
	formFood     *string
	formWeight   *string
	formCalories *string
	formCarbs    *string
	formProtein  *string
	formFat      *string
	formMeal     *string
}

func newDiaryModel(l *ledger.Ledger, waterStep int) diaryModel {
	food, weight, cals, carbs, protein, fat, meal := "", "", "", "", "", "", ""
	return diaryModel{
		ledger:       l,
		waterStep:    waterStep,
		today:        ledger.DayKeyOf(time.Now()),
		formFood:     &food,
		formWeight:   &weight,
		formCalories: &cals,
		formCarbs:    &carbs,
		formProtein:  &protein,
		formFat:      &fat,
		formMeal:     &meal,
	}
}

func (d diaryModel) Init() tea.Cmd {
	return d.refresh()
}

func (d *diaryModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d diaryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		view := d.ledger.View()
		finished, _ := d.ledger.DayFinished()
		water, _ := d.ledger.Water()
		return diaryDataMsg{view: view, finished: finished, water: water}
	}
}

func (d diaryModel) update(msg tea.Msg) (diaryModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case diaryDataMsg:
		d.dayView = msg.view
		d.finished = msg.finished
		d.water = msg.water
		if n := d.dayView.Count(); d.cursor >= n {
			d.cursor = max(0, n-1)
		}
		return d, nil

	case tickMsg:
		// Crossing local midnight moves "today": the water counter
		// reads as zero and the viewed day shifts with the cursor.
		if today := ledger.DayKeyOf(time.Time(msg)); today != d.today {
			d.today = today
			return d, d.refresh()
		}
		return d, nil

	case tea.KeyMsg:
		return d.updateKeys(msg)
	}
	return d, nil
}

func (d diaryModel) updateKeys(msg tea.KeyMsg) (diaryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		d.ledger.Navigate(-1)
		d.cursor = 0
		return d, d.refresh()

	case key.Matches(msg, keys.Right):
		d.ledger.Navigate(1)
		d.cursor = 0
		return d, d.refresh()

	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}

	case key.Matches(msg, keys.Down):
		if d.cursor < d.dayView.Count()-1 {
			d.cursor++
		}

	case key.Matches(msg, keys.Add):
		if d.finished {
			return d, statusCmd("Day is finished — press f to reopen it first", true)
		}
		return d.showEntryForm(nil)

	case key.Matches(msg, keys.Edit):
		if rec := d.selected(); rec != nil {
			return d.showEntryForm(rec)
		}

	case key.Matches(msg, keys.Delete):
		if rec := d.selected(); rec != nil {
			if err := d.ledger.DeleteAnalysis(rec.ID); err != nil {
				return d, statusCmd(fmt.Sprintf("Delete failed: %v", err), true)
			}
			return d, tea.Batch(d.refresh(), statusCmd("Entry deleted", false))
		}

	case key.Matches(msg, keys.Finish):
		if d.finished {
			if err := d.ledger.ReopenDay(); err != nil {
				return d, statusCmd(fmt.Sprintf("Reopen failed: %v", err), true)
			}
			return d, tea.Batch(d.refresh(), statusCmd("Day reopened", false))
		}
		if err := d.ledger.FinishDay(); err != nil {
			return d, statusCmd(fmt.Sprintf("Finish failed: %v", err), true)
		}
		return d, tea.Batch(d.refresh(), statusCmd("Day finished", false))

	case key.Matches(msg, keys.Water):
		return d.adjustWater(d.waterStep)

	case key.Matches(msg, keys.WaterDown):
		return d.adjustWater(-d.waterStep)
	}
	return d, nil
}

func (d diaryModel) adjustWater(delta int) (diaryModel, tea.Cmd) {
	value, err := d.ledger.AdjustWater(delta)
	if err != nil {
		return d, statusCmd(fmt.Sprintf("Water update failed: %v", err), true)
	}
	d.water = value
	return d, nil
}

func (d diaryModel) selected() *store.AnalysisRecord {
	entries := d.dayView.Entries()
	if d.cursor < 0 || d.cursor >= len(entries) {
		return nil
	}
	return &entries[d.cursor]
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// --- Entry form ---

func (d diaryModel) showEntryForm(rec *store.AnalysisRecord) (diaryModel, tea.Cmd) {
	if rec != nil {
		d.editingID = rec.ID
		*d.formFood = rec.FoodName
		*d.formWeight = formatAmount(rec.WeightGrams)
		*d.formCalories = formatAmount(rec.Calories)
		*d.formCarbs = formatAmount(rec.Carbs)
		*d.formProtein = formatAmount(rec.Protein)
		*d.formFat = formatAmount(rec.Fat)
		*d.formMeal = string(store.NormalizeMealType(rec.MealType))
	} else {
		d.editingID = ""
		*d.formFood = ""
		*d.formWeight = ""
		*d.formCalories = ""
		*d.formCarbs = ""
		*d.formProtein = ""
		*d.formFat = ""
		*d.formMeal = string(analyze.InferMealType(time.Now()))
	}

	mealOptions := make([]huh.Option[string], len(store.MealTypes))
	for i, mt := range store.MealTypes {
		mealOptions[i] = huh.NewOption(mealTitle(mt), string(mt))
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Food").Value(d.formFood),
			huh.NewInput().Title("Weight (g)").Value(d.formWeight),
			huh.NewInput().Title("Calories").Value(d.formCalories),
			huh.NewInput().Title("Carbs (g)").Value(d.formCarbs),
			huh.NewInput().Title("Protein (g)").Value(d.formProtein),
			huh.NewInput().Title("Fat (g)").Value(d.formFat),
			huh.NewSelect[string]().Title("Meal").Options(mealOptions...).Value(d.formMeal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d diaryModel) updateForm(msg tea.Msg) (diaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if *d.formFood == "" {
			return d, d.refresh()
		}

		data := analyze.NutritionData{
			FoodName:    *d.formFood,
			WeightGrams: analyze.Number(parseAmount(*d.formWeight)),
			Calories:    analyze.Number(parseAmount(*d.formCalories)),
			Carbs:       analyze.Number(parseAmount(*d.formCarbs)),
			Protein:     analyze.Number(parseAmount(*d.formProtein)),
			Fat:         analyze.Number(parseAmount(*d.formFat)),
			Confidence:  100, // manual entry
		}

		if _, err := d.ledger.SaveAnalysis(data, store.MealType(*d.formMeal), d.editingID, ""); err != nil {
			return d, tea.Batch(d.refresh(), statusCmd(fmt.Sprintf("Save failed: %v", err), true))
		}
		return d, tea.Batch(d.refresh(), statusCmd("Entry saved", false))
	}

	return d, cmd
}

// --- Rendering ---

func (d diaryModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("New Entry")
		if d.editingID != "" {
			title = titleStyle.Render("Edit Entry")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View()),
		)
	}

	header := d.renderDayHeader(w)
	summary := d.renderSummaryPanel(w)
	meals := d.renderMealSections(w)

	return lipgloss.JoinVertical(lipgloss.Left, header, summary, meals)
}

func (d diaryModel) renderDayHeader(w int) string {
	t := d.ledger.ViewedTime()
	dateLabel := t.Format("Mon, Jan 2 2006")

	parts := []string{titleStyle.Render(dateLabel)}
	if rel := relativeDayLabel(d.ledger.Offset()); rel != "" {
		parts = append(parts, highlightStyle.Render(rel))
	}
	if d.finished {
		parts = append(parts, finishedBadgeStyle.Render("✔ FINISHED"))
	}
	nav := mutedStyle.Render("←/→ change day")

	return headerStyle.Render(strings.Join(parts, "  ") + "  " + nav)
}

func (d diaryModel) renderSummaryPanel(w int) string {
	goals := d.dayView.Goals
	barWidth := min(30, max(10, w-40))

	remaining := remainingStyle.Render(fmt.Sprintf("%.0f", d.dayView.Remaining))
	headline := fmt.Sprintf("%s %s  %s",
		remaining,
		mutedStyle.Render("kcal left"),
		subtitleStyle.Render(fmt.Sprintf("eaten %.0f / %.0f", d.dayView.TotalCalories, goals.Calories)),
	)

	rows := []string{
		headline,
		fmt.Sprintf("  %-8s %s %s", "Calories", renderBar(d.dayView.TotalCalories, goals.Calories, barWidth, remainingStyle), mutedStyle.Render(fmt.Sprintf("%.0f/%.0f", d.dayView.TotalCalories, goals.Calories))),
		fmt.Sprintf("  %-8s %s %s", "Protein", renderBar(d.dayView.TotalProtein, goals.Protein, barWidth, lipgloss.NewStyle().Foreground(colorProtein)), mutedStyle.Render(fmt.Sprintf("%.0f/%.0fg", d.dayView.TotalProtein, goals.Protein))),
		fmt.Sprintf("  %-8s %s %s", "Carbs", renderBar(d.dayView.TotalCarbs, goals.Carbs, barWidth, highlightStyle), mutedStyle.Render(fmt.Sprintf("%.0f/%.0fg", d.dayView.TotalCarbs, goals.Carbs))),
		fmt.Sprintf("  %-8s %s %s", "Fat", renderBar(d.dayView.TotalFat, goals.Fat, barWidth, lipgloss.NewStyle().Foreground(colorFatBar)), mutedStyle.Render(fmt.Sprintf("%.0f/%.0fg", d.dayView.TotalFat, goals.Fat))),
		fmt.Sprintf("  %-8s %s %s", "Water", renderBar(float64(d.water), float64(goals.Water), barWidth, waterStyle), waterStyle.Render(fmt.Sprintf("%d/%dml", d.water, goals.Water))),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d diaryModel) renderMealSections(w int) string {
	var rows []string
	idx := 0
	for _, mt := range store.MealTypes {
		entries := d.dayView.Meals[mt]
		sectionCals := 0.0
		for _, r := range entries {
			sectionCals += r.Calories
		}

		rows = append(rows, fmt.Sprintf("%s %s",
			titleStyle.Render(mealTitle(mt)),
			mutedStyle.Render(formatKcal(sectionCals)),
		))

		if len(entries) == 0 {
			rows = append(rows, mutedStyle.Render("    no entries"))
		}
		for _, r := range entries {
			cursor := "  "
			style := normalItemStyle
			if idx == d.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			line := fmt.Sprintf("%s%s %-28s %8s  %s",
				cursor,
				r.Time().Format("15:04"),
				r.FoodName,
				formatKcal(r.Calories),
				mutedStyle.Render(fmt.Sprintf("P%s C%s F%s", formatGrams(r.Protein), formatGrams(r.Carbs), formatGrams(r.Fat))),
			)
			rows = append(rows, style.Render(line))
			idx++
		}
	}

	rows = append(rows, "")
	hint := "  n: add  e: edit  d: delete  f: finish day  w/W: water"
	if d.finished {
		hint = "  f: reopen day  e: edit  d: delete  w/W: water"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
