package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcosta/nutrivision/internal/ledger"
	"github.com/rcosta/nutrivision/internal/store"
)

// historyModel is a flat, newest-first list of every saved record with
// a detail pane for the selected one.
type historyModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	records []store.AnalysisRecord
	cursor  int
}

func newHistoryModel(l *ledger.Ledger) historyModel {
	return historyModel{ledger: l}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return historyDataMsg{records: m.ledger.Records()}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.records) {
				id := m.records[m.cursor].ID
				if err := m.ledger.DeleteAnalysis(id); err != nil {
					return m, statusCmd(fmt.Sprintf("Delete failed: %v", err), true)
				}
				return m, tea.Batch(m.refresh(), statusCmd("Entry deleted", false))
			}
		}
	}
	return m, nil
}

func (m historyModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	rows := []string{titleStyle.Render("History"), ""}

	if len(m.records) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing logged yet."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	lastDay := ""
	for i, r := range m.records {
		if day := ledger.DayKeyOf(r.Time()); day != lastDay {
			lastDay = day
			rows = append(rows, subtitleStyle.Render(r.Time().Format("Monday, Jan 2")))
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s  %-10s %-28s %8s",
			cursor,
			r.Time().Format("15:04"),
			mealTitle(store.NormalizeMealType(r.MealType)),
			r.FoodName,
			formatKcal(r.Calories),
		)
		rows = append(rows, style.Render(line))
	}

	list := panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	detail := m.renderDetail(w)
	return lipgloss.JoinVertical(lipgloss.Left, list, detail)
}

func (m historyModel) renderDetail(w int) string {
	if m.cursor >= len(m.records) {
		return ""
	}
	r := m.records[m.cursor]

	rows := []string{
		titleStyle.Render(r.FoodName) + "  " + mutedStyle.Render(fmt.Sprintf("%.0fg", r.WeightGrams)),
		fmt.Sprintf("  %s   P %s   C %s   F %s",
			formatKcal(r.Calories), formatGrams(r.Protein), formatGrams(r.Carbs), formatGrams(r.Fat)),
	}

	if r.HealthScore > 0 {
		rows = append(rows, fmt.Sprintf("  Health score %s  Confidence %.0f%%",
			highlightStyle.Render(fmt.Sprintf("%.1f/10", r.HealthScore)), r.Confidence))
	}
	if len(r.Ingredients) > 0 {
		rows = append(rows, mutedStyle.Render("  "+strings.Join(r.Ingredients, ", ")))
	}
	for _, insight := range r.Insights {
		rows = append(rows, subtitleStyle.Render("  • "+insight))
	}

	rows = append(rows, "", mutedStyle.Render("  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
