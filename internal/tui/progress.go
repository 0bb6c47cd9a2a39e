package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcosta/nutrivision/internal/ledger"
)

// progressModel charts calorie intake per day over a 7-day window, with
// a macro summary table underneath.
type progressModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current week)
	days   []ledger.DayView

	chart barchart.Model
}

func newProgressModel(l *ledger.Ledger) progressModel {
	return progressModel{
		ledger: l,
		chart:  barchart.New(60, 12),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

// dateRange is the half-open [from, to) window of the current block.
func (p progressModel) dateRange() (time.Time, time.Time) {
	today := ledger.StartOfDay(time.Now())
	end := today.AddDate(0, 0, 1-7*p.offset)
	return end.AddDate(0, 0, -7), end
}

func (p progressModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := p.dateRange()
		var days []ledger.DayView
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			days = append(days, p.ledger.ViewAt(ledger.DayKeyOf(d)))
		}
		return progressDataMsg{days: days}
	}
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDataMsg:
		p.days = msg.days
		p.buildChart()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			p.offset++
			return p, p.refresh()
		case key.Matches(msg, keys.Right):
			if p.offset > 0 {
				p.offset--
			}
			return p, p.refresh()
		}
	}
	return p, nil
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if p.height > 30 {
		chartHeight = 16
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	goal := p.ledger.Goals().Calories

	var bars []barchart.BarData
	for _, day := range p.days {
		t, err := time.ParseInLocation("2006-01-02", day.Day, time.Local)
		label := day.Day
		if err == nil {
			label = t.Format("Mon 02")
		}

		style := remainingStyle
		if goal > 0 && day.TotalCalories > goal {
			style = warningStyle
		}

		values := []barchart.BarValue{{Name: "kcal", Value: day.TotalCalories, Style: style}}
		if day.TotalCalories == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p progressModel) view() string {
	if p.width < 20 {
		return "Terminal too small"
	}
	w := p.width - 4

	from, to := p.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Progress"), "  ", dateLabel,
	)

	legend := fmt.Sprintf("%s under goal  %s over goal",
		remainingStyle.Render("●"), warningStyle.Render("●"))

	nav := mutedStyle.Render("  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", p.chart.View(), "", "  "+legend, "", p.renderSummaryTable(w), "", nav,
		),
	)
}

func (p progressModel) renderSummaryTable(w int) string {
	logged := 0
	for _, day := range p.days {
		if day.Count() > 0 {
			logged++
		}
	}
	if logged == 0 {
		return mutedStyle.Render("  No entries in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %8s %8s %8s %8s",
		"Date", "Kcal", "Protein", "Carbs", "Fat", "Entries")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 58))))

	var totalCals, totalProtein float64
	for _, day := range p.days {
		if day.Count() == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8.0f %7.0fg %7.0fg %7.0fg %8d",
			day.Day, day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFat, day.Count(),
		))
		totalCals += day.TotalCalories
		totalProtein += day.TotalProtein
	}

	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 58))))
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-12s %8.0f %7.0fg  daily avg over %d logged days",
		"Average", totalCals/float64(logged), totalProtein/float64(logged), logged)))

	return strings.Join(rows, "\n")
}
