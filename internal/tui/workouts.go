package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rcosta/nutrivision/internal/store"
)

var workoutSplits = []string{"FullBody", "UpperLower", "ABC", "ABCD", "ABCDE"}

type workoutsModel struct {
	store   *store.Store
	ownerID string
	width   int
	height  int

	sessions []store.WorkoutSession
	cursor   int // session index
	exCursor int // exercise index within the selected session
	inDetail bool

	formActive bool
	form       *huh.Form

	formSplit     *string
	formFocus     *string
	formExercises *string
}

func newWorkoutsModel(s *store.Store, ownerID string) workoutsModel {
	split, focus, exercises := workoutSplits[0], "", ""
	return workoutsModel{
		store:         s,
		ownerID:       ownerID,
		formSplit:     &split,
		formFocus:     &focus,
		formExercises: &exercises,
	}
}

func (m *workoutsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m workoutsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.store.ListWorkouts(m.ownerID)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load workouts failed: %v", err), isError: true}
		}
		return workoutsDataMsg{sessions: sessions}
	}
}

func (m workoutsModel) update(msg tea.Msg) (workoutsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workoutsDataMsg:
		m.sessions = msg.sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = max(0, len(m.sessions)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m workoutsModel) updateKeys(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	if m.inDetail {
		return m.updateDetailKeys(msg)
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Enter):
		if m.cursor < len(m.sessions) {
			m.inDetail = true
			m.exCursor = 0
		}

	case key.Matches(msg, keys.Add):
		return m.showSessionForm()

	case key.Matches(msg, keys.Delete):
		if m.cursor < len(m.sessions) {
			id := m.sessions[m.cursor].ID
			if err := m.store.DeleteWorkout(id); err != nil {
				return m, statusCmd(fmt.Sprintf("Delete failed: %v", err), true)
			}
			return m, tea.Batch(m.refresh(), statusCmd("Workout deleted", false))
		}
	}
	return m, nil
}

func (m workoutsModel) updateDetailKeys(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	session := &m.sessions[m.cursor]

	switch {
	case key.Matches(msg, keys.Back):
		m.inDetail = false

	case key.Matches(msg, keys.Up):
		if m.exCursor > 0 {
			m.exCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.exCursor < len(session.Exercises)-1 {
			m.exCursor++
		}

	case key.Matches(msg, keys.Enter):
		if m.exCursor < len(session.Exercises) {
			session.Exercises[m.exCursor].Completed = !session.Exercises[m.exCursor].Completed
			session.Completed = allCompleted(session.Exercises)
			if err := m.store.PutWorkout(*session); err != nil {
				return m, statusCmd(fmt.Sprintf("Save failed: %v", err), true)
			}
			if session.Completed {
				return m, statusCmd("Workout completed 💪", false)
			}
		}
	}
	return m, nil
}

func allCompleted(exercises []store.WorkoutExercise) bool {
	if len(exercises) == 0 {
		return false
	}
	for _, ex := range exercises {
		if !ex.Completed {
			return false
		}
	}
	return true
}

// --- Session form ---

func (m workoutsModel) showSessionForm() (workoutsModel, tea.Cmd) {
	*m.formSplit = workoutSplits[0]
	*m.formFocus = ""
	*m.formExercises = ""

	splitOptions := make([]huh.Option[string], len(workoutSplits))
	for i, s := range workoutSplits {
		splitOptions[i] = huh.NewOption(s, s)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Split").Options(splitOptions...).Value(m.formSplit),
			huh.NewInput().Title("Focus group").Placeholder("e.g. Push, Legs").Value(m.formFocus),
			huh.NewText().
				Title("Exercises").
				Description("One per line: Name | sets | reps | rest").
				Value(m.formExercises),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m workoutsModel) updateForm(msg tea.Msg) (workoutsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false

		exercises := parseExerciseLines(*m.formExercises)
		if len(exercises) == 0 {
			return m, statusCmd("No exercises given, workout not saved", true)
		}

		session := store.WorkoutSession{
			ID:         uuid.NewString(),
			OwnerID:    m.ownerID,
			Timestamp:  time.Now().UnixMilli(),
			Split:      *m.formSplit,
			FocusGroup: *m.formFocus,
			Exercises:  exercises,
		}
		if err := m.store.PutWorkout(session); err != nil {
			return m, statusCmd(fmt.Sprintf("Save failed: %v", err), true)
		}
		return m, tea.Batch(m.refresh(), statusCmd("Workout saved", false))
	}

	return m, cmd
}

// parseExerciseLines parses "Name | sets | reps | rest" lines. Missing
// fields get sensible defaults; blank lines are skipped.
func parseExerciseLines(text string) []store.WorkoutExercise {
	var out []store.WorkoutExercise
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		ex := store.WorkoutExercise{Name: parts[0], Sets: 3, Reps: "8-12", Rest: "90s"}
		if len(parts) > 1 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
				ex.Sets = n
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			ex.Reps = parts[2]
		}
		if len(parts) > 3 && parts[3] != "" {
			ex.Rest = parts[3]
		}
		out = append(out, ex)
	}
	return out
}

// --- Rendering ---

func (m workoutsModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Workout"), "", m.form.View()),
		)
	}

	if m.inDetail && m.cursor < len(m.sessions) {
		return m.renderDetail(w)
	}
	return m.renderList(w)
}

func (m workoutsModel) renderList(w int) string {
	rows := []string{titleStyle.Render("Workouts"), ""}

	if len(m.sessions) == 0 {
		rows = append(rows, mutedStyle.Render("  No workouts yet. Press n to plan one."))
	}

	for i, s := range m.sessions {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		status := warningStyle.Render("in progress")
		if s.Completed {
			status = successStyle.Render("done")
		}

		line := fmt.Sprintf("%s%s  %-10s %-16s %2d exercises  %s",
			cursor,
			s.Time().Format("Jan 2"),
			s.Split,
			s.FocusGroup,
			len(s.Exercises),
			status,
		)
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  enter: open  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m workoutsModel) renderDetail(w int) string {
	s := m.sessions[m.cursor]

	title := fmt.Sprintf("%s — %s", s.Split, s.FocusGroup)
	if s.FocusGroup == "" {
		title = s.Split
	}

	rows := []string{
		titleStyle.Render(title),
		subtitleStyle.Render(s.Time().Format("Monday, Jan 2 15:04")),
		"",
	}

	for i, ex := range s.Exercises {
		cursor := "  "
		style := normalItemStyle
		if i == m.exCursor {
			cursor = "> "
			style = selectedItemStyle
		}

		check := "[ ]"
		if ex.Completed {
			check = successStyle.Render("[✔]")
		}

		line := fmt.Sprintf("%s%s %-28s %d×%s  rest %s", cursor, check, ex.Name, ex.Sets, ex.Reps, ex.Rest)
		if ex.Notes != "" {
			line += "  " + mutedStyle.Render(ex.Notes)
		}
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: toggle done  esc: back"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
