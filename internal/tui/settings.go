package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcosta/nutrivision/internal/ledger"
	"github.com/rcosta/nutrivision/internal/store"
)

type settingsModel struct {
	store  *store.Store
	ledger *ledger.Ledger
	user   *store.User
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	name         *string
	weightKg     *string
	heightCm     *string
	age          *string
	activity     *string
	weightGoal   *string
	goalCalories *string
	goalProtein  *string
	goalCarbs    *string
	goalFat      *string
	goalWater    *string
	waterStep    *string
	theme        *string
}

func newSettingsModel(s *store.Store, l *ledger.Ledger, user *store.User) settingsModel {
	vals := make([]string, 13)
	return settingsModel{
		store:        s,
		ledger:       l,
		user:         user,
		name:         &vals[0],
		weightKg:     &vals[1],
		heightCm:     &vals[2],
		age:          &vals[3],
		activity:     &vals[4],
		weightGoal:   &vals[5],
		goalCalories: &vals[6],
		goalProtein:  &vals[7],
		goalCarbs:    &vals[8],
		goalFat:      &vals[9],
		goalWater:    &vals[10],
		waterStep:    &vals[11],
		theme:        &vals[12],
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Add):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	u := s.user
	*s.name = u.Name
	*s.weightKg = formatAmount(u.WeightKg)
	*s.heightCm = formatAmount(u.HeightCm)
	*s.age = strconv.Itoa(u.Age)
	*s.activity = u.ActivityLevel
	if *s.activity == "" {
		*s.activity = "moderately_active"
	}
	*s.weightGoal = u.WeightGoal
	if *s.weightGoal == "" {
		*s.weightGoal = "maintain"
	}
	*s.goalCalories = formatAmount(u.Goals.Calories)
	*s.goalProtein = formatAmount(u.Goals.Protein)
	*s.goalCarbs = formatAmount(u.Goals.Carbs)
	*s.goalFat = formatAmount(u.Goals.Fat)
	*s.goalWater = strconv.Itoa(u.Goals.Water)
	*s.waterStep = s.getVal("water_step", "250")
	*s.theme = s.getVal("theme", "dark")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(s.name),
			huh.NewInput().Title("Weight (kg)").Value(s.weightKg),
			huh.NewInput().Title("Height (cm)").Value(s.heightCm),
			huh.NewInput().Title("Age").Value(s.age),
			huh.NewSelect[string]().Title("Activity level").
				Options(
					huh.NewOption("Sedentary", "sedentary"),
					huh.NewOption("Lightly active", "lightly_active"),
					huh.NewOption("Moderately active", "moderately_active"),
					huh.NewOption("Very active", "very_active"),
				).Value(s.activity),
			huh.NewSelect[string]().Title("Goal").
				Options(
					huh.NewOption("Lose weight", "lose_weight"),
					huh.NewOption("Maintain", "maintain"),
					huh.NewOption("Gain muscle", "gain_muscle"),
				).Value(s.weightGoal),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("Calories (kcal)").Value(s.goalCalories),
			huh.NewInput().Title("Protein (g)").Value(s.goalProtein),
			huh.NewInput().Title("Carbs (g)").Value(s.goalCarbs),
			huh.NewInput().Title("Fat (g)").Value(s.goalFat),
			huh.NewInput().Title("Water (ml)").Value(s.goalWater),
		).Title("Daily Goals"),
		huh.NewGroup(
			huh.NewInput().Title("Water step (ml)").Value(s.waterStep),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).Value(s.theme),
		).Title("App"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, tea.Batch(s.refresh(), statusCmd(fmt.Sprintf("Save failed: %v", err), true))
		}

		step := 250
		if n, err := strconv.Atoi(*s.waterStep); err == nil && n > 0 {
			step = n
		}
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return settingsSavedMsg{waterStep: step} },
			statusCmd("Settings saved", false),
		)
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	u := s.user
	u.Name = *s.name
	u.WeightKg = parseAmount(*s.weightKg)
	u.HeightCm = parseAmount(*s.heightCm)
	if n, err := strconv.Atoi(*s.age); err == nil && n > 0 {
		u.Age = n
	}
	u.ActivityLevel = *s.activity
	u.WeightGoal = *s.weightGoal

	goals := store.UserGoals{
		Calories: parseAmount(*s.goalCalories),
		Protein:  parseAmount(*s.goalProtein),
		Carbs:    parseAmount(*s.goalCarbs),
		Fat:      parseAmount(*s.goalFat),
	}
	if n, err := strconv.Atoi(*s.goalWater); err == nil && n > 0 {
		goals.Water = n
	}
	u.Goals = goals

	if err := s.store.SaveUser(*u); err != nil {
		return err
	}
	s.ledger.SetGoals(goals)

	if err := s.store.SetSetting("water_step", *s.waterStep); err != nil {
		return err
	}
	return s.store.SetSetting("theme", *s.theme)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	if s.width < 20 {
		return "Terminal too small"
	}
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	u := s.user
	goals := s.ledger.Goals()

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"), "")
	rows = append(rows, subtitleStyle.Render("Profile"))
	rows = append(rows, s.row("Name", u.Name))
	rows = append(rows, s.row("Weight", fmt.Sprintf("%.1f kg", u.WeightKg)))
	rows = append(rows, s.row("Height", fmt.Sprintf("%.0f cm", u.HeightCm)))
	rows = append(rows, s.row("Age", strconv.Itoa(u.Age)))
	rows = append(rows, s.row("Activity", u.ActivityLevel))
	rows = append(rows, s.row("Goal", u.WeightGoal))
	rows = append(rows, "", subtitleStyle.Render("Daily Goals"))
	rows = append(rows, s.row("Calories", fmt.Sprintf("%.0f kcal", goals.Calories)))
	rows = append(rows, s.row("Protein", fmt.Sprintf("%.0f g", goals.Protein)))
	rows = append(rows, s.row("Carbs", fmt.Sprintf("%.0f g", goals.Carbs)))
	rows = append(rows, s.row("Fat", fmt.Sprintf("%.0f g", goals.Fat)))
	rows = append(rows, s.row("Water", fmt.Sprintf("%d ml", goals.Water)))
	rows = append(rows, "", subtitleStyle.Render("App"))
	for _, setting := range s.settings {
		rows = append(rows, s.row(setting.Key, setting.Value))
	}

	rows = append(rows, "", mutedStyle.Render("Press enter to edit"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) row(label, value string) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(16).Render(label),
		highlightStyle.Render(value))
}
