package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rcosta/nutrivision/internal/ledger"
	"github.com/rcosta/nutrivision/internal/store"
	"github.com/rcosta/nutrivision/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	user, err := sessionUser(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading profile: %v\n", err)
		os.Exit(1)
	}

	l, err := ledger.New(s, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading diary: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s, l, user, waterStep(s))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// sessionUser loads the profile named by the session_user setting,
// creating a default one on first run.
func sessionUser(s *store.Store) (*store.User, error) {
	id, err := s.GetSetting("session_user")
	if err != nil {
		return nil, err
	}

	if id != "" {
		user, err := s.GetUser(id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	user := store.User{
		ID:       uuid.NewString(),
		Name:     "Guest",
		JoinedAt: time.Now().UnixMilli(),
		Goals:    ledger.DefaultGoals,
	}
	if err := s.SaveUser(user); err != nil {
		return nil, err
	}
	if err := s.SetSetting("session_user", user.ID); err != nil {
		return nil, err
	}
	return &user, nil
}

func waterStep(s *store.Store) int {
	v, err := s.GetSetting("water_step")
	if err != nil {
		return 250
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return 250
}
