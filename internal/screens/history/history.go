package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/router"
	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/store"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

// Limit is how many events the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.LessonEventRecord
	Err    error
}

// HistoryScreen lists recent lesson activity.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.LessonEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		events, err := repo.QueryLessonEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Recent Lessons"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Pick a topic to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		dateStr := ev.Timestamp.Format("Jan 02 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		slides := ""
		if ev.SlideCount > 0 {
			slides = fmt.Sprintf("  %d slides", ev.SlideCount)
		}

		line := fmt.Sprintf("%s%s  %s %-12s  %s%s",
			prefix, dateStr, actionIcon(ev.Action), ev.Action, ev.Topic, slides)

		style := lipgloss.NewStyle().Foreground(actionColor(ev.Action))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := ev.Detail
			if detail == "" {
				detail = "No details recorded"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render("    "+detail+"  ("+ev.LessonID+")")))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func actionIcon(action string) string {
	switch action {
	case store.LessonDrafted:
		return "✎"
	case store.LessonDraftFailed:
		return "✗"
	case store.LessonConfirmed:
		return "✔"
	case store.LessonClosed:
		return "■"
	default:
		return "·"
	}
}

func actionColor(action string) color.Color {
	switch action {
	case store.LessonDraftFailed:
		return theme.Error
	case store.LessonConfirmed:
		return theme.Success
	case store.LessonDrafted:
		return theme.Secondary
	default:
		return theme.Text
	}
}
