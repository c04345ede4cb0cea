// Package topic is the screen where the teacher names what to teach.
package topic

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

// SampleTopics are offered as one-key suggestions.
var SampleTopics = []string{
	"Farm Animals & Sounds",
	"Counting Fruits 1-5",
	"My Body Parts",
	"Colors of the Rainbow",
	"Transportation: Bus & Train",
}

// ChosenMsg carries the topic to draft.
type ChosenMsg struct {
	Topic string
}

// DismissErrorMsg asks the owner to clear the surfaced error.
type DismissErrorMsg struct{}

// ShowHistoryMsg asks the owner to open the recent lessons list.
type ShowHistoryMsg struct{}

// TopicScreen collects a topic from free text or the sample list.
type TopicScreen struct {
	input       components.TextInput
	suggestions components.Menu
	listFocused bool
	errMsg      string
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates the topic screen showing errMsg as a banner, if set.
func New(errMsg string) *TopicScreen {
	items := make([]components.MenuItem, len(SampleTopics))
	for i, t := range SampleTopics {
		items[i] = components.MenuItem{Label: t}
	}
	return &TopicScreen{
		input:       components.NewTextInput("e.g. Shapes around us", 80),
		suggestions: components.NewMenu(items),
		errMsg:      errMsg,
	}
}

func (s *TopicScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TopicScreen) Title() string {
	return "New Lesson"
}

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Create"},
		{Key: "Tab", Description: "Suggestions"},
		{Key: "Ctrl+R", Description: "Recent"},
	}
	if s.errMsg != "" {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Dismiss"})
	}
	return hints
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			s.listFocused = !s.listFocused
			if s.listFocused {
				s.input.Model.Blur()
				return s, nil
			}
			return s, s.input.Model.Focus()
		case "esc":
			if s.errMsg == "" {
				return s, nil
			}
			s.errMsg = ""
			return s, func() tea.Msg { return DismissErrorMsg{} }
		case "ctrl+r":
			return s, func() tea.Msg { return ShowHistoryMsg{} }
		case "enter":
			return s, s.submit()
		}

		if s.listFocused {
			s.suggestions, _ = s.suggestions.Update(msg)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TopicScreen) submit() tea.Cmd {
	topic := s.input.Value()
	if s.listFocused {
		topic = SampleTopics[s.suggestions.Selected]
	}
	if topic == "" {
		return nil
	}
	return func() tea.Msg { return ChosenMsg{Topic: topic} }
}

func (s *TopicScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if s.errMsg != "" {
		b.WriteString(components.ErrorBanner(s.errMsg, cw))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Title.Width(cw).Render("What are we learning today?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Enter a topic or pick from suggestions"))
	b.WriteString("\n\n")

	inputBorder := theme.Border
	if !s.listFocused {
		inputBorder = theme.Blue
	}
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Width(cw).
		Render(s.input.View()))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("POPULAR TOPICS"))
	b.WriteString("\n")
	if s.listFocused {
		b.WriteString(s.suggestions.View())
	} else {
		for _, t := range SampleTopics {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + t))
			b.WriteString("\n")
		}
	}

	return components.Centered(b.String(), width, height)
}
