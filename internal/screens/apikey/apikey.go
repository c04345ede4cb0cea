// Package apikey is the first-run screen that collects the Gemini API key.
package apikey

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

// KeyURL is where teachers can create a key.
const KeyURL = "https://aistudio.google.com/app/apikey"

// SubmittedMsg carries the key the user entered.
type SubmittedMsg struct {
	Key string
}

// APIKeyScreen asks for the API key with a masked input.
type APIKeyScreen struct {
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*APIKeyScreen)(nil)
var _ screen.KeyHintProvider = (*APIKeyScreen)(nil)

// New creates the API key screen. errMsg is shown above the input, e.g.
// when a saved key could not be used.
func New(errMsg string) *APIKeyScreen {
	return &APIKeyScreen{
		input:  components.NewSecretInput("AIzaSy..."),
		errMsg: errMsg,
	}
}

func (s *APIKeyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *APIKeyScreen) Title() string {
	return "API Key"
}

func (s *APIKeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start Creating"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *APIKeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if s.input.Empty() {
			return s, nil
		}
		key := s.input.Value()
		return s, func() tea.Msg { return SubmittedMsg{Key: key} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if !s.input.Empty() {
		s.errMsg = ""
	}
	return s, cmd
}

func (s *APIKeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Orange).Bold(true).Render("🔑"))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Enter Gemini API Key"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw - 6).Render("To generate magical lessons, we need a Gemini API key. Get one here:"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Blue).Underline(true).Render(KeyURL))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	btn := components.Button{Label: "Start Creating", Active: true, Disabled: s.input.Empty()}
	b.WriteString(btn.View())

	content := components.Card(b.String(), cw)
	if s.errMsg != "" {
		content = components.ErrorBanner(s.errMsg, cw) + "\n\n" + content
	}
	return components.Centered(content, width, height)
}
