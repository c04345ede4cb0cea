// Package generating shows a busy screen while a lesson is being produced.
package generating

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

// Screen texts for the two waiting stages.
const (
	DraftHeading = "Dreaming up a lesson..."
	DraftDetail  = "Gemini is writing the story and sketching characters."
	FinalHeading = "Applying Magic..."
	FinalDetail  = "Generating transitions and interactive elements."
)

// GeneratingScreen is a spinner with a message. When expected is set a
// progress bar fills over that duration.
type GeneratingScreen struct {
	heading  string
	detail   string
	expected time.Duration
	elapsed  time.Duration
	spinner  spinner.Model
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a waiting screen with no known duration.
func New(heading, detail string) *GeneratingScreen {
	return &GeneratingScreen{
		heading: heading,
		detail:  detail,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Orange)),
		),
	}
}

// NewTimed creates a waiting screen that expects to finish after d.
func NewTimed(heading, detail string, d time.Duration) *GeneratingScreen {
	s := New(heading, detail)
	s.expected = d
	return s
}

// Draft returns the screen shown while the lesson draft is written.
func Draft(topic string) *GeneratingScreen {
	s := New(DraftHeading, DraftDetail)
	if topic != "" {
		s.detail = "“" + topic + "”\n" + DraftDetail
	}
	return s
}

func (s *GeneratingScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.spinner.Tick}
	if s.expected > 0 {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *GeneratingScreen) Title() string {
	return "Working"
}

func (s *GeneratingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GeneratingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.elapsed < s.expected {
			s.elapsed += tickInterval
			return s, tick()
		}
		return s, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Progress returns the share of the expected duration that has passed.
func (s *GeneratingScreen) Progress() float64 {
	if s.expected <= 0 {
		return 0
	}
	return min(1, float64(s.elapsed)/float64(s.expected))
}

func (s *GeneratingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.spinner.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(s.heading))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(s.detail))
	if s.expected > 0 {
		b.WriteString("\n\n")
		b.WriteString(components.NewProgressBar("", s.Progress(), true, cw).View())
	}

	return components.Centered(b.String(), width, height)
}
