// Package wizard renders the profile questionnaire.
package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
	wiz "github.com/abhisek/nanoclass/internal/wizard"
)

// CompletedMsg carries the finished profile.
type CompletedMsg struct {
	Profile lesson.TeacherProfile
}

// WizardScreen walks the teacher through grades, language and style.
type WizardScreen struct {
	wizard *wiz.Wizard
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)

// New creates the wizard screen.
func New(opts wiz.Options) *WizardScreen {
	s := &WizardScreen{wizard: wiz.New(opts)}
	s.buildMenu()
	return s
}

func (s *WizardScreen) Init() tea.Cmd {
	return nil
}

func (s *WizardScreen) Title() string {
	return "Profile"
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Choose"}}
	if s.wizard.Step() == wiz.StepGrades {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.wizard.Step().NextLabel()})
	if s.wizard.Step() > wiz.StepGrades {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

func (s *WizardScreen) buildMenu() {
	p := s.wizard.Profile()
	var items []components.MenuItem
	checkbox := false

	switch s.wizard.Step() {
	case wiz.StepGrades:
		checkbox = true
		for _, g := range lesson.Grades {
			items = append(items, components.MenuItem{Label: g, Checked: p.HasGrade(g)})
		}
	case wiz.StepLanguage:
		for _, l := range lesson.Languages {
			items = append(items, components.MenuItem{Label: string(l), Checked: l == p.Language})
		}
	case wiz.StepStyle:
		for _, st := range lesson.Styles {
			info := st.Info()
			items = append(items, components.MenuItem{Label: info.Label, Detail: info.Description, Checked: st == p.Style})
		}
	}

	s.menu = components.Menu{Items: items, Checkbox: checkbox}
	if !checkbox {
		for i, it := range items {
			if it.Checked {
				s.menu.Select(i)
			}
		}
	}
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k", "down", "j":
		s.menu, _ = s.menu.Update(msg)
		return s, nil
	case "space", " ":
		s.pick()
		return s, nil
	case "esc":
		if s.wizard.Back() {
			s.errMsg = ""
			s.buildMenu()
		}
		return s, nil
	case "enter":
		if s.wizard.Step() != wiz.StepGrades {
			s.pick()
		}
		return s, s.next()
	}
	return s, nil
}

// pick applies the highlighted menu item to the current step.
func (s *WizardScreen) pick() {
	i := s.menu.Selected
	switch s.wizard.Step() {
	case wiz.StepGrades:
		if err := s.wizard.ToggleGrade(lesson.Grades[i]); err == nil {
			s.menu.SetChecked(i, s.wizard.Profile().HasGrade(lesson.Grades[i]))
			s.errMsg = ""
		}
	case wiz.StepLanguage:
		if s.wizard.SetLanguage(lesson.Languages[i]) == nil {
			s.markOnly(i)
		}
	case wiz.StepStyle:
		if s.wizard.SetStyle(lesson.Styles[i]) == nil {
			s.markOnly(i)
		}
	}
}

func (s *WizardScreen) markOnly(i int) {
	for j := range s.menu.Items {
		s.menu.SetChecked(j, j == i)
	}
}

func (s *WizardScreen) next() tea.Cmd {
	profile, done, err := s.wizard.Next()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if done {
		return func() tea.Msg { return CompletedMsg{Profile: profile} }
	}
	s.errMsg = ""
	s.buildMenu()
	return nil
}

func (s *WizardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := s.wizard.Step()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Let's set up your profile!"))
	b.WriteString("\n")
	b.WriteString(components.StepDots(int(step), wiz.StepCount))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(step.Title()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.TrimRight(s.menu.View(), "\n")))
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		b.WriteString("\n\n")
	}
	btn := components.Button{Label: step.NextLabel(), Active: true}
	b.WriteString(btn.View())

	return components.Centered(components.Card(b.String(), cw), width, height)
}
