// Package player is the full-screen lesson player.
package player

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/lesson"
	play "github.com/abhisek/nanoclass/internal/player"
	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

// TransitionDuration is how long the simulated slide transition runs.
const TransitionDuration = 2 * time.Second

// ClosedMsg is sent when the teacher leaves the player.
type ClosedMsg struct{}

type transitionDoneMsg struct {
	token uint64
}

// PlayerScreen plays a confirmed lesson.
type PlayerScreen struct {
	player     *play.Player
	quiz       components.MultiChoice
	transition time.Duration
	showNotes  bool
	frame      int
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)

// New starts playing l.
func New(l lesson.Lesson) *PlayerScreen {
	s := &PlayerScreen{
		player:     play.New(l),
		transition: TransitionDuration,
	}
	s.resetQuiz()
	return s
}

func (s *PlayerScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayerScreen) Title() string {
	return s.player.Lesson().Topic
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←", Description: "Back"},
		{Key: "→", Description: "Next"},
	}
	if slide, ok := s.player.Current(); ok && slide.Quiz != nil {
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Answer"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Notes"},
		layout.KeyHint{Key: "Esc", Description: "Close"},
	)
}

func (s *PlayerScreen) resetQuiz() {
	slide, ok := s.player.Current()
	if !ok || slide.Quiz == nil {
		s.quiz = components.MultiChoice{}
		return
	}
	s.quiz = components.NewMultiChoice(slide.Quiz.Question, slide.Quiz.Options, slide.Quiz.CorrectIndex)
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transitionDoneMsg:
		if s.player.FinishTransition(msg.token) {
			s.resetQuiz()
		}
		return s, nil

	case components.ChoiceMsg:
		state := s.player.AnswerQuiz(msg.Index)
		switch state {
		case play.Correct:
			s.quiz.Verdict = components.VerdictCorrect
		case play.Incorrect:
			s.quiz.Verdict = components.VerdictIncorrect
		}
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		if s.player.Close() {
			return func() tea.Msg { return ClosedMsg{} }
		}
		return nil
	case "right", "l", "n":
		return s.next()
	case "space":
		if s.quiz.Options == nil {
			return s.next()
		}
	case "left", "h", "p":
		if s.player.Prev() {
			s.resetQuiz()
		}
		return nil
	case "s":
		s.showNotes = !s.showNotes
		return nil
	}

	if s.quiz.Options != nil && !s.player.Transitioning() {
		var cmd tea.Cmd
		s.quiz, cmd = s.quiz.Update(msg)
		return cmd
	}
	return nil
}

// next starts the transition to the following slide.
func (s *PlayerScreen) next() tea.Cmd {
	token, ok := s.player.Next()
	if !ok {
		return nil
	}
	s.frame++
	return tea.Tick(s.transition, func(time.Time) tea.Msg {
		return transitionDoneMsg{token: token}
	})
}

func (s *PlayerScreen) View(width, height int) string {
	cw := min(width-4, 90)

	bar := components.NewProgressBar("", s.player.Progress(), false, cw).View()

	if s.player.Transitioning() {
		return components.Centered(bar+"\n\n"+s.renderTransition(cw), width, height)
	}

	slide, ok := s.player.Current()
	if !ok {
		return components.Centered(theme.Hint.Render("This lesson has no slides."), width, height)
	}

	var b strings.Builder
	b.WriteString(bar)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("🖼  " + slide.ImagePrompt))
	b.WriteString("\n\n")

	titleStyle := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Bold(true).Foreground(theme.Yellow)
	switch slide.Type {
	case lesson.SlideCover, lesson.SlideEnding:
		b.WriteString(titleStyle.Render(strings.ToUpper(slide.Title)))
		if slide.Content != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Text).Render(slide.Content))
		}
	case lesson.SlideContent:
		if slide.Title != "" {
			b.WriteString(titleStyle.Render(slide.Title))
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Blue).
			Bold(true).
			Padding(1, 2).
			Render(slide.Content))
	case lesson.SlideQuiz:
		b.WriteString(s.renderQuiz(cw))
	}

	if s.showNotes && slide.SpeakerNotes != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(cw).Render("Notes: " + slide.SpeakerNotes))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(pageLabel(s.player)))

	return components.Centered(b.String(), width, height)
}

func (s *PlayerScreen) renderQuiz(cw int) string {
	if s.quiz.Options == nil {
		return theme.Hint.Render("(quiz has no options)")
	}
	body := s.quiz.View()
	if s.player.QuizState() == play.Correct {
		body += "\n" + confetti(s.frame) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Green).Bold(true).Render(s.player.Reward())
	} else if s.player.QuizState() == play.Incorrect {
		body += "\n" + theme.Hint.Render("Not quite, try again!")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Orange).
		Padding(1, 2).
		Render(body)
}

func (s *PlayerScreen) renderTransition(cw int) string {
	from, _ := s.player.Current()
	to, _ := s.player.Upcoming()

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(
			lipgloss.NewStyle().Foreground(theme.Yellow).Bold(true).Render("✨ Magic Transition ✨") +
				"\n\n" +
				theme.Hint.Render(gateway.TransitionPrompt(from, to)),
		)
}

func confetti(seed int) string {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		c := theme.CelebrationColors[(i+seed)%len(theme.CelebrationColors)]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("✦ "))
	}
	return b.String()
}

func pageLabel(p *play.Player) string {
	return strings.Repeat("●", p.Index()+1) + strings.Repeat("○", p.Len()-p.Index()-1)
}
