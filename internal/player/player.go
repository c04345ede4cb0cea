// Package player steps through a confirmed lesson with simulated slide
// transitions and an interactive quiz.
package player

import (
	"github.com/abhisek/nanoclass/internal/lesson"
)

// DefaultReward is shown after a correct answer when the quiz has no
// reward message of its own.
const DefaultReward = "Great Job! 🎉"

// QuizState tracks the answer to the current slide's quiz.
type QuizState int

const (
	Unanswered QuizState = iota
	Correct
	Incorrect
)

func (s QuizState) String() string {
	switch s {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "unanswered"
}

// Player holds playback position for one lesson.
type Player struct {
	lesson        lesson.Lesson
	index         int
	transitioning bool
	token         uint64
	quiz          QuizState
	celebrate     bool
	closed        bool
}

// New starts playback of l at the first slide.
func New(l lesson.Lesson) *Player {
	return &Player{lesson: l.Clone()}
}

// Lesson returns the lesson being played.
func (p *Player) Lesson() lesson.Lesson { return p.lesson }

// Index returns the zero-based position of the current slide.
func (p *Player) Index() int { return p.index }

// Len returns the number of slides.
func (p *Player) Len() int { return len(p.lesson.Slides) }

// Current returns the slide on screen. ok is false for an empty lesson.
func (p *Player) Current() (lesson.Slide, bool) {
	if p.index >= len(p.lesson.Slides) {
		return lesson.Slide{}, false
	}
	return p.lesson.Slides[p.index], true
}

// Upcoming returns the slide a running transition leads to.
func (p *Player) Upcoming() (lesson.Slide, bool) {
	if !p.transitioning || p.index+1 >= len(p.lesson.Slides) {
		return lesson.Slide{}, false
	}
	return p.lesson.Slides[p.index+1], true
}

// Transitioning reports whether a slide transition is running.
func (p *Player) Transitioning() bool { return p.transitioning }

// QuizState returns the answer state of the current slide.
func (p *Player) QuizState() QuizState { return p.quiz }

// Celebrating reports whether the current quiz was just answered correctly.
func (p *Player) Celebrating() bool { return p.celebrate }

// Closed reports whether Close was called.
func (p *Player) Closed() bool { return p.closed }

// AtStart reports whether the first slide is showing.
func (p *Player) AtStart() bool { return p.index == 0 }

// AtEnd reports whether the last slide is showing.
func (p *Player) AtEnd() bool { return p.index >= len(p.lesson.Slides)-1 }

// Next starts the transition to the following slide and returns the token
// to hand to FinishTransition. ok is false on the last slide, during a
// transition, and after Close.
func (p *Player) Next() (token uint64, ok bool) {
	if p.closed || p.transitioning || p.AtEnd() {
		return 0, false
	}
	p.token++
	p.transitioning = true
	return p.token, true
}

// FinishTransition completes the transition started with token. Unknown or
// repeated tokens are ignored.
func (p *Player) FinishTransition(token uint64) bool {
	if !p.transitioning || token != p.token {
		return false
	}
	p.transitioning = false
	p.index++
	p.resetQuiz()
	return true
}

// Prev steps back one slide immediately. It is ignored on the first slide
// and while a transition is running.
func (p *Player) Prev() bool {
	if p.closed || p.transitioning || p.index == 0 {
		return false
	}
	p.index--
	p.resetQuiz()
	return true
}

// AnswerQuiz records choice for the current slide's quiz. Once answered
// correctly further answers are ignored; a wrong answer may be retried.
func (p *Player) AnswerQuiz(choice int) QuizState {
	s, ok := p.Current()
	if !ok || s.Quiz == nil || p.quiz == Correct || p.transitioning {
		return p.quiz
	}
	if choice == s.Quiz.CorrectIndex {
		p.quiz = Correct
		p.celebrate = true
	} else {
		p.quiz = Incorrect
	}
	return p.quiz
}

// Reward returns the message shown after a correct answer.
func (p *Player) Reward() string {
	if s, ok := p.Current(); ok && s.Quiz != nil && s.Quiz.RewardMessage != "" {
		return s.Quiz.RewardMessage
	}
	return DefaultReward
}

// Progress returns the share of the lesson reached, in (0, 1].
func (p *Player) Progress() float64 {
	if len(p.lesson.Slides) == 0 {
		return 0
	}
	return float64(p.index+1) / float64(len(p.lesson.Slides))
}

// Close ends playback. It reports true only on the first call.
func (p *Player) Close() bool {
	if p.closed {
		return false
	}
	p.closed = true
	p.transitioning = false
	return true
}

func (p *Player) resetQuiz() {
	p.quiz = Unanswered
	p.celebrate = false
}
