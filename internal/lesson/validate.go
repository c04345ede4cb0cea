package lesson

import (
	"errors"
	"fmt"
)

// Validate checks the invariants every lesson must hold, drafted or edited.
func (l Lesson) Validate() error {
	if len(l.Slides) == 0 {
		return errors.New("lesson has no slides")
	}
	seen := make(map[string]bool, len(l.Slides))
	for i, s := range l.Slides {
		if s.ID == "" {
			return fmt.Errorf("slide %d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("slide %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		if !s.Type.Valid() {
			return fmt.Errorf("slide %d: invalid type %q", i, s.Type)
		}
		if s.ImagePrompt == "" {
			return fmt.Errorf("slide %d: missing image prompt", i)
		}
		if s.Quiz != nil {
			if s.Type != SlideQuiz {
				return fmt.Errorf("slide %d: quiz data on %s slide", i, s.Type)
			}
			if err := s.Quiz.Validate(); err != nil {
				return fmt.Errorf("slide %d: %w", i, err)
			}
		}
	}
	return nil
}

// Validate checks that the quiz has options and a correct index in range.
func (q QuizData) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("quiz needs at least 2 options, has %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("quiz correct index %d out of range [0,%d)", q.CorrectIndex, len(q.Options))
	}
	return nil
}

// ValidateDraft checks the stricter shape of a freshly drafted lesson:
// exactly the slides of DraftStructure, in order.
func (l Lesson) ValidateDraft() error {
	if len(l.Slides) != len(DraftStructure) {
		return fmt.Errorf("draft has %d slides, want %d", len(l.Slides), len(DraftStructure))
	}
	for i, want := range DraftStructure {
		if l.Slides[i].Type != want {
			return fmt.Errorf("draft slide %d is %q, want %q", i, l.Slides[i].Type, want)
		}
	}
	return l.Validate()
}
