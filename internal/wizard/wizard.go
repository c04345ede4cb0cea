// Package wizard implements the three-step teacher profile questionnaire.
package wizard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/nanoclass/internal/lesson"
)

// Step is a wizard page, 1-based.
type Step int

const (
	StepGrades Step = iota + 1
	StepLanguage
	StepStyle
)

// StepCount is the number of wizard steps.
const StepCount = 3

// Title is the question asked on the step.
func (s Step) Title() string {
	switch s {
	case StepGrades:
		return "Which grades do you teach?"
	case StepLanguage:
		return "Primary Language?"
	case StepStyle:
		return "Preferred Visual Style?"
	}
	return ""
}

// NextLabel is the caption of the advance button on the step.
func (s Step) NextLabel() string {
	if s == StepStyle {
		return "Finish Profile"
	}
	return "Next"
}

var (
	// ErrNoGrade is returned by Next on the grade step when RequireGrade is
	// set and nothing is selected.
	ErrNoGrade = errors.New("select at least one grade")

	// ErrCompleted is returned by Next after the profile was handed over.
	ErrCompleted = errors.New("profile already completed")
)

// Options configures wizard validation.
type Options struct {
	// RequireGrade blocks leaving the grade step with an empty selection.
	RequireGrade bool
}

// Wizard collects a TeacherProfile one step at a time.
type Wizard struct {
	opts   Options
	step   Step
	grades []string
	lang   lesson.Language
	style  lesson.Style
	done   bool
}

// New starts a wizard on the grade step with no grades selected, English
// and the cartoon style.
func New(opts Options) *Wizard {
	return &Wizard{
		opts:  opts,
		step:  StepGrades,
		lang:  lesson.English,
		style: lesson.StyleCartoon,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Done reports whether the profile has been completed.
func (w *Wizard) Done() bool { return w.done }

// Profile returns a snapshot of the answers so far.
func (w *Wizard) Profile() lesson.TeacherProfile {
	return lesson.TeacherProfile{
		Grades:   slices.Clone(w.grades),
		Language: w.lang,
		Style:    w.style,
	}
}

// ToggleGrade adds grade to the selection, or removes it if present.
// Selection order is preserved.
func (w *Wizard) ToggleGrade(grade string) error {
	if !lesson.ValidGrade(grade) {
		return fmt.Errorf("unknown grade %q", grade)
	}
	if i := slices.Index(w.grades, grade); i >= 0 {
		w.grades = slices.Delete(slices.Clone(w.grades), i, i+1)
		return nil
	}
	w.grades = append(slices.Clone(w.grades), grade)
	return nil
}

// SetLanguage picks the teaching language.
func (w *Wizard) SetLanguage(l lesson.Language) error {
	if !slices.Contains(lesson.Languages, l) {
		return fmt.Errorf("unknown language %q", l)
	}
	w.lang = l
	return nil
}

// SetStyle picks the illustration style.
func (w *Wizard) SetStyle(s lesson.Style) error {
	if !slices.Contains(lesson.Styles, s) {
		return fmt.Errorf("unknown style %q", s)
	}
	w.style = s
	return nil
}

// Next advances one step. On the last step it completes the wizard and
// returns the profile with done set; this happens exactly once.
func (w *Wizard) Next() (profile lesson.TeacherProfile, done bool, err error) {
	if w.done {
		return lesson.TeacherProfile{}, false, ErrCompleted
	}
	if w.step == StepGrades && w.opts.RequireGrade && len(w.grades) == 0 {
		return lesson.TeacherProfile{}, false, ErrNoGrade
	}
	if w.step < StepStyle {
		w.step++
		return lesson.TeacherProfile{}, false, nil
	}
	w.done = true
	return w.Profile(), true, nil
}

// Back returns to the previous step. It reports false on the first step
// or after completion.
func (w *Wizard) Back() bool {
	if w.done || w.step == StepGrades {
		return false
	}
	w.step--
	return true
}
