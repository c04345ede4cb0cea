package lesson

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Lessons are treated as values: every helper below returns a new Lesson
// and never writes through to the receiver's slides or quiz data.

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}

// Clone returns a deep copy of the lesson.
func (l Lesson) Clone() Lesson {
	out := l
	if l.Slides != nil {
		out.Slides = make([]Slide, len(l.Slides))
		for i, s := range l.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	if s.Quiz != nil {
		q := s.Quiz.Clone()
		out.Quiz = &q
	}
	return out
}

// Clone returns a deep copy of the quiz.
func (q QuizData) Clone() QuizData {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	return out
}

// Equal reports whether two lessons are structurally identical.
func Equal(a, b Lesson) bool {
	return cmp.Equal(a, b)
}

// IndexOf returns the position of slide id, or -1.
func (l Lesson) IndexOf(id string) int {
	for i, s := range l.Slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Slide returns a copy of the slide with the given id.
func (l Lesson) Slide(id string) (Slide, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return Slide{}, false
	}
	return l.Slides[i].Clone(), true
}

// SlidePatch lists the fields to overwrite on a slide. Nil fields are left
// untouched. Quiz replaces the whole quiz object; use QuizPatch for
// sub-field edits.
type SlidePatch struct {
	Type           *SlideType
	Title          *string
	Content        *string
	SpeakerNotes   *string
	ImagePrompt    *string
	ImageURL       *string
	IsLoadingImage *bool
	Quiz           *QuizData
}

// Apply returns s with the patch merged in.
func (p SlidePatch) Apply(s Slide) Slide {
	out := s.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.SpeakerNotes != nil {
		out.SpeakerNotes = *p.SpeakerNotes
	}
	if p.ImagePrompt != nil {
		out.ImagePrompt = *p.ImagePrompt
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.IsLoadingImage != nil {
		out.IsLoadingImage = *p.IsLoadingImage
	}
	if p.Quiz != nil {
		q := p.Quiz.Clone()
		out.Quiz = &q
	}
	return out
}

// UpdateSlide returns a new lesson with the patch applied to slide id.
// The second result is false when no slide has that id; the lesson is then
// returned unchanged.
func (l Lesson) UpdateSlide(id string, p SlidePatch) (Lesson, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	out.Slides[i] = p.Apply(out.Slides[i])
	return out, true
}

// InsertAfter returns a new lesson with s inserted right after position i.
// An index of -1 inserts at the front; indexes past the end append.
func (l Lesson) InsertAfter(i int, s Slide) Lesson {
	out := l.Clone()
	pos := i + 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(out.Slides) {
		pos = len(out.Slides)
	}
	out.Slides = append(out.Slides, Slide{})
	copy(out.Slides[pos+1:], out.Slides[pos:])
	out.Slides[pos] = s.Clone()
	return out
}

// RemoveSlide returns a new lesson without slide id. Removing the last
// remaining slide is refused.
func (l Lesson) RemoveSlide(id string) (Lesson, error) {
	i := l.IndexOf(id)
	if i < 0 {
		return l, fmt.Errorf("slide %q not found", id)
	}
	if len(l.Slides) <= 1 {
		return l, fmt.Errorf("a lesson needs at least one slide")
	}
	out := l.Clone()
	out.Slides = append(out.Slides[:i], out.Slides[i+1:]...)
	return out, nil
}

// OptionEdit replaces the text of one quiz option.
type OptionEdit struct {
	Index int
	Text  string
}

// QuizPatch edits individual quiz fields while preserving the rest.
type QuizPatch struct {
	Question      *string
	Option        *OptionEdit
	AddOption     *string
	CorrectIndex  *int
	RewardMessage *string
}

// Apply returns q with the patch merged in, or an error if an index is out
// of range.
func (p QuizPatch) Apply(q QuizData) (QuizData, error) {
	out := q.Clone()
	if p.Question != nil {
		out.Question = *p.Question
	}
	if p.AddOption != nil {
		out.Options = append(out.Options, *p.AddOption)
	}
	if p.Option != nil {
		if p.Option.Index < 0 || p.Option.Index >= len(out.Options) {
			return q, fmt.Errorf("option index %d out of range [0,%d)", p.Option.Index, len(out.Options))
		}
		out.Options[p.Option.Index] = p.Option.Text
	}
	if p.CorrectIndex != nil {
		if *p.CorrectIndex < 0 || *p.CorrectIndex >= len(out.Options) {
			return q, fmt.Errorf("correct index %d out of range [0,%d)", *p.CorrectIndex, len(out.Options))
		}
		out.CorrectIndex = *p.CorrectIndex
	}
	if p.RewardMessage != nil {
		out.RewardMessage = *p.RewardMessage
	}
	return out, nil
}

// ClearTransient returns a copy with every loading flag reset. Used before
// a lesson leaves the editor.
func (l Lesson) ClearTransient() Lesson {
	out := l.Clone()
	for i := range out.Slides {
		out.Slides[i].IsLoadingImage = false
	}
	return out
}

// AnyLoading reports whether any slide has an image request in flight.
func (l Lesson) AnyLoading() bool {
	for _, s := range l.Slides {
		if s.IsLoadingImage {
			return true
		}
	}
	return false
}
