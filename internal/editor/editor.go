// Package editor holds the lesson editing state behind the editor screen.
//
// The Editor never performs I/O. Operations that need an illustration return
// an ImageRequest; the caller runs it and feeds the outcome back through
// ApplyImage. Each request carries the lesson id and a per-slide sequence
// number so late results for deleted slides, replaced lessons, or
// superseded requests are dropped.
package editor

import (
	"fmt"

	"github.com/abhisek/nanoclass/internal/lesson"
)

// ImageRequest asks the caller to illustrate one slide.
type ImageRequest struct {
	LessonID string
	SlideID  string
	Prompt   string
	Seq      uint64
}

// ImageResult is the outcome of an ImageRequest.
type ImageResult struct {
	ImageRequest
	URL string
}

// Editor owns a lesson while it is being edited.
type Editor struct {
	lesson   lesson.Lesson
	selected string
	seq      map[string]uint64
	next     uint64
}

// New opens l for editing with the first slide selected.
func New(l lesson.Lesson) *Editor {
	e := &Editor{
		lesson: l.Clone(),
		seq:    make(map[string]uint64),
	}
	if len(l.Slides) > 0 {
		e.selected = l.Slides[0].ID
	}
	return e
}

// Init returns the image request for the initially selected slide, if it
// still needs one.
func (e *Editor) Init() *ImageRequest {
	return e.ensureImage(e.selected)
}

// Lesson returns the current lesson value.
func (e *Editor) Lesson() lesson.Lesson { return e.lesson }

// SelectedID returns the id of the active slide.
func (e *Editor) SelectedID() string { return e.selected }

// ActiveSlide returns the active slide. ok is false when the selection no
// longer matches any slide.
func (e *Editor) ActiveSlide() (lesson.Slide, bool) {
	return e.lesson.Slide(e.selected)
}

// ActiveIndex returns the position of the active slide, or -1.
func (e *Editor) ActiveIndex() int {
	return e.lesson.IndexOf(e.selected)
}

// Regenerating reports whether any slide is waiting for an image.
func (e *Editor) Regenerating() bool {
	return e.lesson.AnyLoading()
}

// SelectSlide activates slide id. If that slide has neither an image nor a
// request in flight, the returned request should be run.
func (e *Editor) SelectSlide(id string) (*ImageRequest, error) {
	if e.lesson.IndexOf(id) < 0 {
		return nil, fmt.Errorf("slide %q not found", id)
	}
	e.selected = id
	return e.ensureImage(id), nil
}

// Move shifts the selection by delta slides, clamped to the lesson bounds.
func (e *Editor) Move(delta int) *ImageRequest {
	if len(e.lesson.Slides) == 0 {
		return nil
	}
	i := e.ActiveIndex() + delta
	i = max(0, min(i, len(e.lesson.Slides)-1))
	req, _ := e.SelectSlide(e.lesson.Slides[i].ID)
	return req
}

func (e *Editor) ensureImage(id string) *ImageRequest {
	s, ok := e.lesson.Slide(id)
	if !ok || s.ImageURL != "" || s.IsLoadingImage {
		return nil
	}
	req := e.BeginImage(id, s.ImagePrompt)
	return &req
}

// UpdateSlideFields merges the set fields of p into slide id. A Quiz in the
// patch replaces the whole quiz object.
func (e *Editor) UpdateSlideFields(id string, p lesson.SlidePatch) error {
	l, ok := e.lesson.UpdateSlide(id, p)
	if !ok {
		return fmt.Errorf("slide %q not found", id)
	}
	e.lesson = l
	return nil
}

// UpdateQuiz edits individual quiz fields on slide id, keeping the rest.
// Only quiz slides carry a quiz; one that has none starts from two blank
// options. Edits that leave the quiz invalid are rejected.
func (e *Editor) UpdateQuiz(id string, p lesson.QuizPatch) error {
	s, ok := e.lesson.Slide(id)
	if !ok {
		return fmt.Errorf("slide %q not found", id)
	}
	if s.Type != lesson.SlideQuiz {
		return fmt.Errorf("slide %q is a %s slide, not a quiz", id, s.Type)
	}
	base := lesson.QuizData{Options: []string{"", ""}}
	if s.Quiz != nil {
		base = *s.Quiz
	}
	q, err := p.Apply(base)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return e.UpdateSlideFields(id, lesson.SlidePatch{Quiz: &q})
}

// RegenerateImage starts a new illustration of slide id from its current
// prompt. Any earlier request for the slide is superseded.
func (e *Editor) RegenerateImage(id string) (ImageRequest, error) {
	s, ok := e.lesson.Slide(id)
	if !ok {
		return ImageRequest{}, fmt.Errorf("slide %q not found", id)
	}
	return e.BeginImage(id, s.ImagePrompt), nil
}

// BeginImage marks slide id as loading and returns a request for prompt.
// Unknown ids yield a request that ApplyImage will discard.
func (e *Editor) BeginImage(id, prompt string) ImageRequest {
	e.next++
	e.seq[id] = e.next
	e.lesson, _ = e.lesson.UpdateSlide(id, lesson.SlidePatch{IsLoadingImage: lesson.Ptr(true)})
	return ImageRequest{
		LessonID: e.lesson.ID,
		SlideID:  id,
		Prompt:   prompt,
		Seq:      e.next,
	}
}

// ApplyImage stores a finished illustration. It reports false when the
// result was stale and nothing changed.
func (e *Editor) ApplyImage(r ImageResult) bool {
	if r.LessonID != e.lesson.ID || e.seq[r.SlideID] != r.Seq {
		return false
	}
	l, ok := e.lesson.UpdateSlide(r.SlideID, lesson.SlidePatch{
		ImageURL:       lesson.Ptr(r.URL),
		IsLoadingImage: lesson.Ptr(false),
	})
	if !ok {
		return false
	}
	e.lesson = l
	delete(e.seq, r.SlideID)
	return true
}

// AddSlide inserts a placeholder content slide after the active one and
// activates it. With a stale selection the slide is appended.
func (e *Editor) AddSlide() (lesson.Slide, *ImageRequest) {
	s := lesson.NewContentSlide()
	at := e.ActiveIndex()
	if at < 0 {
		at = len(e.lesson.Slides) - 1
	}
	e.lesson = e.lesson.InsertAfter(at, s)
	e.selected = s.ID
	return s, e.ensureImage(s.ID)
}

// RemoveSlide deletes slide id. The last remaining slide cannot be removed.
// If the active slide is removed its successor, or else its predecessor,
// becomes active.
func (e *Editor) RemoveSlide(id string) error {
	i := e.lesson.IndexOf(id)
	l, err := e.lesson.RemoveSlide(id)
	if err != nil {
		return err
	}
	e.lesson = l
	delete(e.seq, id)
	if e.selected == id {
		e.selected = l.Slides[min(i, len(l.Slides)-1)].ID
	}
	return nil
}

// Confirm returns the lesson ready for playback. Loading flags are cleared
// and the editor state is left untouched.
func (e *Editor) Confirm() lesson.Lesson {
	return e.lesson.ClearTransient()
}
