// Package editor is the slide editor screen.
package editor

import (
	"context"
	"strconv"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	edit "github.com/abhisek/nanoclass/internal/editor"
	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/layout"
)

// Illustrator turns an image prompt into a displayable image reference.
// It must not fail; errors are expressed as placeholder references.
type Illustrator interface {
	GenerateImage(ctx context.Context, prompt string, style lesson.Style) string
}

type fieldKind int

const (
	fieldTitle fieldKind = iota
	fieldContent
	fieldNotes
	fieldPrompt
	fieldQuestion
	fieldOption
	fieldReward
)

// field is one editable property of the active slide.
type field struct {
	kind   fieldKind
	option int
}

func (f field) multiline() bool {
	return f.kind == fieldContent || f.kind == fieldNotes || f.kind == fieldPrompt
}

func (f field) label() string {
	switch f.kind {
	case fieldTitle:
		return "Title"
	case fieldContent:
		return "Content"
	case fieldNotes:
		return "Speaker Notes"
	case fieldPrompt:
		return "Image Prompt"
	case fieldQuestion:
		return "Question"
	case fieldOption:
		return "Option " + strconv.Itoa(f.option+1)
	case fieldReward:
		return "Reward Message"
	}
	return ""
}

// EditorScreen edits a drafted lesson slide by slide.
type EditorScreen struct {
	editor *edit.Editor
	images Illustrator
	style  lesson.Style

	focus   int
	editing bool
	line    components.TextInput
	area    textarea.Model
	errMsg  string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New opens l in the editor. Images are drawn by images in the given style.
func New(l lesson.Lesson, style lesson.Style, images Illustrator) *EditorScreen {
	return &EditorScreen{
		editor: edit.New(l),
		images: images,
		style:  style,
	}
}

// Lesson returns the lesson as currently edited.
func (s *EditorScreen) Lesson() lesson.Lesson {
	return s.editor.Lesson()
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.imageCmd(s.editor.Init())
}

func (s *EditorScreen) Title() string {
	return "Lesson Editor"
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		commit := "Enter"
		if s.currentField().multiline() {
			commit = "Ctrl+S"
		}
		return []layout.KeyHint{
			{Key: commit, Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Slides"},
		{Key: "Tab", Description: "Field"},
		{Key: "Enter", Description: "Edit"},
		{Key: "R", Description: "Regenerate Art"},
		{Key: "A", Description: "Add"},
		{Key: "X", Description: "Delete"},
	}
	if s.currentField().kind == fieldOption {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Mark correct"})
	}
	return append(hints, layout.KeyHint{Key: "G", Description: "Confirm & Generate"})
}

func (s *EditorScreen) fields() []field {
	fs := []field{{kind: fieldTitle}, {kind: fieldContent}, {kind: fieldNotes}, {kind: fieldPrompt}}
	slide, ok := s.editor.ActiveSlide()
	if !ok || slide.Quiz == nil {
		return fs
	}
	fs = append(fs, field{kind: fieldQuestion})
	for i := range slide.Quiz.Options {
		fs = append(fs, field{kind: fieldOption, option: i})
	}
	return append(fs, field{kind: fieldReward})
}

func (s *EditorScreen) currentField() field {
	fs := s.fields()
	if s.focus >= len(fs) {
		s.focus = len(fs) - 1
	}
	return fs[s.focus]
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case imageDoneMsg:
		if s.editor.ApplyImage(msg.Result) {
			return s, s.changed()
		}
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			return s, s.handleEditKey(msg)
		}
		return s, s.handleBrowseKey(msg)
	}

	if s.editing {
		return s, s.forwardToInput(msg)
	}
	return s, nil
}

func (s *EditorScreen) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	s.errMsg = ""
	slide, ok := s.editor.ActiveSlide()

	switch msg.String() {
	case "up", "k":
		s.focus = 0
		return s.imageCmd(s.editor.Move(-1))
	case "down", "j":
		s.focus = 0
		return s.imageCmd(s.editor.Move(1))
	case "tab":
		s.focus = (s.focus + 1) % len(s.fields())
	case "shift+tab":
		n := len(s.fields())
		s.focus = (s.focus + n - 1) % n
	case "enter":
		if ok {
			return s.startEditing(slide)
		}
	case "r":
		if !ok {
			return nil
		}
		req, err := s.editor.RegenerateImage(slide.ID)
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		return tea.Batch(s.changed(), s.imageCmd(&req))
	case "a":
		_, req := s.editor.AddSlide()
		s.focus = 0
		return tea.Batch(s.changed(), s.imageCmd(req))
	case "x", "delete":
		if !ok {
			return nil
		}
		if err := s.editor.RemoveSlide(slide.ID); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.focus = 0
		return s.changed()
	case "c":
		f := s.currentField()
		if ok && f.kind == fieldOption {
			return s.patchQuiz(slide.ID, lesson.QuizPatch{CorrectIndex: lesson.Ptr(f.option)})
		}
	case "o":
		if ok && (slide.Quiz != nil || slide.Type == lesson.SlideQuiz) {
			return s.patchQuiz(slide.ID, lesson.QuizPatch{AddOption: lesson.Ptr("New option")})
		}
	case "g":
		l := s.editor.Confirm()
		return func() tea.Msg { return ConfirmedMsg{Lesson: l} }
	}
	return nil
}

func (s *EditorScreen) startEditing(slide lesson.Slide) tea.Cmd {
	f := s.currentField()
	value := fieldValue(slide, f)
	s.editing = true

	if f.multiline() {
		s.area = textarea.New()
		s.area.ShowLineNumbers = false
		s.area.SetHeight(4)
		s.area.SetValue(value)
		return s.area.Focus()
	}
	s.line = components.NewTextInput("", 0)
	s.line.SetValue(value)
	return s.line.Init()
}

func (s *EditorScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	multiline := s.currentField().multiline()
	switch msg.String() {
	case "esc":
		s.editing = false
		return nil
	case "ctrl+s":
		return s.commit()
	case "enter":
		if !multiline {
			return s.commit()
		}
	}
	return s.forwardToInput(msg)
}

func (s *EditorScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.currentField().multiline() {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.line, cmd = s.line.Update(msg)
	}
	return cmd
}

func (s *EditorScreen) commit() tea.Cmd {
	s.editing = false
	slide, ok := s.editor.ActiveSlide()
	if !ok {
		return nil
	}

	f := s.currentField()
	var value string
	if f.multiline() {
		value = s.area.Value()
	} else {
		value = s.line.Value()
	}

	switch f.kind {
	case fieldTitle:
		return s.patchSlide(slide.ID, lesson.SlidePatch{Title: &value})
	case fieldContent:
		return s.patchSlide(slide.ID, lesson.SlidePatch{Content: &value})
	case fieldNotes:
		return s.patchSlide(slide.ID, lesson.SlidePatch{SpeakerNotes: &value})
	case fieldPrompt:
		return s.patchSlide(slide.ID, lesson.SlidePatch{ImagePrompt: &value})
	case fieldQuestion:
		return s.patchQuiz(slide.ID, lesson.QuizPatch{Question: &value})
	case fieldOption:
		return s.patchQuiz(slide.ID, lesson.QuizPatch{Option: &lesson.OptionEdit{Index: f.option, Text: value}})
	case fieldReward:
		return s.patchQuiz(slide.ID, lesson.QuizPatch{RewardMessage: &value})
	}
	return nil
}

func (s *EditorScreen) patchSlide(id string, p lesson.SlidePatch) tea.Cmd {
	if err := s.editor.UpdateSlideFields(id, p); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.changed()
}

func (s *EditorScreen) patchQuiz(id string, p lesson.QuizPatch) tea.Cmd {
	if err := s.editor.UpdateQuiz(id, p); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.changed()
}

func (s *EditorScreen) changed() tea.Cmd {
	l := s.editor.Lesson()
	return func() tea.Msg { return ChangedMsg{Lesson: l} }
}

// imageCmd runs req in the background. A nil request yields no command.
func (s *EditorScreen) imageCmd(req *edit.ImageRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	images, style := s.images, s.style
	return func() tea.Msg {
		var url string
		if images != nil {
			url = images.GenerateImage(context.Background(), r.Prompt, style)
		}
		return imageDoneMsg{Result: edit.ImageResult{ImageRequest: r, URL: url}}
	}
}

func fieldValue(slide lesson.Slide, f field) string {
	switch f.kind {
	case fieldTitle:
		return slide.Title
	case fieldContent:
		return slide.Content
	case fieldNotes:
		return slide.SpeakerNotes
	case fieldPrompt:
		return slide.ImagePrompt
	}
	if slide.Quiz == nil {
		return ""
	}
	switch f.kind {
	case fieldQuestion:
		return slide.Quiz.Question
	case fieldOption:
		if f.option < len(slide.Quiz.Options) {
			return slide.Quiz.Options[f.option]
		}
	case fieldReward:
		return slide.Quiz.RewardMessage
	}
	return ""
}
