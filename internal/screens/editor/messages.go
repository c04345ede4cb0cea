package editor

import (
	edit "github.com/abhisek/nanoclass/internal/editor"
	"github.com/abhisek/nanoclass/internal/lesson"
)

// ChangedMsg is sent after every edit with the new lesson value.
type ChangedMsg struct {
	Lesson lesson.Lesson
}

// ConfirmedMsg is sent when the teacher confirms the lesson.
type ConfirmedMsg struct {
	Lesson lesson.Lesson
}

// imageDoneMsg carries a finished illustration back to the screen.
type imageDoneMsg struct {
	Result edit.ImageResult
}
