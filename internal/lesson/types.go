package lesson

import "github.com/google/uuid"

// SlideType identifies the structural role of a slide.
type SlideType string

const (
	SlideCover   SlideType = "cover"
	SlideContent SlideType = "content"
	SlideQuiz    SlideType = "quiz"
	SlideEnding  SlideType = "ending"
)

// SlideTypes lists every valid slide type.
var SlideTypes = []SlideType{SlideCover, SlideContent, SlideQuiz, SlideEnding}

// Valid reports whether t is one of the known slide types.
func (t SlideType) Valid() bool {
	for _, v := range SlideTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DraftStructure is the fixed slide order of a freshly drafted lesson.
var DraftStructure = []SlideType{SlideCover, SlideContent, SlideContent, SlideQuiz, SlideEnding}

// QuizData is the multiple-choice question attached to a quiz slide.
type QuizData struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`

	// CorrectIndex indexes into Options.
	CorrectIndex  int    `json:"correctIndex"`
	RewardMessage string `json:"rewardMessage"`
}

// Slide is one unit of lesson content.
type Slide struct {
	ID           string    `json:"id"`
	Type         SlideType `json:"type"`
	Title        string    `json:"title,omitempty"`
	Content      string    `json:"content,omitempty"`
	SpeakerNotes string    `json:"speakerNotes,omitempty"`

	// ImagePrompt is the illustration request for this slide. Required.
	ImagePrompt string `json:"imagePrompt"`

	// ImageURL is empty until image generation resolves. It holds either a
	// URL or a data: URI with an inline image.
	ImageURL string `json:"imageUrl,omitempty"`

	// IsLoadingImage is true while an image request is in flight. It is
	// never serialized.
	IsLoadingImage bool `json:"-"`

	// Quiz is set only on quiz slides.
	Quiz *QuizData `json:"quiz,omitempty"`
}

// Lesson is an ordered list of slides about one topic.
type Lesson struct {
	ID     string  `json:"id"`
	Topic  string  `json:"topic"`
	Slides []Slide `json:"slides"`
}

// NewID returns a fresh unique identifier for lessons and slides.
func NewID() string {
	return uuid.New().String()
}

// Placeholder text for slides added in the editor.
const (
	NewSlideTitle       = "New Slide"
	NewSlideContent     = "Add your text here"
	NewSlideImagePrompt = "A cute educational illustration"
)

// NewContentSlide builds a blank content slide with placeholder text.
func NewContentSlide() Slide {
	return Slide{
		ID:          NewID(),
		Type:        SlideContent,
		Title:       NewSlideTitle,
		Content:     NewSlideContent,
		ImagePrompt: NewSlideImagePrompt,
	}
}
