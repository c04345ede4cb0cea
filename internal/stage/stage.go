// Package stage is the application's top-level state machine: which screen
// is active and what lesson data it works on.
package stage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/lesson"
)

// Stage identifies the active step of the application.
type Stage int

const (
	ApiEntry Stage = iota
	Onboarding
	TopicInput
	GeneratingDraft
	Editor
	GeneratingFinal
	Player
)

var stageNames = [...]string{
	ApiEntry:        "api-entry",
	Onboarding:      "onboarding",
	TopicInput:      "topic-input",
	GeneratingDraft: "generating-draft",
	Editor:          "editor",
	GeneratingFinal: "generating-final",
	Player:          "player",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// User-facing messages for failed drafts.
const (
	MsgCheckKey  = "Failed to generate lesson. Please check API Key."
	MsgGarbled   = "The lesson came back in an unexpected shape. Please try again."
	MsgTryAgain  = "Failed to generate lesson. Please try again."
	MsgBlankText = "Please enter a topic first."
)

// ErrWrongStage is returned when an operation is invoked from a stage that
// does not accept it.
type ErrWrongStage struct {
	Op   string
	At   Stage
	Want Stage
}

func (e *ErrWrongStage) Error() string {
	return fmt.Sprintf("%s: not allowed in %s (want %s)", e.Op, e.At, e.Want)
}

// ErrBlank is returned for empty keys and topics.
var ErrBlank = errors.New("value is blank")

// Controller owns the current stage and the data shared between stages.
// It performs no I/O.
type Controller struct {
	stage   Stage
	profile lesson.TeacherProfile
	topic   string
	lesson  lesson.Lesson
	errMsg  string
	token   uint64
}

// New returns a controller at ApiEntry, or at Onboarding when a credential
// is already stored.
func New(hasCredential bool) *Controller {
	c := &Controller{stage: ApiEntry}
	if hasCredential {
		c.stage = Onboarding
	}
	return c
}

// Stage returns the active stage.
func (c *Controller) Stage() Stage { return c.stage }

// Profile returns the completed teacher profile.
func (c *Controller) Profile() lesson.TeacherProfile { return c.profile }

// Topic returns the topic of the current lesson.
func (c *Controller) Topic() string { return c.topic }

// Lesson returns the current lesson.
func (c *Controller) Lesson() lesson.Lesson { return c.lesson }

// Error returns the message to surface to the user, if any.
func (c *Controller) Error() string { return c.errMsg }

func (c *Controller) expect(op string, want Stage) error {
	if c.stage != want {
		return &ErrWrongStage{Op: op, At: c.stage, Want: want}
	}
	return nil
}

// SubmitKey accepts an API key and moves on to onboarding. The key itself
// is persisted by the caller.
func (c *Controller) SubmitKey(key string) error {
	if err := c.expect("submit key", ApiEntry); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("api key: %w", ErrBlank)
	}
	c.stage = Onboarding
	return nil
}

// CompleteProfile stores the wizard result.
func (c *Controller) CompleteProfile(p lesson.TeacherProfile) error {
	if err := c.expect("complete profile", Onboarding); err != nil {
		return err
	}
	p.Grades = append([]string(nil), p.Grades...)
	c.profile = p
	c.stage = TopicInput
	return nil
}

// ChooseTopic starts a draft for topic and returns the token its result
// must carry.
func (c *Controller) ChooseTopic(topic string) (uint64, error) {
	if err := c.expect("choose topic", TopicInput); err != nil {
		return 0, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		c.errMsg = MsgBlankText
		return 0, fmt.Errorf("topic: %w", ErrBlank)
	}
	c.token++
	c.topic = topic
	c.errMsg = ""
	c.stage = GeneratingDraft
	return c.token, nil
}

// DraftSucceeded opens l in the editor. Results for an outdated token are
// dropped and reported with false.
func (c *Controller) DraftSucceeded(token uint64, l lesson.Lesson) bool {
	if c.stage != GeneratingDraft || token != c.token {
		return false
	}
	c.lesson = l.Clone()
	c.stage = Editor
	return true
}

// DraftFailed returns to topic input with a message describing err.
func (c *Controller) DraftFailed(token uint64, err error) bool {
	if c.stage != GeneratingDraft || token != c.token {
		return false
	}
	c.lesson = lesson.Lesson{}
	c.errMsg = Message(err)
	c.stage = TopicInput
	return true
}

// Message maps a draft error to the banner text shown on topic input.
func Message(err error) string {
	var perr *gateway.ParseError
	switch {
	case errors.Is(err, gateway.ErrNotConfigured):
		return MsgCheckKey
	case errors.As(err, &perr):
		return MsgGarbled
	}
	return MsgTryAgain
}

// UpdateLesson replaces the lesson being edited.
func (c *Controller) UpdateLesson(l lesson.Lesson) error {
	if err := c.expect("update lesson", Editor); err != nil {
		return err
	}
	c.lesson = l.Clone()
	return nil
}

// ConfirmLesson starts the final render.
func (c *Controller) ConfirmLesson() error {
	if err := c.expect("confirm lesson", Editor); err != nil {
		return err
	}
	c.lesson = c.lesson.ClearTransient()
	c.stage = GeneratingFinal
	return nil
}

// FinalReady moves to the player once the final render delay has passed.
func (c *Controller) FinalReady() error {
	if err := c.expect("final ready", GeneratingFinal); err != nil {
		return err
	}
	c.stage = Player
	return nil
}

// ClosePlayer ends playback and discards the lesson and topic.
func (c *Controller) ClosePlayer() error {
	if err := c.expect("close player", Player); err != nil {
		return err
	}
	c.lesson = lesson.Lesson{}
	c.topic = ""
	c.stage = TopicInput
	return nil
}

// DismissError clears the surfaced message.
func (c *Controller) DismissError() {
	c.errMsg = ""
}
