package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/llm"
)

// DraftRequest is the input to GenerateDraft.
type DraftRequest struct {
	Topic   string
	Profile lesson.TeacherProfile
}

type draftOutput struct {
	Slides []draftSlide `json:"slides"`
}

type draftSlide struct {
	ID           string           `json:"id"`
	Type         lesson.SlideType `json:"type"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	SpeakerNotes string           `json:"speakerNotes"`
	ImagePrompt  string           `json:"imagePrompt"`
	Quiz         *lesson.QuizData `json:"quiz"`
}

// GenerateDraft asks the text provider for a five-slide lesson about
// req.Topic. Slide and lesson IDs are freshly assigned; images are left
// empty for the editor to request on demand.
//
// Errors: ErrNotConfigured when the client has no usable key, *ParseError
// when the response does not describe a valid draft.
func (c Client) GenerateDraft(ctx context.Context, req DraftRequest) (lesson.Lesson, error) {
	if !c.Configured() {
		return lesson.Lesson{}, ErrNotConfigured
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return lesson.Lesson{}, errors.New("topic is required")
	}
	req.Topic = topic

	if c.opts.DraftTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.DraftTimeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "lesson-draft")

	resp, err := c.text.Generate(ctx, llm.Request{
		System: draftSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDraftUserMessage(req)},
		},
		Schema:      DraftSchema,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return lesson.Lesson{}, classifyDraftError(err)
	}

	return parseDraft(topic, resp.Content)
}

func classifyDraftError(err error) error {
	var (
		auth    *llm.ErrAuth
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &auth):
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	case errors.As(err, &invalid):
		return &ParseError{Content: string(invalid.Content), Err: err}
	case errors.As(err, &maxTok):
		return &ParseError{Content: string(maxTok.Content), Err: err}
	}
	return fmt.Errorf("lesson draft: %w", err)
}

// parseDraft turns the provider's JSON into a Lesson and checks its shape.
func parseDraft(topic string, raw json.RawMessage) (lesson.Lesson, error) {
	var out draftOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return lesson.Lesson{}, &ParseError{Content: string(raw), Err: err}
	}

	l := lesson.Lesson{
		ID:     lesson.NewID(),
		Topic:  topic,
		Slides: make([]lesson.Slide, 0, len(out.Slides)),
	}
	for _, s := range out.Slides {
		slide := lesson.Slide{
			ID:           lesson.NewID(),
			Type:         s.Type,
			Title:        s.Title,
			Content:      s.Content,
			SpeakerNotes: s.SpeakerNotes,
			ImagePrompt:  s.ImagePrompt,
		}
		// Models sometimes echo an empty quiz on other slides; only quiz
		// slides keep one.
		if s.Type == lesson.SlideQuiz && s.Quiz != nil {
			q := s.Quiz.Clone()
			slide.Quiz = &q
		}
		l.Slides = append(l.Slides, slide)
	}

	if err := l.ValidateDraft(); err != nil {
		return lesson.Lesson{}, &ParseError{Content: string(raw), Err: err}
	}
	return l, nil
}
