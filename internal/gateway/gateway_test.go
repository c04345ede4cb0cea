package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/llm"
)

const countingFruitsDraft = `{
  "slides": [
    {"id": "1", "type": "cover", "title": "Counting Fruits", "content": "Let's count yummy fruits!", "speakerNotes": "Show the basket.", "imagePrompt": "a smiling basket of fruit", "quiz": null},
    {"id": "2", "type": "content", "title": "One, Two, Three", "content": "One apple, two pears, three plums.", "speakerNotes": "Count on fingers.", "imagePrompt": "an apple, two pears and three plums in a row", "quiz": {"question": "", "options": [], "correctIndex": 0, "rewardMessage": ""}},
    {"id": "3", "type": "content", "title": "Four and Five", "content": "Four grapes and five cherries!", "speakerNotes": "", "imagePrompt": "four grapes and five cherries dancing", "quiz": null},
    {"id": "4", "type": "quiz", "title": "Quiz Time", "content": "", "speakerNotes": "", "imagePrompt": "five oranges on a table", "quiz": {"question": "How many oranges?", "options": ["2", "3", "5", "7"], "correctIndex": 2, "rewardMessage": "Great counting!"}},
    {"id": "5", "type": "ending", "title": "Well Done!", "content": "You counted to five!", "speakerNotes": "", "imagePrompt": "happy kids holding fruit", "quiz": null}
  ]
}`

func fruitsProfile() lesson.TeacherProfile {
	return lesson.TeacherProfile{Grades: []string{"K2"}, Language: lesson.English, Style: lesson.StyleCartoon}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.TransitionDelay = 5 * time.Millisecond
	return opts
}

func TestGenerateDraft_Unconfigured(t *testing.T) {
	_, err := Unconfigured.GenerateDraft(context.Background(), DraftRequest{Topic: "Farm Animals & Sounds"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var zero Client
	_, err = zero.GenerateDraft(context.Background(), DraftRequest{Topic: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateDraft_CountingFruits(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(countingFruitsDraft)})
	c := New(mock, nil, testOptions())

	l, err := c.GenerateDraft(context.Background(), DraftRequest{
		Topic:   "  Counting Fruits 1-5 ",
		Profile: fruitsProfile(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Counting Fruits 1-5", l.Topic)
	assert.NotEmpty(t, l.ID)
	require.Len(t, l.Slides, 5)
	for i, want := range lesson.DraftStructure {
		assert.Equal(t, want, l.Slides[i].Type, "slide %d type", i)
	}

	seen := map[string]bool{}
	for i, s := range l.Slides {
		assert.NotContains(t, []string{"1", "2", "3", "4", "5"}, s.ID, "slide %d kept the model's id", i)
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.Empty(t, s.ImageURL)
		assert.False(t, s.IsLoadingImage)
	}

	assert.Nil(t, l.Slides[1].Quiz, "quiz kept on a content slide")
	quiz := l.Slides[3].Quiz
	require.NotNil(t, quiz)
	assert.Equal(t, []string{"2", "3", "5", "7"}, quiz.Options)
	assert.Equal(t, 2, quiz.CorrectIndex)
	assert.Equal(t, "Great counting!", quiz.RewardMessage)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Same(t, DraftSchema, req.Schema)
	assert.Equal(t, draftSystemPrompt, req.System)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, `Topic: "Counting Fruits 1-5"`)
	assert.Contains(t, msg, "Language: English")
	assert.Contains(t, msg, "Grade: K2")
	assert.Contains(t, msg, "Total Slides: 5 (Strictly)")
}

func TestGenerateDraft_ParseErrors(t *testing.T) {
	var four draftOutput
	require.NoError(t, json.Unmarshal([]byte(countingFruitsDraft), &four))
	four.Slides = four.Slides[:4]
	fourJSON, _ := json.Marshal(four)

	var badIndex draftOutput
	require.NoError(t, json.Unmarshal([]byte(countingFruitsDraft), &badIndex))
	badIndex.Slides[3].Quiz.CorrectIndex = 9
	badIndexJSON, _ := json.Marshal(badIndex)

	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"not json", llm.MockResponse{Content: json.RawMessage(`Sure! Here is a lesson`)}},
		{"four slides", llm.MockResponse{Content: fourJSON}},
		{"quiz index out of range", llm.MockResponse{Content: badIndexJSON}},
		{"schema violation", llm.MockResponse{Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"slides":"nope"}`),
			Err:     errors.New("schema validation failed"),
		}}},
		{"truncated", llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(llm.NewMockProvider(tt.resp), nil, testOptions())
			_, err := c.GenerateDraft(context.Background(), DraftRequest{Topic: "Counting Fruits 1-5", Profile: fruitsProfile()})
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.NotErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestGenerateDraft_RejectedKey(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrAuth{Err: errors.New("API key not valid")}})
	c := New(mock, nil, testOptions())

	_, err := c.GenerateDraft(context.Background(), DraftRequest{Topic: "My Body Parts"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateDraft_ProviderDown(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})
	c := New(mock, nil, testOptions())

	_, err := c.GenerateDraft(context.Background(), DraftRequest{Topic: "Colors of the Rainbow"})
	require.Error(t, err)
	var perr *ParseError
	assert.False(t, errors.As(err, &perr))
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerateDraft_BlankTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	c := New(mock, nil, testOptions())

	_, err := c.GenerateDraft(context.Background(), DraftRequest{Topic: "   "})
	require.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerateImage_InlineData(t *testing.T) {
	images := llm.NewMockImageGenerator(llm.MockImageResponse{Data: []byte("png-bytes"), MIMEType: "image/png"})
	c := New(nil, images, testOptions())

	got := c.GenerateImage(context.Background(), "five oranges on a table", lesson.StyleStorybook)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"), got)

	require.Equal(t, 1, images.CallCount())
	sent := images.Calls[0].Prompt
	assert.True(t, strings.HasSuffix(sent, ": five oranges on a table"), sent)
	assert.Contains(t, sent, "storybook illustration")
}

func TestGenerateImage_FarmAnimalSketchFails(t *testing.T) {
	images := llm.NewMockImageGenerator(llm.MockImageResponse{Err: errors.New("safety block")})
	c := New(nil, images, testOptions())

	got := c.GenerateImage(context.Background(), "farm animal sketch", lesson.StyleCartoon)
	assert.Equal(t, PlaceholderImage, got)
}

func TestGenerateImage_Fallbacks(t *testing.T) {
	t.Run("no inline image", func(t *testing.T) {
		images := llm.NewMockImageGenerator(llm.MockImageResponse{})
		c := New(nil, images, testOptions())
		got := c.GenerateImage(context.Background(), "a red bus", lesson.StyleCartoon)
		assert.Equal(t, SeededImage("a red bus"), got)
		assert.Equal(t, SeededImage("a red bus"), SeededImage("a red bus"))
		assert.NotEqual(t, SeededImage("a red bus"), SeededImage("a blue train"))
	})

	t.Run("hosted url", func(t *testing.T) {
		images := llm.NewMockImageGenerator(llm.MockImageResponse{URL: "https://img.example/bus.png"})
		c := New(nil, images, testOptions())
		assert.Equal(t, "https://img.example/bus.png", c.GenerateImage(context.Background(), "a red bus", ""))
	})

	t.Run("no image backend", func(t *testing.T) {
		assert.Equal(t, PlaceholderImage, Unconfigured.GenerateImage(context.Background(), "a red bus", ""))
	})
}

func TestIllustrationPrompt_DefaultStyle(t *testing.T) {
	got := IllustrationPrompt("a cow", "")
	assert.Equal(t, "Kid friendly, vector art, flat style, bright colors, high contrast, cute: a cow", got)
}

func TestGenerateTransition(t *testing.T) {
	c := New(nil, nil, testOptions())
	a := lesson.Slide{ImagePrompt: "a cow"}
	b := lesson.Slide{ImagePrompt: "a pig"}

	got, err := c.GenerateTransition(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, TransitionAsset, got)
	assert.Contains(t, TransitionPrompt(a, b), "a cow morphing into a pig")

	slow := New(nil, nil, Options{TransitionDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = slow.GenerateTransition(ctx, a, b)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromConfig(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Provider = "mock"
	cfg.Image.Provider = "mock"

	c, err := NewFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, c.Configured())
	assert.True(t, c.CanIllustrate())
	assert.Equal(t, 60*time.Second, c.Options().DraftTimeout)

	missing := llm.DefaultConfig()
	_, err = NewFromConfig(context.Background(), missing, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
