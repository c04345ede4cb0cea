package stage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/lesson"
)

func sampleLesson() lesson.Lesson {
	return lesson.Lesson{
		ID:    "l1",
		Topic: "Counting Fruits 1-5",
		Slides: []lesson.Slide{
			{ID: "s1", Type: lesson.SlideCover, ImagePrompt: "fruit", IsLoadingImage: true},
		},
	}
}

func toEditor(t *testing.T) (*Controller, uint64) {
	t.Helper()
	c := New(false)
	require.NoError(t, c.SubmitKey("AIza-test"))
	require.NoError(t, c.CompleteProfile(lesson.DefaultProfile()))
	tok, err := c.ChooseTopic("Counting Fruits 1-5")
	require.NoError(t, err)
	require.True(t, c.DraftSucceeded(tok, sampleLesson()))
	return c, tok
}

func TestInitialStage(t *testing.T) {
	assert.Equal(t, ApiEntry, New(false).Stage())
	assert.Equal(t, Onboarding, New(true).Stage())
}

func TestHappyPath(t *testing.T) {
	c, _ := toEditor(t)
	assert.Equal(t, Editor, c.Stage())
	assert.Equal(t, "Counting Fruits 1-5", c.Topic())

	edited := sampleLesson()
	edited.Slides[0].Title = "Fruit!"
	require.NoError(t, c.UpdateLesson(edited))
	assert.True(t, lesson.Equal(edited, c.Lesson()))

	require.NoError(t, c.ConfirmLesson())
	assert.Equal(t, GeneratingFinal, c.Stage())
	assert.False(t, c.Lesson().AnyLoading())

	require.NoError(t, c.FinalReady())
	assert.Equal(t, Player, c.Stage())

	require.NoError(t, c.ClosePlayer())
	assert.Equal(t, TopicInput, c.Stage())
	assert.Empty(t, c.Topic())
	assert.Empty(t, c.Lesson().Slides)
	assert.Equal(t, lesson.English, c.Profile().Language, "profile survives closing the player")
}

func TestWrongStage(t *testing.T) {
	c := New(false)

	var ws *ErrWrongStage
	require.ErrorAs(t, c.CompleteProfile(lesson.DefaultProfile()), &ws)
	assert.Equal(t, ApiEntry, ws.At)
	assert.Equal(t, Onboarding, ws.Want)

	_, err := c.ChooseTopic("x")
	assert.ErrorAs(t, err, &ws)
	assert.ErrorAs(t, c.UpdateLesson(sampleLesson()), &ws)
	assert.ErrorAs(t, c.ConfirmLesson(), &ws)
	assert.ErrorAs(t, c.FinalReady(), &ws)
	assert.ErrorAs(t, c.ClosePlayer(), &ws)
	assert.Equal(t, ApiEntry, c.Stage(), "failed operations leave the stage alone")
}

func TestBlankInputs(t *testing.T) {
	c := New(false)
	assert.ErrorIs(t, c.SubmitKey("   "), ErrBlank)
	assert.Equal(t, ApiEntry, c.Stage())

	require.NoError(t, c.SubmitKey("k"))
	require.NoError(t, c.CompleteProfile(lesson.DefaultProfile()))
	_, err := c.ChooseTopic("\t")
	assert.ErrorIs(t, err, ErrBlank)
	assert.Equal(t, TopicInput, c.Stage())
	assert.Equal(t, MsgBlankText, c.Error())
}

func TestDraftFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not configured", fmt.Errorf("lesson draft: %w", gateway.ErrNotConfigured), MsgCheckKey},
		{"parse", &gateway.ParseError{Err: errors.New("bad json")}, MsgGarbled},
		{"other", errors.New("network down"), MsgTryAgain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(true)
			require.NoError(t, c.CompleteProfile(lesson.DefaultProfile()))
			tok, err := c.ChooseTopic("My Body Parts")
			require.NoError(t, err)

			require.True(t, c.DraftFailed(tok, tt.err))
			assert.Equal(t, TopicInput, c.Stage())
			assert.Equal(t, tt.want, c.Error())
			assert.Empty(t, c.Lesson().Slides)

			c.DismissError()
			assert.Empty(t, c.Error())
		})
	}
}

func TestStaleDraftResult(t *testing.T) {
	c := New(true)
	require.NoError(t, c.CompleteProfile(lesson.DefaultProfile()))
	first, _ := c.ChooseTopic("Farm Animals & Sounds")
	require.True(t, c.DraftFailed(first, errors.New("timeout")))

	second, err := c.ChooseTopic("Colors of the Rainbow")
	require.NoError(t, err)
	assert.Greater(t, second, first)
	assert.Empty(t, c.Error(), "choosing a topic clears the banner")

	assert.False(t, c.DraftSucceeded(first, sampleLesson()))
	assert.False(t, c.DraftFailed(first, errors.New("late")))
	assert.Equal(t, GeneratingDraft, c.Stage())

	assert.True(t, c.DraftSucceeded(second, sampleLesson()))
	assert.False(t, c.DraftSucceeded(second, sampleLesson()), "result applied once")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "generating-final", GeneratingFinal.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
