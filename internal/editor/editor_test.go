package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nanoclass/internal/lesson"
)

func farmLesson() lesson.Lesson {
	return lesson.Lesson{
		ID:    "lesson-farm",
		Topic: "Farm Animals & Sounds",
		Slides: []lesson.Slide{
			{ID: "cover", Type: lesson.SlideCover, Title: "On the Farm", ImagePrompt: "a red barn"},
			{ID: "cow", Type: lesson.SlideContent, Title: "The Cow", Content: "The cow says moo!", ImagePrompt: "farm animal sketch"},
			{ID: "pig", Type: lesson.SlideContent, Title: "The Pig", Content: "The pig says oink!", ImagePrompt: "a pink pig", ImageURL: "https://img.example/pig.png"},
			{ID: "quiz", Type: lesson.SlideQuiz, Title: "Who says moo?", ImagePrompt: "a cow and a pig", Quiz: &lesson.QuizData{
				Question:      "Who says moo?",
				Options:       []string{"Pig", "Cow", "Duck"},
				CorrectIndex:  1,
				RewardMessage: "Moo-velous!",
			}},
			{ID: "end", Type: lesson.SlideEnding, Title: "Bye Farm!", ImagePrompt: "waving farmer"},
		},
	}
}

func TestNew_SelectsFirstSlide(t *testing.T) {
	e := New(farmLesson())
	assert.Equal(t, "cover", e.SelectedID())

	req := e.Init()
	require.NotNil(t, req)
	assert.Equal(t, "cover", req.SlideID)
	assert.Equal(t, "a red barn", req.Prompt)

	s, ok := e.ActiveSlide()
	require.True(t, ok)
	assert.True(t, s.IsLoadingImage)
	assert.True(t, e.Regenerating())
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	l := farmLesson()
	e := New(l)
	require.NoError(t, e.UpdateSlideFields("cow", lesson.SlidePatch{Title: lesson.Ptr("Moo")}))
	assert.Equal(t, "The Cow", l.Slides[1].Title)
}

func TestSelectSlide(t *testing.T) {
	e := New(farmLesson())

	req, err := e.SelectSlide("cow")
	require.NoError(t, err)
	require.NotNil(t, req, "slide without image should request one")
	assert.Equal(t, "cow", req.SlideID)

	// already loading
	req, err = e.SelectSlide("cow")
	require.NoError(t, err)
	assert.Nil(t, req)

	// already illustrated
	req, err = e.SelectSlide("pig")
	require.NoError(t, err)
	assert.Nil(t, req)

	_, err = e.SelectSlide("missing")
	assert.Error(t, err)
	assert.Equal(t, "pig", e.SelectedID())
}

func TestSelectSlide_OnlyRequestsForThatSlide(t *testing.T) {
	e := New(farmLesson())
	e.SelectSlide("cow")

	loading := 0
	for _, s := range e.Lesson().Slides {
		if s.IsLoadingImage {
			loading++
			assert.Equal(t, "cow", s.ID)
		}
	}
	assert.Equal(t, 1, loading)
}

func TestMove_Clamps(t *testing.T) {
	e := New(farmLesson())
	e.Move(-3)
	assert.Equal(t, "cover", e.SelectedID())
	e.Move(10)
	assert.Equal(t, "end", e.SelectedID())
	e.Move(-1)
	assert.Equal(t, "quiz", e.SelectedID())
}

func TestUpdateSlideFields_Idempotent(t *testing.T) {
	e := New(farmLesson())
	p := lesson.SlidePatch{Title: lesson.Ptr("Cows Go Moo"), Content: lesson.Ptr("Moo moo!")}

	require.NoError(t, e.UpdateSlideFields("cow", p))
	once := e.Lesson()
	require.NoError(t, e.UpdateSlideFields("cow", p))
	assert.True(t, lesson.Equal(once, e.Lesson()))

	s, _ := once.Slide("cow")
	assert.Equal(t, "Cows Go Moo", s.Title)
	assert.Equal(t, "farm animal sketch", s.ImagePrompt, "unset fields are preserved")

	assert.Error(t, e.UpdateSlideFields("missing", p))
}

func TestUpdateSlideFields_QuizReplacesWhole(t *testing.T) {
	e := New(farmLesson())
	require.NoError(t, e.UpdateSlideFields("quiz", lesson.SlidePatch{Quiz: &lesson.QuizData{Question: "Which is pink?"}}))

	s, _ := e.Lesson().Slide("quiz")
	require.NotNil(t, s.Quiz)
	assert.Equal(t, "Which is pink?", s.Quiz.Question)
	assert.Empty(t, s.Quiz.Options)
	assert.Empty(t, s.Quiz.RewardMessage)
}

func TestUpdateQuiz_PreservesOtherFields(t *testing.T) {
	e := New(farmLesson())

	require.NoError(t, e.UpdateQuiz("quiz", lesson.QuizPatch{
		Option: &lesson.OptionEdit{Index: 2, Text: "Hen"},
	}))
	s, _ := e.Lesson().Slide("quiz")
	assert.Equal(t, []string{"Pig", "Cow", "Hen"}, s.Quiz.Options)
	assert.Equal(t, "Who says moo?", s.Quiz.Question)
	assert.Equal(t, 1, s.Quiz.CorrectIndex)
	assert.Equal(t, "Moo-velous!", s.Quiz.RewardMessage)

	err := e.UpdateQuiz("quiz", lesson.QuizPatch{CorrectIndex: lesson.Ptr(3)})
	assert.Error(t, err)
	s, _ = e.Lesson().Slide("quiz")
	assert.Equal(t, 1, s.Quiz.CorrectIndex, "failed patch leaves quiz unchanged")
}

func TestUpdateQuiz_RejectsNonQuizSlide(t *testing.T) {
	e := New(farmLesson())
	err := e.UpdateQuiz("cow", lesson.QuizPatch{Question: lesson.Ptr("What does the cow say?")})
	require.Error(t, err)

	s, _ := e.Lesson().Slide("cow")
	assert.Nil(t, s.Quiz)
	assert.NoError(t, e.Lesson().Validate())
}

func TestUpdateQuiz_BlankQuizSlideGetsTwoOptions(t *testing.T) {
	l := farmLesson()
	l.Slides[3].Quiz = nil
	e := New(l)

	require.NoError(t, e.UpdateQuiz("quiz", lesson.QuizPatch{Question: lesson.Ptr("Who says oink?")}))
	s, _ := e.Lesson().Slide("quiz")
	require.NotNil(t, s.Quiz)
	assert.Equal(t, "Who says oink?", s.Quiz.Question)
	assert.Len(t, s.Quiz.Options, 2)
	assert.NoError(t, e.Lesson().Validate())
}

func TestUpdateQuiz_KeepsLessonValid(t *testing.T) {
	patches := []lesson.QuizPatch{
		{Question: lesson.Ptr("Who says quack?")},
		{Option: &lesson.OptionEdit{Index: 0, Text: "Hen"}},
		{Option: &lesson.OptionEdit{Index: 5, Text: "Goat"}},
		{AddOption: lesson.Ptr("Goose")},
		{CorrectIndex: lesson.Ptr(3)},
		{CorrectIndex: lesson.Ptr(-1)},
		{CorrectIndex: lesson.Ptr(9)},
		{RewardMessage: lesson.Ptr("Quack-tastic!")},
	}
	for _, id := range []string{"cover", "cow", "quiz", "end"} {
		e := New(farmLesson())
		for _, p := range patches {
			_ = e.UpdateQuiz(id, p)
			require.NoError(t, e.Lesson().Validate(), "slide %s", id)
		}
	}
}

func TestApplyImage(t *testing.T) {
	e := New(farmLesson())
	req, err := e.RegenerateImage("pig")
	require.NoError(t, err)

	ok := e.ApplyImage(ImageResult{ImageRequest: req, URL: "data:image/png;base64,AAAA"})
	require.True(t, ok)

	s, _ := e.Lesson().Slide("pig")
	assert.Equal(t, "data:image/png;base64,AAAA", s.ImageURL)
	assert.False(t, s.IsLoadingImage)
}

func TestApplyImage_Stale(t *testing.T) {
	t.Run("superseded request", func(t *testing.T) {
		e := New(farmLesson())
		first, _ := e.RegenerateImage("cow")
		second, _ := e.RegenerateImage("cow")

		assert.False(t, e.ApplyImage(ImageResult{ImageRequest: first, URL: "old"}))
		s, _ := e.Lesson().Slide("cow")
		assert.True(t, s.IsLoadingImage)

		assert.True(t, e.ApplyImage(ImageResult{ImageRequest: second, URL: "new"}))
		s, _ = e.Lesson().Slide("cow")
		assert.Equal(t, "new", s.ImageURL)
	})

	t.Run("slide removed", func(t *testing.T) {
		e := New(farmLesson())
		req, _ := e.RegenerateImage("cow")
		require.NoError(t, e.RemoveSlide("cow"))
		before := e.Lesson()

		assert.False(t, e.ApplyImage(ImageResult{ImageRequest: req, URL: "late"}))
		assert.True(t, lesson.Equal(before, e.Lesson()))
	})

	t.Run("different lesson", func(t *testing.T) {
		e := New(farmLesson())
		req, _ := e.RegenerateImage("cow")
		req.LessonID = "lesson-other"
		assert.False(t, e.ApplyImage(ImageResult{ImageRequest: req, URL: "x"}))
	})
}

// The image backend rejects the cow prompt; the gateway hands back its
// placeholder and the editor must leave the slide usable.
func TestFarmAnimalSketchFailure(t *testing.T) {
	const placeholder = "https://picsum.photos/800/450?grayscale"

	e := New(farmLesson())
	req, err := e.SelectSlide("cow")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, "farm animal sketch", req.Prompt)

	require.True(t, e.ApplyImage(ImageResult{ImageRequest: *req, URL: placeholder}))

	s, ok := e.ActiveSlide()
	require.True(t, ok)
	assert.Equal(t, placeholder, s.ImageURL)
	assert.False(t, s.IsLoadingImage)
	assert.False(t, e.Regenerating())

	// retry is still possible
	again, err := e.RegenerateImage("cow")
	require.NoError(t, err)
	assert.Greater(t, again.Seq, req.Seq)
}

func TestAddSlide(t *testing.T) {
	e := New(farmLesson())
	e.SelectSlide("pig")

	s, req := e.AddSlide()
	l := e.Lesson()
	require.Len(t, l.Slides, 6)
	assert.Equal(t, 3, l.IndexOf(s.ID), "inserted right after the active slide")
	assert.Equal(t, s.ID, e.SelectedID())

	assert.Equal(t, lesson.SlideContent, s.Type)
	assert.Equal(t, "New Slide", s.Title)
	assert.Equal(t, "Add your text here", s.Content)
	assert.Equal(t, "A cute educational illustration", s.ImagePrompt)

	require.NotNil(t, req)
	assert.Equal(t, s.ID, req.SlideID)
}

func TestAddSlide_AfterLast(t *testing.T) {
	e := New(farmLesson())
	e.SelectSlide("end")
	s, _ := e.AddSlide()
	l := e.Lesson()
	assert.Equal(t, s.ID, l.Slides[len(l.Slides)-1].ID)
}

func TestRemoveSlide(t *testing.T) {
	e := New(farmLesson())
	e.SelectSlide("pig")

	require.NoError(t, e.RemoveSlide("pig"))
	assert.Equal(t, "quiz", e.SelectedID(), "successor becomes active")

	e.SelectSlide("end")
	require.NoError(t, e.RemoveSlide("end"))
	assert.Equal(t, "quiz", e.SelectedID(), "predecessor when removing the tail")

	require.NoError(t, e.RemoveSlide("cover"))
	assert.Equal(t, "quiz", e.SelectedID(), "selection kept when another slide goes")

	require.NoError(t, e.RemoveSlide("cow"))
	assert.Error(t, e.RemoveSlide("quiz"), "last slide cannot be removed")
	assert.Len(t, e.Lesson().Slides, 1)
}

func TestActiveSlide_StaleSelection(t *testing.T) {
	e := New(lesson.Lesson{ID: "empty"})
	_, ok := e.ActiveSlide()
	assert.False(t, ok)
	assert.Nil(t, e.Init())
	assert.Nil(t, e.Move(1))
}

func TestConfirm_DoesNotMutate(t *testing.T) {
	e := New(farmLesson())
	e.Init()
	before := e.Lesson()

	out := e.Confirm()
	assert.False(t, out.AnyLoading())
	assert.True(t, lesson.Equal(before, e.Lesson()))
	assert.True(t, e.Regenerating())
}
