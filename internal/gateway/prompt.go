package gateway

import (
	"fmt"
	"strings"

	"github.com/abhisek/nanoclass/internal/lesson"
)

const draftSystemPrompt = `You are a warm, playful early-years teacher who designs short picture lessons for children aged 3-6. You write simple sentences a young child can follow when read aloud.`

func buildDraftUserMessage(req DraftRequest) string {
	var b strings.Builder

	grades := "any"
	if len(req.Profile.Grades) > 0 {
		grades = strings.Join(req.Profile.Grades, ", ")
	}
	language := req.Profile.Language
	if language == "" {
		language = lesson.English
	}

	b.WriteString(fmt.Sprintf("Topic: %q\n", req.Topic))
	b.WriteString(fmt.Sprintf("Language: %s\n", language))
	b.WriteString(fmt.Sprintf("Grade: %s\n", grades))
	if info := req.Profile.Style.Info(); info.Label != "" {
		b.WriteString(fmt.Sprintf("Visual style: %s (%s)\n", info.Label, info.Description))
	}
	b.WriteString("Total Slides: 5 (Strictly)\n")

	b.WriteString(`
Structure:
1. Cover Slide (type "cover")
2. Intro Content Slide (type "content")
3. Deep Dive Content Slide (type "content")
4. Interactive Quiz Slide, multiple choice (type "quiz")
5. Ending/Celebration Slide (type "ending")

Instructions:
1. Write every title, content, question, option and reward message in the language above.
2. Only the quiz slide has a quiz; set quiz to null on every other slide.
3. The quiz has 3 or 4 short options and exactly one correct answer. correctIndex is the 0-based position of that answer.
4. For images, provide a very descriptive, cute, vibrant, flat-style illustration prompt suitable for children, written in English.
5. Output strictly in JSON.`)

	return b.String()
}
