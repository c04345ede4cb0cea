package gateway

import (
	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/llm"
)

// DraftSchema defines the JSON schema for lesson drafts. Every property is
// required so strict structured-output modes accept it; quiz is null on
// slides that are not quizzes.
var DraftSchema = &llm.Schema{
	Name:        "lesson-draft",
	Description: "A five-slide picture lesson for young children",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slides": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Any short identifier; it is replaced after generation",
						},
						"type": map[string]any{
							"type": "string",
							"enum": slideTypeEnum(),
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Slide heading, a few words",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "One or two short sentences read aloud to the class",
						},
						"speakerNotes": map[string]any{
							"type":        "string",
							"description": "Tips for the teacher presenting this slide",
						},
						"imagePrompt": map[string]any{
							"type":        "string",
							"description": "Descriptive, cute, vibrant, flat-style illustration prompt",
						},
						"quiz": map[string]any{
							"type": []any{"object", "null"},
							"properties": map[string]any{
								"question": map[string]any{"type": "string"},
								"options": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"correctIndex": map[string]any{
									"type":        "integer",
									"description": "0-based index of the correct option",
								},
								"rewardMessage": map[string]any{
									"type":        "string",
									"description": "Short cheer shown after a correct answer",
								},
							},
							"required":             []any{"question", "options", "correctIndex", "rewardMessage"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"id", "type", "title", "content", "speakerNotes", "imagePrompt", "quiz"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"slides"},
		"additionalProperties": false,
	},
}

func slideTypeEnum() []any {
	out := make([]any, len(lesson.SlideTypes))
	for i, t := range lesson.SlideTypes {
		out[i] = string(t)
	}
	return out
}
