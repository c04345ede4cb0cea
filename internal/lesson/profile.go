package lesson

import "fmt"

// Language is the teaching language for generated content.
type Language string

const (
	English   Language = "English"
	Cantonese Language = "Cantonese"
	Mandarin  Language = "Mandarin"
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Cantonese, Mandarin}

// Style is the visual style requested for illustrations.
type Style string

const (
	StyleCartoon   Style = "cartoon"
	StyleRealistic Style = "realistic"
	StyleStorybook Style = "storybook"
)

// Styles lists the supported illustration styles in display order.
var Styles = []Style{StyleCartoon, StyleRealistic, StyleStorybook}

// StyleInfo describes a style for the wizard.
type StyleInfo struct {
	Label       string
	Description string

	// PromptHint is prepended to image prompts drawn in this style.
	PromptHint string
}

var styleInfo = map[Style]StyleInfo{
	StyleCartoon: {
		Label:       "Super Cute Cartoon",
		Description: "Big eyes, bright colors, simple shapes",
		PromptHint:  "Kid friendly, vector art, flat style, bright colors, high contrast, cute",
	},
	StyleRealistic: {
		Label:       "Semi-Realistic",
		Description: "More detailed, softer colors",
		PromptHint:  "Kid friendly, semi-realistic, detailed, soft colors, gentle lighting",
	},
	StyleStorybook: {
		Label:       "Storybook Illustration",
		Description: "Hand-drawn feel, watercolor textures",
		PromptHint:  "Kid friendly, storybook illustration, hand-drawn, watercolor textures",
	},
}

// Info returns the display metadata for s.
func (s Style) Info() StyleInfo {
	return styleInfo[s]
}

// Grades is the catalogue of grade tags a teacher can pick from.
var Grades = []string{"K1", "K2", "K3", "P1", "P2", "P3"}

// TeacherProfile captures who the lesson is for.
type TeacherProfile struct {
	Grades   []string `json:"grades"`
	Language Language `json:"language"`
	Style    Style    `json:"style"`
}

// DefaultProfile is used when no wizard has been run.
func DefaultProfile() TeacherProfile {
	return TeacherProfile{
		Grades:   []string{"K2"},
		Language: English,
		Style:    StyleCartoon,
	}
}

// HasGrade reports whether grade is selected.
func (p TeacherProfile) HasGrade(grade string) bool {
	for _, g := range p.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// ParseLanguage maps a case-sensitive name to a Language.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// ParseStyle maps a name to a Style.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// ValidGrade reports whether g is in the grade catalogue.
func ValidGrade(g string) bool {
	for _, v := range Grades {
		if v == g {
			return true
		}
	}
	return false
}
