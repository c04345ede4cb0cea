package editor

import (
	"encoding/base64"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/ui/components"
	"github.com/abhisek/nanoclass/internal/ui/theme"
)

const sidebarWidth = 30

func (s *EditorScreen) View(width, height int) string {
	sidebar := s.renderSidebar(height)

	canvasWidth := width - sidebarWidth - 3
	if canvasWidth < 30 {
		canvasWidth = 30
	}
	canvas := s.renderCanvas(canvasWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas)
}

func (s *EditorScreen) renderSidebar(height int) string {
	l := s.editor.Lesson()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Purple).Bold(true).Render("Lesson Slides"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(truncate(fmt.Sprintf("%d slides • %s", len(l.Slides), l.Topic), sidebarWidth-4)))
	b.WriteString("\n\n")

	for i, slide := range l.Slides {
		marker := "·"
		switch {
		case slide.IsLoadingImage:
			marker = theme.Loading.Render("⟳")
		case slide.ImageURL != "":
			marker = lipgloss.NewStyle().Foreground(theme.Green).Render("▣")
		}

		tag := "  "
		if slide.Type == lesson.SlideQuiz {
			tag = lipgloss.NewStyle().Foreground(theme.Orange).Bold(true).Render("Q ")
		}

		title := slide.Title
		if title == "" {
			title = string(slide.Type)
		}
		line := fmt.Sprintf("%2d %s %s", i+1, marker, tag) + truncate(title, sidebarWidth-12)

		if slide.ID == s.editor.SelectedID() {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Blue).Bold(true).Render("▸" + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(" " + line))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(max(height-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Yellow).
		Padding(0, 1).
		Render(b.String())
}

func (s *EditorScreen) renderCanvas(width int) string {
	slide, ok := s.editor.ActiveSlide()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	var b strings.Builder

	typeLabel := strings.ToUpper(string(slide.Type))
	b.WriteString(theme.Label.Render(typeLabel))
	if s.editor.Regenerating() {
		b.WriteString("   " + theme.Loading.Render("painting..."))
	}
	b.WriteString("\n")
	b.WriteString(renderImage(slide, width-4))
	b.WriteString("\n\n")

	fs := s.fields()
	for i, f := range fs {
		if f.kind == fieldQuestion {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Orange).Bold(true).Render("QUIZ EDITOR"))
			b.WriteString("\n")
		}
		b.WriteString(s.renderField(slide, f, i == s.focus, width-4))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Teacher Tip: keep text short and large. Regenerate art until the characters look consistent."))
	b.WriteString("\n\n")
	btn := components.Button{Label: "✔ Confirm & Generate Video", Active: !s.editing}
	b.WriteString(btn.View())

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *EditorScreen) renderField(slide lesson.Slide, f field, focused bool, width int) string {
	label := f.label()
	if f.kind == fieldOption && slide.Quiz != nil && f.option == slide.Quiz.CorrectIndex {
		label += " ✓"
	}

	labelStyle := theme.Label
	prefix := "  "
	if focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Blue).Bold(true)
		prefix = "▸ "
	}
	head := labelStyle.Render(prefix + label)

	if focused && s.editing {
		if f.multiline() {
			s.area.SetWidth(width - 2)
			return head + "\n" + s.area.View()
		}
		return head + "\n  " + s.line.View()
	}

	value := fieldValue(slide, f)
	if value == "" {
		value = theme.Hint.Render("(empty)")
	} else {
		value = theme.Body.Render(truncate(strings.ReplaceAll(value, "\n", " ⏎ "), width-4))
	}
	return head + "\n  " + value
}

// renderImage describes the slide's illustration in one line.
func renderImage(slide lesson.Slide, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Align(lipgloss.Center)

	switch {
	case slide.IsLoadingImage:
		return style.Foreground(theme.Blue).Render("🎨 Painting cartoon...")
	case slide.ImageURL == "":
		return style.Foreground(theme.TextDim).Render("No image yet. Press R to Generate Image")
	}
	return style.Foreground(theme.Text).Render(truncate("🖼  "+DescribeImage(slide.ImageURL), width-2))
}

// DescribeImage returns a short human description of an image reference.
// Inline data URIs are summarized by type and size.
func DescribeImage(ref string) string {
	if !strings.HasPrefix(ref, "data:") {
		return ref
	}
	meta, data, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return "inline image"
	}
	mime := strings.TrimSuffix(meta, ";base64")
	size := base64.StdEncoding.DecodedLen(len(data))
	return fmt.Sprintf("inline %s image (%.1f KB)", mime, float64(size)/1024)
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
