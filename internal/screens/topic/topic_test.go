package topic

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
	downKey  = tea.KeyPressMsg{Code: tea.KeyDown}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func TestTypedTopic(t *testing.T) {
	s := New("")
	s.input.SetValue("  Shapes around us ")

	_, cmd := s.Update(enterKey)
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(ChosenMsg)
	if !ok || msg.Topic != "Shapes around us" {
		t.Errorf("got %#v", cmd())
	}
}

func TestBlankTopicIgnored(t *testing.T) {
	s := New("")
	if _, cmd := s.Update(enterKey); cmd != nil {
		t.Error("blank topic should not submit")
	}
}

func TestSampleTopic(t *testing.T) {
	s := New("")
	s.Update(tabKey)
	s.Update(downKey)

	_, cmd := s.Update(enterKey)
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg := cmd().(ChosenMsg)
	if msg.Topic != "Counting Fruits 1-5" {
		t.Errorf("topic = %q", msg.Topic)
	}
}

func TestErrorBannerDismiss(t *testing.T) {
	s := New("Failed to generate lesson. Please check API Key.")
	if !strings.Contains(s.View(100, 40), "Please check API Key") {
		t.Fatal("banner missing")
	}

	_, cmd := s.Update(escKey)
	if cmd == nil {
		t.Fatal("expected dismiss command")
	}
	if _, ok := cmd().(DismissErrorMsg); !ok {
		t.Errorf("got %T", cmd())
	}
	if strings.Contains(s.View(100, 40), "Please check API Key") {
		t.Error("banner still shown")
	}

	if _, cmd := s.Update(escKey); cmd != nil {
		t.Error("esc without a banner should do nothing")
	}
}

func TestViewListsSamples(t *testing.T) {
	view := New("").View(100, 40)
	for _, topic := range SampleTopics {
		if !strings.Contains(view, topic) {
			t.Errorf("missing sample %q", topic)
		}
	}
}
