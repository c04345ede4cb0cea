package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i := 1; i < len(seqs); i++ {
		if seqs[i] != seqs[i-1]+1 {
			t.Errorf("sequence not monotonic: %v", seqs)
			break
		}
	}
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "GEMINI_API_KEY"); err != nil || ok {
		t.Fatalf("Get on empty store = ok:%v err:%v, want not found", ok, err)
	}

	if err := repo.Set(ctx, "GEMINI_API_KEY", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "GEMINI_API_KEY", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := repo.Get(ctx, "GEMINI_API_KEY")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != "second" {
		t.Errorf("value = %q, want %q", got, "second")
	}

	if err := repo.Delete(ctx, "GEMINI_API_KEY"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "GEMINI_API_KEY"); ok {
		t.Error("key still present after delete")
	}
	if err := repo.Delete(ctx, "GEMINI_API_KEY"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson-draft", InputTokens: 100, OutputTokens: 400, LatencyMs: 1200, Success: true, RequestBody: `{"topic":"x"}`},
		{Provider: "gemini", Model: "gemini-2.5-flash-image", Purpose: "slide-image", LatencyMs: 3000, Success: false, ErrorMessage: "boom"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson-draft", InputTokens: 50, OutputTokens: 200, LatencyMs: 800, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected newest first, got sequences %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if got[1].ErrorMessage != "boom" || got[1].Success {
		t.Errorf("second event = %+v, want failed image event", got[1])
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Model != "gemini-2.5-flash-image" {
		t.Errorf("GetLLMEvent = %+v", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(9999) = %v, %v; want nil, nil", missing, err)
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	draft := usage[0]
	if draft.Purpose != "lesson-draft" || draft.Calls != 2 || draft.InputTokens != 150 || draft.OutputTokens != 600 {
		t.Errorf("draft usage = %+v", draft)
	}
	if draft.AvgLatencyMs != 1000 {
		t.Errorf("avg latency = %d, want 1000", draft.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestLessonEventsWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	actions := []string{LessonDrafted, LessonConfirmed, LessonClosed}
	for _, a := range actions {
		err := repo.AppendLessonEvent(ctx, LessonEventData{
			LessonID:   "lesson-1",
			Topic:      "Counting Fruits 1-5",
			Action:     a,
			SlideCount: 5,
		})
		if err != nil {
			t.Fatalf("append %s: %v", a, err)
		}
	}

	all, err := repo.QueryLessonEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Action != LessonClosed {
		t.Errorf("newest action = %q, want %q", all[0].Action, LessonClosed)
	}

	after, err := repo.QueryLessonEvents(ctx, QueryOpts{After: all[2].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("events after first = %d, want 2", len(after))
	}

	future, err := repo.QueryLessonEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("events in the future = %d, want 0", len(future))
	}
}
