package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("NANOCLASS_LOG", "/tmp/custom.log")
	if p, _ := DefaultPath(); p != "/tmp/custom.log" {
		t.Errorf("DefaultPath() = %q, want env override", p)
	}

	t.Setenv("NANOCLASS_LOG", "")
	t.Setenv("XDG_STATE_HOME", "/state")
	if p, _ := DefaultPath(); p != filepath.Join("/state", "nanoclass", "nanoclass.log") {
		t.Errorf("DefaultPath() = %q", p)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Setenv("NANOCLASS_LOG_LEVEL", "warn")
	var buf bytes.Buffer
	l := New(&buf)

	l.Info().Msg("hidden")
	l.Warn().Str("slide", "s1").Msg("image failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"slide":"s1"`) || !strings.Contains(out, "image failed") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestSetupFile(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	path := filepath.Join(t.TempDir(), "nested", "nanoclass.log")
	closer, err := SetupFile(path)
	if err != nil {
		t.Fatalf("SetupFile: %v", err)
	}
	log.Warn().Msg("written to file")
	closer.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "written to file") {
		t.Errorf("log file = %q", b)
	}
}
