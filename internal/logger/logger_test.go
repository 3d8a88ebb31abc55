package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "roomcraft.log")
	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false

	log := NewWithFileConfig("warn", cfg, false)
	log.Info("hidden")
	log.Warn("template store unavailable", zap.String("path", "/tmp/x.db"))
	_ = log.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line above warn level, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "template store unavailable" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["path"] != "/tmp/x.db" {
		t.Errorf("unexpected path field %v", entry["path"])
	}
	if entry["level"] != "warn" {
		t.Errorf("unexpected level %v", entry["level"])
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("x.log")
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestNoOutputsYieldsNop(t *testing.T) {
	log := NewWithFileConfig("info", FileConfig{}, false)
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}
