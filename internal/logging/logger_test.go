package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(Config{Level: tt.level})
			if got := Logger.GetLevel(); got != tt.want {
				t.Errorf("Expected level %v, got %v", tt.want, got)
			}
		})
	}

	Init(DefaultConfig())
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lootbox.log")

	Init(Config{Level: "info", File: path})
	Info().Str("component", "test").Msg("hello file")
	defer Init(DefaultConfig())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected log file to contain the written event")
	}
}
