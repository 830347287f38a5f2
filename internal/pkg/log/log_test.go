package log

import (
	"log/slog"
	"testing"

	"go.uber.org/goleak"
)

func TestStartStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	if err := Start(&Config{StdoutEnabled: false, StderrEnabled: false}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	Info("hello", "key", "value")
	Debug("dropped at default level")

	Stop()
}

func TestDoubleStartReturnsError(t *testing.T) {
	if err := Start(&Config{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer Stop()

	if err := Start(&Config{}); err != ErrLoggerAlreadyInitialized {
		t.Errorf("second Start() = %v, want ErrLoggerAlreadyInitialized", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
