package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default info level", 0, zerolog.InfoLevel},
		{"debug level", 1, zerolog.DebugLevel},
		{"trace level", 2, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "logs", "dirsync.log")

			SetupLogger(tt.verbosity, logPath)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			// Check that log file and its parent were created
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestLogfileReceivesEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dirsync.log")
	SetupLogger(0, logPath)

	logger := GetLogger("test-component")
	logger.Info().Msg("change applied")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading logfile: %v", err)
	}
	if !strings.Contains(string(data), "change applied") {
		t.Errorf("logfile should contain the logged message, got: %s", data)
	}
	if !strings.Contains(string(data), "test-component") {
		t.Errorf("logfile should contain the component name, got: %s", data)
	}
}

func TestDefaultLogfilePath(t *testing.T) {
	path := DefaultLogfilePath()
	if !strings.HasSuffix(path, filepath.Join("dirsync", "dirsync.log")) {
		t.Errorf("unexpected default logfile path: %s", path)
	}
}
