package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			gt.Equal(t, tc.expected, logging.ParseLogLevel(tc.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("JSON")
	gt.NoError(t, err)
	gt.Equal(t, logging.FormatJSON, f)

	f, err = logging.ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, logging.FormatAuto, f)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Run("Non-terminal writer gets JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(slog.LevelInfo, &buf)
		logger.Info("hello", "rooms", 3)

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		gt.Equal[any](t, "hello", entry["msg"])
		gt.Equal[any](t, float64(3), entry["rooms"])
	})

	t.Run("Level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelWarn, &buf, logging.FormatJSON)
		logger.Info("dropped")
		gt.Equal(t, 0, buf.Len())
	})

	t.Run("Console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatConsole)
		logger.Info("console output")
		gt.S(t, buf.String()).Contains("console output")
	})
}
