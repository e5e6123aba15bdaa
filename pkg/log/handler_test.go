package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger := slog.New(handler)

	err := errors.New("fit failed")
	logger.Error("operation failed", ErrAttrKey, err)

	var record map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("log output is not valid JSON: %v", jsonErr)
	}

	if _, ok := record[StacktraceAttrKey]; !ok {
		t.Errorf("log record should contain %q attribute, got: %v", StacktraceAttrKey, record)
	}
}

func TestErrFmtHandlerWithoutError(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger := slog.New(handler)

	logger.Info("fit completed", SamplesKey, 100, FeaturesKey, 5)

	var record map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("log output is not valid JSON: %v", jsonErr)
	}

	if _, ok := record[StacktraceAttrKey]; ok {
		t.Error("log record without an error attribute should not contain a stacktrace")
	}
	if record[SamplesKey] != float64(100) {
		t.Errorf("samples attribute = %v, want 100", record[SamplesKey])
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("ToLogLevel should panic on an unknown level")
		}
	}()
	ToLogLevel("verbose")
}

func TestHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled when the minimum level is warn")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled when the minimum level is warn")
	}
}
