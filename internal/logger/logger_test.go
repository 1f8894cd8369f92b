package logger

import (
	"errors"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{name: "development mode", debug: true},
		{name: "production mode", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(tt.debug)
			if err != nil {
				t.Fatalf("NewLogger() error = %v, want nil", err)
			}
			if log == nil {
				t.Fatal("NewLogger() returned nil logger")
			}

			log.Info("test message")

			// Sync errors are acceptable in test environments
			_ = log.Sync()
		})
	}
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	if log == nil {
		t.Fatal("NewNopLogger() returned nil")
	}

	// Nop logger should not panic on any operation
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	withLogger := log.With(String("key", "value"))
	if withLogger == nil {
		t.Fatal("With() returned nil")
	}

	_ = log.Sync()
}

func TestLoggerStructuredFields(t *testing.T) {
	log, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer log.Sync()

	// Should not panic on any field type
	log.Debug("test fields",
		String("string_field", "value"),
		Int("int_field", 42),
		Bool("bool_field", true),
		Duration("duration_field", time.Second),
		Error(errors.New("test error")),
		NamedError("custom_error", errors.New("custom")),
		Strings("strings_field", []string{"a", "b", "c"}),
		Any("any_field", map[string]any{"key": "value"}),
	)
}

func TestLoggerWith(t *testing.T) {
	log, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer log.Sync()

	contextLogger := log.With(
		String("component", "space_fetcher"),
	)
	if contextLogger == nil {
		t.Fatal("With() returned nil")
	}

	contextLogger.Info("message with context")

	chained := contextLogger.With(String("space_id", "abc123"))
	if chained == nil {
		t.Fatal("chained With() returned nil")
	}
	chained.Info("message with chained context")

	// Original logger keeps its own context
	log.Info("message without context")
}
