// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// --- Test: NewSlogHandler ---

func TestNewSlogHandler(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()

	if handler == nil {
		t.Fatal("NewSlogHandler() = nil, want non-nil")
	}

	if handler.attrs != nil {
		t.Errorf("NewSlogHandler().attrs = %v, want nil", handler.attrs)
	}

	if handler.groups != nil {
		t.Errorf("NewSlogHandler().groups = %v, want nil", handler.groups)
	}
}

// --- Test: NewSlogHandlerWithLogger ---

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := NewSlogHandlerWithLogger(logger)

	if handler == nil {
		t.Fatal("NewSlogHandlerWithLogger() = nil, want non-nil")
	}

	// Use the handler to log something and verify it goes to the buffer
	slogger := slog.New(handler)
	slogger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected 'test message' in output: %s", buf.String())
	}
}

// --- Test: SlogHandler.Enabled ---

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{
			name:         "debug logger enables debug level",
			zerologLevel: zerolog.DebugLevel,
			slogLevel:    slog.LevelDebug,
			want:         true,
		},
		{
			name:         "info logger disables debug level",
			zerologLevel: zerolog.InfoLevel,
			slogLevel:    slog.LevelDebug,
			want:         false,
		},
		{
			name:         "info logger enables warn level",
			zerologLevel: zerolog.InfoLevel,
			slogLevel:    slog.LevelWarn,
			want:         true,
		},
		{
			name:         "error logger disables warn level",
			zerologLevel: zerolog.ErrorLevel,
			slogLevel:    slog.LevelWarn,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger := zerolog.New(nil).Level(tt.zerologLevel)
			handler := NewSlogHandlerWithLogger(logger)

			got := handler.Enabled(context.Background(), tt.slogLevel)
			if got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Test: SlogHandler.Handle ---

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		message   string
		wantLevel string
	}{
		{name: "debug level", level: slog.LevelDebug, message: "debug message", wantLevel: "debug"},
		{name: "info level", level: slog.LevelInfo, message: "info message", wantLevel: "info"},
		{name: "warn level", level: slog.LevelWarn, message: "warn message", wantLevel: "warn"},
		{name: "error level", level: slog.LevelError, message: "error message", wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
			slogger := slog.New(NewSlogHandlerWithLogger(logger))

			slogger.Log(context.Background(), tt.level, tt.message)

			output := buf.String()
			if !strings.Contains(output, tt.message) {
				t.Errorf("expected %q in output: %s", tt.message, output)
			}
			if !strings.Contains(output, `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("expected level %q in output: %s", tt.wantLevel, output)
			}
		})
	}
}

// --- Test: SlogHandler attributes ---

func TestSlogHandler_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	slogger := slog.New(NewSlogHandlerWithLogger(logger))

	slogger.Info("attributed",
		slog.String("name", "curatus"),
		slog.Int64("count", 42),
		slog.Bool("ready", true),
	)

	output := buf.String()
	for _, want := range []string{`"name":"curatus"`, `"count":42`, `"ready":true`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := NewSlogHandlerWithLogger(logger).WithAttrs([]slog.Attr{
		slog.String("service", "session-gc"),
	})
	slogger := slog.New(handler)

	slogger.Info("with attrs")

	output := buf.String()
	if !strings.Contains(output, `"service":"session-gc"`) {
		t.Errorf("expected pre-configured attr in output: %s", output)
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := NewSlogHandlerWithLogger(logger).WithGroup("supervisor")
	slogger := slog.New(handler)

	slogger.Info("grouped", slog.String("state", "running"))

	output := buf.String()
	if !strings.Contains(output, `"supervisor.state":"running"`) {
		t.Errorf("expected grouped attr in output: %s", output)
	}
}

// --- Test: NewSlogLogger ---

func TestNewSlogLogger(t *testing.T) {
	slogger := NewSlogLogger()
	if slogger == nil {
		t.Fatal("NewSlogLogger() = nil, want non-nil")
	}
}
