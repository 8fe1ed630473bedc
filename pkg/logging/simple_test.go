package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/go-logr/logr"
)

// Test that if writer is nil, the sink defaults to os.Stdout.
func TestDefaultWriter(t *testing.T) {
	s := NewSimpleLogSink(nil, LEVEL_DEBUG, false)
	if s.writer != os.Stdout {
		t.Errorf("expected default writer to be os.Stdout, got %v", s.writer)
	}
}

func TestEnabled(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_DEBUG, false)
	if !s.Enabled(LEVEL_INFO) {
		t.Error("expected info to be enabled")
	}
	if !s.Enabled(LEVEL_DEBUG) {
		t.Error("expected debug to be enabled")
	}
	if s.Enabled(LEVEL_TRACE) {
		t.Error("expected trace to be disabled")
	}
}

func TestInfoLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.Info(LEVEL_INFO, "decoded SYSTEM.CNF", "key", "BOOT2")
	output := buf.String()

	if !strings.HasPrefix(output, "[INFO] decoded SYSTEM.CNF\n") {
		t.Errorf("unexpected first line, got %q", output)
	}
	if !strings.Contains(output, "  key: BOOT2\n") {
		t.Errorf("expected output to contain key-value pair, got %q", output)
	}
}

func TestInfoNotLoggedWhenDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_INFO, false)
	s.Info(LEVEL_DEBUG, "ignored key", "key", "FOO")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestErrorLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_INFO, false)
	s.Error(errors.New("unknown video mode"), "decode failed", "line", 3)
	output := buf.String()

	for _, want := range []string{"[ERROR]", "decode failed", "line: 3", "error: unknown video mode"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestChainedWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.WithName("cnf").WithName("decode").Info(LEVEL_INFO, "chained")

	if !strings.Contains(buf.String(), "[cnf.decode] chained") {
		t.Errorf("expected combined name, got %q", buf.String())
	}
}

func TestWithValuesKeepsSettings(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_INFO, false)
	derived := s.WithValues("image", "game.iso")

	derived.Info(LEVEL_DEBUG, "should be filtered")
	if buf.Len() != 0 {
		t.Fatalf("derived sink lost its verbosity, got %q", buf.String())
	}

	derived.Info(LEVEL_INFO, "found file")
	output := buf.String()
	if !strings.Contains(output, "image: game.iso") {
		t.Errorf("expected inherited key-value, got %q", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("derived sink should not colorize, got %q", output)
	}
}

// Non-string keys are replaced with a positional name.
func TestNonStringKey(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, LEVEL_DEBUG, false)
	s.Info(LEVEL_INFO, "Non-string key", 123, "value")

	if !strings.Contains(buf.String(), "key0: value") {
		t.Errorf("expected output to contain 'key0: value', got %q", buf.String())
	}
}

func TestInitSetsCallDepth(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, LEVEL_DEBUG, false)
	s.Init(logr.RuntimeInfo{CallDepth: 5})
	if s.callDepth != 5 {
		t.Errorf("expected callDepth 5, got %d", s.callDepth)
	}
}

func TestLoggerWrapperLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(NewSimpleLogger(buf, LEVEL_DEBUG, false))
	l.Info("info message")
	l.Debug("debug message")
	l.Trace("trace message")
	output := buf.String()

	if !strings.Contains(output, "[INFO] info message") {
		t.Errorf("missing info line, got %q", output)
	}
	if !strings.Contains(output, "[DEBUG] debug message") {
		t.Errorf("missing debug line, got %q", output)
	}
	if strings.Contains(output, "trace message") {
		t.Errorf("trace should be filtered, got %q", output)
	}
}

func TestNewLoggerWithoutSink(t *testing.T) {
	l := NewLogger(logr.Logger{})
	l.Info("does not panic")
	l.Trace("does not panic")
	l.Error(nil, "does not panic")
}

func TestVerbosityFromFlags(t *testing.T) {
	if got := VerbosityFromFlags(false, false); got != LEVEL_INFO {
		t.Errorf("expected info, got %d", got)
	}
	if got := VerbosityFromFlags(true, false); got != LEVEL_DEBUG {
		t.Errorf("expected debug, got %d", got)
	}
	if got := VerbosityFromFlags(true, true); got != LEVEL_TRACE {
		t.Errorf("expected trace, got %d", got)
	}
}
