package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  Gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "provider" || fields[0].String != "Gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithCommonFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithCommonFields(zap.New(core), "gemini", "model-x").Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "gemini" {
		t.Fatalf("expected provider field to be gemini, got %q", ctx[FieldProvider])
	}
	if ctx[FieldModel] != "model-x" {
		t.Fatalf("expected model field to be model-x, got %q", ctx[FieldModel])
	}

	// A nil logger must still be usable.
	WithCommonFields(nil, "gemini", "model-x").Info("another log")
}

func TestCareerFieldsSkipsEmptySector(t *testing.T) {
	fields := CareerFields("Welder", "")
	if len(fields) != 1 || fields[0].Key != FieldCareer || fields[0].String != "Welder" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected no-op logger")
	}

	l := zap.NewExample()
	if OrNop(l) != l {
		t.Fatal("expected the same logger back")
	}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct{ json, debug bool }{{false, false}, {true, true}} {
		l, err := New(tc.json, tc.debug)
		if err != nil {
			t.Fatalf("New(%v, %v): %v", tc.json, tc.debug, err)
		}
		if got := l.Core().Enabled(zapcore.DebugLevel); got != tc.debug {
			t.Fatalf("debug enabled = %v, want %v", got, tc.debug)
		}
	}
}
