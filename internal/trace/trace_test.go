package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeLookup, name, nil)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	Point(ring, ScopePhase, "phase", nil)
	Point(ring, ScopeLookup, "lookup", nil)
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Name != "phase" {
		t.Fatalf("LevelPhase should drop lookup events, got %+v", events)
	}
}

func TestScopeNames(t *testing.T) {
	tests := []struct {
		scope Scope
		want  string
		phase bool
	}{
		{ScopeCommand, "command", true},
		{ScopePhase, "phase", true},
		{ScopeResource, "resource", false},
		{ScopeLookup, "lookup", false},
	}
	for _, tt := range tests {
		if got := tt.scope.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := LevelPhase.ShouldEmit(tt.scope); got != tt.phase {
			t.Errorf("LevelPhase.ShouldEmit(%s) = %v", tt.want, got)
		}
	}
}

func TestStartSpanPropagatesParent(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := StartSpan(ctx, ScopePhase, "outer")
	inner, _ := StartSpan(ctx, ScopeResource, "inner")
	inner.WithExtra("file", "main.ftl").End("")
	outer.End("done")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].Name != "inner" || events[1].ParentID != outer.ID() {
		t.Errorf("inner span parent = %d, want %d", events[1].ParentID, outer.ID())
	}
	if events[2].Kind != KindSpanEnd || events[2].Extra["file"] != "main.ftl" {
		t.Errorf("inner end event = %+v", events[2])
	}
	if events[3].Detail != "done" {
		t.Errorf("outer detail = %q", events[3].Detail)
	}
}

func TestNopIsSilent(t *testing.T) {
	ctx := context.Background()
	sp, ctx2 := StartSpan(ctx, ScopePhase, "x")
	if sp.ID() != 0 || ctx2 != ctx {
		t.Errorf("nop span should not allocate ids or contexts")
	}
	Point(FromContext(ctx), ScopeLookup, "x", nil)
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(st, ScopeLookup, "l10n.lookup", map[string]string{"locale": "fr", "hit": "false"})
	out := buf.String()
	if !strings.Contains(out, "• l10n.lookup {hit=false, locale=fr}") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(st, ScopeLookup, "l10n.lookup", map[string]string{"locale": "en"})
	out := buf.String()
	for _, want := range []string{`"kind":"point"`, `"scope":"lookup"`, `"locale":"en"`} {
		if !strings.Contains(out, want) {
			t.Errorf("ndjson output %q lacks %s", out, want)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("ndjson line must end with newline")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestNewPicksFormatFromExtension(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopePhase, "p", nil)
	if !strings.Contains(buf.String(), "• p") {
		t.Errorf("default format should be text, got %q", buf.String())
	}
	off, _ := New(Config{Level: LevelOff})
	if off.Enabled() {
		t.Errorf("LevelOff must give a disabled tracer")
	}
}
