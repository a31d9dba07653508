package main

import (
	"strings"
	"testing"
)

func TestRenderState(t *testing.T) {
	st := State{BPM: 120, Playing: true, Beat: 2, TimeSignature: TimeSignature{4, 4}}
	out := RenderState(st, 1)

	for _, want := range []string{"Allegro", "Beat 2 / 4", "120 BPM", "playing", "4/4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if n := strings.Count(out, markActive); n != 1 {
		t.Fatalf("expected one active marker, got %d", n)
	}
	if n := strings.Count(out, markAccent); n != 1 {
		t.Fatalf("expected accent marker on beat one, got %d", n)
	}
	if n := strings.Count(out, markIdle); n != 2 {
		t.Fatalf("expected two idle markers, got %d", n)
	}
	if strings.Contains(out, "[ 120 BPM ]") {
		t.Fatalf("expected no emphasis at rest")
	}
}

func TestRenderStateStoppedAndPulsing(t *testing.T) {
	st := State{BPM: 50, Playing: false, Beat: 1, TimeSignature: TimeSignature{3, 4}}
	out := RenderState(st, pulsePeak)

	if strings.Contains(out, markActive) {
		t.Fatalf("expected no active marker while stopped:\n%s", out)
	}
	for _, want := range []string{"Largo", "Beat 1 / 3", "[ 50 BPM ]", "stopped", "3/4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestLogRendererSkipsRepeats(t *testing.T) {
	log, hook := nullLogger()
	r := NewLogRenderer(log)
	st := State{BPM: 120, Beat: 1, TimeSignature: TimeSignature{4, 4}}

	r.Render(st, 1)
	r.Render(st, 1.1)
	st.Beat = 2
	r.Render(st, 1)

	if n := len(hook.AllEntries()); n != 2 {
		t.Fatalf("expected 2 log entries, got %d", n)
	}
	if beat := hook.LastEntry().Data["beat"]; beat != 2 {
		t.Fatalf("expected beat 2 logged, got %v", beat)
	}
}
