package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uilive"
	"github.com/sirupsen/logrus"
)

const (
	markActive = "●"
	markAccent = "◎"
	markIdle   = "○"
)

// Renderer presents metronome state.
type Renderer interface {
	Render(st State, scale float64)
	Close() error
}

// Screen redraws the status block in place.
type Screen struct {
	w *uilive.Writer
}

func NewScreen(out io.Writer) *Screen {
	w := uilive.New()
	w.Out = out
	w.Start()
	return &Screen{w: w}
}

func (s *Screen) Render(st State, scale float64) {
	fmt.Fprint(s.w, RenderState(st, scale))
}

func (s *Screen) Close() error {
	s.w.Stop()
	return nil
}

// RenderState formats st as the status block. scale is the pulse factor.
func RenderState(st State, scale float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  pulse · %s\n\n", TempoName(st.BPM))

	b.WriteString("  ")
	for i := 1; i <= st.TimeSignature.Beats; i++ {
		mark := markIdle
		switch {
		case st.Playing && i == st.Beat:
			mark = markActive
		case i == 1:
			mark = markAccent
		}
		b.WriteString(mark)
		if i < st.TimeSignature.Beats {
			b.WriteString("  ")
		}
	}
	fmt.Fprintf(&b, "    Beat %d / %d\n\n", st.Beat, st.TimeSignature.Beats)

	bpm := fmt.Sprintf("%d BPM", st.BPM)
	if scale > 1.05 {
		bpm = "[ " + bpm + " ]"
	} else {
		bpm = "  " + bpm + "  "
	}
	state := "stopped"
	if st.Playing {
		state = "playing"
	}
	fmt.Fprintf(&b, "  %s   %s   %d/4\n\n", bpm, state, st.TimeSignature.Beats)

	b.WriteString("  ↑/↓ ±1  ←/→ ±5  space start/stop  t signature  q quit\n")
	return b.String()
}

// LogRenderer is used when stdout isn't a terminal. It logs state changes and
// ignores animation frames.
type LogRenderer struct {
	log  logrus.FieldLogger
	last State
	seen bool
}

func NewLogRenderer(log logrus.FieldLogger) *LogRenderer {
	return &LogRenderer{log: log}
}

func (r *LogRenderer) Render(st State, _ float64) {
	if r.seen && st == r.last {
		return
	}
	r.last, r.seen = st, true
	r.log.WithFields(logrus.Fields{
		"bpm":     st.BPM,
		"tempo":   TempoName(st.BPM),
		"beat":    st.Beat,
		"timesig": st.TimeSignature.String(),
		"playing": st.Playing,
	}).Info("metronome")
}

func (r *LogRenderer) Close() error { return nil }
