package main

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Clicker produces one audible click. Implementations must not block.
type Clicker interface {
	Click(accent bool)
}

// State is a copy of the metronome's observable state.
type State struct {
	BPM           int
	Playing       bool
	Beat          int
	TimeSignature TimeSignature
}

// Metronome holds the tempo state and drives the beat scheduler. It is not
// safe for concurrent use: every method is meant to run on the app loop.
type Metronome struct {
	bpm     int
	playing bool
	beat    int
	timeSig TimeSignature

	sched   *Scheduler
	clicker Clicker
	log     logrus.FieldLogger
	now     func() time.Time

	// OnPulse is called on start and on every tick.
	OnPulse func(now time.Time)

	listeners []func(State)
}

func NewMetronome(sched *Scheduler, clicker Clicker, log logrus.FieldLogger) *Metronome {
	return &Metronome{
		bpm:     DEFAULT_TEMPO,
		beat:    1,
		timeSig: DEFAULT_TIME_SIGNATURE,
		sched:   sched,
		clicker: clicker,
		log:     log,
		now:     time.Now,
	}
}

func (m *Metronome) State() State {
	return State{
		BPM:           m.bpm,
		Playing:       m.playing,
		Beat:          m.beat,
		TimeSignature: m.timeSig,
	}
}

// Subscribe registers fn to be called after every observable change.
func (m *Metronome) Subscribe(fn func(State)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Metronome) notify() {
	st := m.State()
	for _, fn := range m.listeners {
		fn(st)
	}
}

// SetTempo sets the initial tempo without restarting. Out of range values are
// clamped.
func (m *Metronome) SetTempo(bpm int) {
	m.bpm = ClampTempo(bpm)
	m.notify()
}

// SetTimeSignature applies ts when stopped. It reports whether it did.
func (m *Metronome) SetTimeSignature(ts TimeSignature) bool {
	if m.playing {
		return false
	}
	m.timeSig = ts
	m.beat = 1
	m.notify()
	return true
}

// SetBpm shifts the tempo by delta, clamped to [MIN_TEMPO, MAX_TEMPO]. While
// playing the scheduler is torn down and rearmed with the new period, which
// restarts the measure on an accented click.
func (m *Metronome) SetBpm(delta int) {
	next := ClampTempo(m.bpm + delta)
	if next == m.bpm {
		return
	}
	if !m.playing {
		m.bpm = next
		m.notify()
		return
	}

	m.halt()
	m.bpm = next
	m.log.WithField("bpm", next).Debug("restarting at new tempo")
	m.Start()
}

func (m *Metronome) ToggleTimeSignature() {
	if m.playing {
		m.log.Debug("time signature locked while playing")
		return
	}
	m.timeSig = NextTimeSignature(m.timeSig)
	m.beat = 1
	m.notify()
}

func (m *Metronome) Start() {
	if m.playing {
		return
	}
	now := m.now()
	m.playing = true
	m.beat = 1

	m.clicker.Click(true)
	m.pulse(now)

	if err := m.sched.Arm(BeatInterval(m.bpm), now); err != nil {
		// A stale ticker would mean two clocks; drop it and rearm.
		m.log.WithError(err).Warn("rearming scheduler")
		m.sched.Disarm()
		_ = m.sched.Arm(BeatInterval(m.bpm), now)
	}
	m.notify()
}

func (m *Metronome) Stop() {
	if !m.playing {
		return
	}
	m.halt()
	m.notify()
}

// Toggle starts when stopped and stops when playing.
func (m *Metronome) Toggle() {
	if m.playing {
		m.Stop()
		return
	}
	m.Start()
}

func (m *Metronome) halt() {
	m.playing = false
	m.beat = 1
	m.sched.Disarm()
}

// Ticks is the channel the app loop selects on. It is nil while stopped.
func (m *Metronome) Ticks() <-chan time.Time {
	return m.sched.C()
}

// Tick advances to the next beat and clicks, accenting beat one.
func (m *Metronome) Tick(now time.Time) {
	if !m.playing {
		return
	}
	m.sched.Observe(now)

	next := m.beat + 1
	if m.beat >= m.timeSig.Beats {
		next = 1
	}
	m.clicker.Click(next == 1)
	m.pulse(now)
	m.beat = next
	m.notify()
}

func (m *Metronome) pulse(now time.Time) {
	if m.OnPulse != nil {
		m.OnPulse(now)
	}
}

// Close disarms any live timer. The metronome is stopped afterwards.
func (m *Metronome) Close() error {
	m.halt()
	return nil
}
