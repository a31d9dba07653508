package main

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func nullLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

type fakeTicker struct {
	period  time.Duration
	c       chan time.Time
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped = true }

type tickerRecorder struct {
	tickers []*fakeTicker
}

func (r *tickerRecorder) New(period time.Duration) Ticker {
	t := &fakeTicker{period: period, c: make(chan time.Time, 1)}
	r.tickers = append(r.tickers, t)
	return t
}

func (r *tickerRecorder) last() *fakeTicker {
	if len(r.tickers) == 0 {
		return nil
	}
	return r.tickers[len(r.tickers)-1]
}

type clickRecorder struct {
	clicks []bool
}

func (c *clickRecorder) Click(accent bool) { c.clicks = append(c.clicks, accent) }

type fakeSound struct {
	volume   float64
	played   bool
	released bool
	b        *fakeBackend
}

func (s *fakeSound) SetVolume(level float64) error {
	if s.b.volumeErr != nil {
		return s.b.volumeErr
	}
	s.volume = level
	return nil
}

func (s *fakeSound) Play() error {
	if s.b.playErr != nil {
		return s.b.playErr
	}
	s.played = true
	return nil
}

func (s *fakeSound) Release() error {
	s.released = true
	return nil
}

type fakeBackend struct {
	mu sync.Mutex

	sounds []*fakeSound
	// overlaps counts loads that happened while an earlier sound was held.
	overlaps int

	loadErr   error
	volumeErr error
	playErr   error
	failLoads int

	entered chan struct{}
	gate    chan struct{}
}

func (b *fakeBackend) Configure(SessionOptions) error { return nil }

func (b *fakeBackend) Load(src []byte) (Sound, error) {
	if b.entered != nil {
		b.entered <- struct{}{}
	}
	if b.gate != nil {
		<-b.gate
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failLoads > 0 {
		b.failLoads--
		return nil, errors.New("load failed")
	}
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	for _, s := range b.sounds {
		if !s.released {
			b.overlaps++
		}
	}
	s := &fakeSound{b: b}
	b.sounds = append(b.sounds, s)
	return s, nil
}

type fakeRenderer struct {
	states []State
	closed bool
}

func (r *fakeRenderer) Render(st State, _ float64) { r.states = append(r.states, st) }
func (r *fakeRenderer) Close() error               { r.closed = true; return nil }
