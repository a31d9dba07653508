package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errSchedulerArmed = errors.New("scheduler already armed")

// Ticker is the repeating timer the scheduler arms. *time.Ticker satisfies it
// through stdTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(period time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewTicker(period time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(period)}
}

// Scheduler owns at most one live ticker. Its period is fixed for as long as
// it stays armed; a new period means Disarm then Arm.
type Scheduler struct {
	newTicker TickerFactory
	log       logrus.FieldLogger

	ticker   Ticker
	period   time.Duration
	nextTick time.Time
}

func NewScheduler(newTicker TickerFactory, log logrus.FieldLogger) *Scheduler {
	if newTicker == nil {
		newTicker = NewTicker
	}
	return &Scheduler{newTicker: newTicker, log: log}
}

func (s *Scheduler) Arm(period time.Duration, now time.Time) error {
	if s.ticker != nil {
		return errSchedulerArmed
	}
	if period < MIN_INTERVAL {
		period = MIN_INTERVAL
	}
	s.ticker = s.newTicker(period)
	s.period = period
	s.nextTick = now.Add(period)
	s.log.WithField("period", period).Debug("scheduler armed")
	return nil
}

func (s *Scheduler) Disarm() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	s.period = 0
	s.nextTick = time.Time{}
	s.log.Debug("scheduler disarmed")
}

func (s *Scheduler) Armed() bool { return s.ticker != nil }

func (s *Scheduler) Period() time.Duration { return s.period }

// C returns the tick channel, or nil while disarmed so a select on it blocks.
func (s *Scheduler) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C()
}

// Observe records a tick delivered at now and returns how far it landed from
// the expected instant. Drift past driftTolerance resyncs the expectation.
func (s *Scheduler) Observe(now time.Time) time.Duration {
	if s.ticker == nil {
		return 0
	}
	drift := now.Sub(s.nextTick)
	if drift > driftTolerance || drift < -driftTolerance {
		s.log.WithField("drift", drift).Debug("tick drifted, resyncing")
		s.nextTick = now
	}
	s.nextTick = s.nextTick.Add(s.period)
	return drift
}
