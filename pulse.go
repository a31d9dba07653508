package main

import "time"

const (
	pulsePeak   = 1.15
	pulseAttack = 80 * time.Millisecond
	pulseDecay  = 120 * time.Millisecond
)

// Pulse is the beat flash: a quick swell to pulsePeak and a slower fall back
// to 1.
type Pulse struct {
	start time.Time
}

func (p *Pulse) Trigger(now time.Time) {
	p.start = now
}

func (p *Pulse) Scale(now time.Time) float64 {
	if p.start.IsZero() {
		return 1
	}
	elapsed := now.Sub(p.start)
	switch {
	case elapsed < 0:
		return 1
	case elapsed < pulseAttack:
		return 1 + (pulsePeak-1)*float64(elapsed)/float64(pulseAttack)
	case elapsed < pulseAttack+pulseDecay:
		return pulsePeak - (pulsePeak-1)*float64(elapsed-pulseAttack)/float64(pulseDecay)
	default:
		return 1
	}
}
