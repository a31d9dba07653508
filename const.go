package main

import (
	"strconv"
	"time"
)

type TimeSignature struct {
	Beats     int // number of beats per meassure
	NoteValue int // note that represent that one beat
}

func (ts TimeSignature) String() string {
	return strconv.Itoa(ts.Beats) + "/" + strconv.Itoa(ts.NoteValue)
}

const (
	MIN_TEMPO     = 40
	MAX_TEMPO     = 240
	DEFAULT_TEMPO = 120

	ACCENT_VOLUME = 1.0
	CLICK_VOLUME  = 0.7
)

// MIN_INTERVAL floors the beat period so a runaway tempo can't spin the timer.
const MIN_INTERVAL = 10 * time.Millisecond

// driftTolerance is how far a tick may land from its expected instant before
// the scheduler resyncs.
const driftTolerance = 10 * time.Millisecond

var TIME_SIGNATURES = []TimeSignature{
	{4, 4},
	{3, 4},
}

var DEFAULT_TIME_SIGNATURE = TIME_SIGNATURES[0]
