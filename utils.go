package main

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	errTimeSigFormat   = errors.New("invalid time signature format")
	errTimeSigNumber   = errors.New("invalid number in time signature")
	errTimeSigNotFound = errors.New("time signature not found")
)

func ValidTempo(input int) bool {
	return input >= MIN_TEMPO && input <= MAX_TEMPO
}

// ClampTempo pins input into [MIN_TEMPO, MAX_TEMPO].
func ClampTempo(input int) int {
	if input < MIN_TEMPO {
		return MIN_TEMPO
	}
	if input > MAX_TEMPO {
		return MAX_TEMPO
	}
	return input
}

func ValidTimeSig(input string) (TimeSignature, error) {
	parts := strings.Split(input, "/")
	if len(parts) != 2 {
		return TimeSignature{}, errTimeSigFormat
	}

	beats, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	noteValue, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return TimeSignature{}, errTimeSigNumber
	}

	for _, ts := range TIME_SIGNATURES {
		if ts.Beats == beats && ts.NoteValue == noteValue {
			return ts, nil
		}
	}

	return TimeSignature{}, errors.Wrapf(errTimeSigNotFound, "%q", input)
}

// NextTimeSignature cycles through TIME_SIGNATURES. Anything unknown goes back
// to the default.
func NextTimeSignature(ts TimeSignature) TimeSignature {
	for i, t := range TIME_SIGNATURES {
		if t == ts {
			return TIME_SIGNATURES[(i+1)%len(TIME_SIGNATURES)]
		}
	}
	return DEFAULT_TIME_SIGNATURE
}

// BeatInterval is max(MIN_INTERVAL, round(60000/bpm)) milliseconds.
func BeatInterval(bpm int) time.Duration {
	if bpm <= 0 {
		return MIN_INTERVAL
	}
	ms := math.Round(60000 / float64(bpm))
	interval := time.Duration(ms) * time.Millisecond
	if interval < MIN_INTERVAL {
		return MIN_INTERVAL
	}
	return interval
}

func TempoName(bpm int) string {
	switch {
	case bpm < 60:
		return "Largo"
	case bpm < 76:
		return "Adagio"
	case bpm < 108:
		return "Andante"
	case bpm < 120:
		return "Moderato"
	case bpm < 168:
		return "Allegro"
	default:
		return "Presto"
	}
}

func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return home
	}
	return os.Getenv("HOME")
}

func DefaultConfigPath() string {
	return filepath.Join(UserHomeDir(), ".pulse.json")
}
