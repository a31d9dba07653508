package main

import (
	"bytes"
	_ "embed"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed static/click.wav
var clickSample []byte

const resampleQuality = 4

var (
	errNotConfigured = errors.New("audio session not configured")
	errVolumeRange   = errors.New("volume out of range")
	errAlreadyPlayed = errors.New("sound already played")
	errReleased      = errors.New("sound released")
)

type SessionOptions struct {
	SampleRate beep.SampleRate
	Buffer     time.Duration
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		SampleRate: beep.SampleRate(44100),
		Buffer:     time.Second / 10,
	}
}

// SpeakerBackend plays sounds through beep's speaker.
type SpeakerBackend struct {
	log        logrus.FieldLogger
	sampleRate beep.SampleRate
	configured bool
}

func NewSpeakerBackend(log logrus.FieldLogger) *SpeakerBackend {
	return &SpeakerBackend{log: log}
}

func (b *SpeakerBackend) Configure(opts SessionOptions) error {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultSessionOptions().Buffer
	}
	if err := speaker.Init(opts.SampleRate, opts.SampleRate.N(opts.Buffer)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}
	b.sampleRate = opts.SampleRate
	b.configured = true
	b.log.WithFields(logrus.Fields{
		"sample_rate": int(opts.SampleRate),
		"buffer":      opts.Buffer,
	}).Debug("speaker ready")
	return nil
}

func (b *SpeakerBackend) Load(src []byte) (Sound, error) {
	if !b.configured {
		return nil, errNotConfigured
	}
	buffer, err := decodeSample(src)
	if err != nil {
		return nil, err
	}

	var s beep.Streamer = buffer.Streamer(0, buffer.Len())
	if rate := buffer.Format().SampleRate; rate != b.sampleRate {
		s = beep.Resample(resampleQuality, rate, b.sampleRate, s)
	}
	gain := &effects.Gain{Streamer: s}
	return &speakerSound{
		gain: gain,
		ctrl: &beep.Ctrl{Streamer: gain},
	}, nil
}

// Close clears anything still sounding.
func (b *SpeakerBackend) Close() error {
	if b.configured {
		speaker.Clear()
	}
	return nil
}

func decodeSample(src []byte) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "decoding click sample")
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, errors.Wrap(err, "reading click sample")
	}
	return buffer, nil
}

type speakerSound struct {
	mu       sync.Mutex
	gain     *effects.Gain
	ctrl     *beep.Ctrl
	played   bool
	released bool
}

func (s *speakerSound) SetVolume(level float64) error {
	if level < 0 || level > 1 {
		return errors.Wrapf(errVolumeRange, "%v", level)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return errReleased
	}

	speaker.Lock()
	s.gain.Gain = level - 1
	speaker.Unlock()
	return nil
}

func (s *speakerSound) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return errReleased
	}
	if s.played {
		return errAlreadyPlayed
	}
	s.played = true
	speaker.Play(s.ctrl)
	return nil
}

func (s *speakerSound) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true

	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	return nil
}

// SilentBackend accepts every operation and makes no sound. It stands in when
// the speaker can't be opened or audio is muted.
type SilentBackend struct{}

func (SilentBackend) Configure(SessionOptions) error { return nil }

func (SilentBackend) Load(src []byte) (Sound, error) {
	if len(src) == 0 {
		return nil, errors.New("empty click sample")
	}
	return silentSound{}, nil
}

type silentSound struct{}

func (silentSound) SetVolume(level float64) error {
	if level < 0 || level > 1 {
		return errors.Wrapf(errVolumeRange, "%v", level)
	}
	return nil
}
func (silentSound) Play() error    { return nil }
func (silentSound) Release() error { return nil }
