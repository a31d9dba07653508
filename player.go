package main

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// clickQueue bounds how many clicks may wait for the audio worker.
const clickQueue = 4

var errPlayerClosed = errors.New("player closed")

// Sound is one loaded playback resource.
type Sound interface {
	SetVolume(level float64) error
	Play() error
	Release() error
}

// AudioBackend is the platform audio subsystem.
type AudioBackend interface {
	Configure(opts SessionOptions) error
	Load(src []byte) (Sound, error)
}

// AudioPlayer turns click requests into sounds. Each click loads the sample
// afresh after releasing whatever the previous click left behind. Audio work
// happens on a single worker goroutine so Click never waits on the device.
type AudioPlayer struct {
	backend AudioBackend
	sample  []byte
	log     logrus.FieldLogger

	AccentVolume float64
	ClickVolume  float64

	mu       sync.Mutex
	closed   bool
	requests chan bool
	done     chan struct{}

	active Sound
}

func NewAudioPlayer(backend AudioBackend, sample []byte, log logrus.FieldLogger) *AudioPlayer {
	ap := &AudioPlayer{
		backend:      backend,
		sample:       sample,
		log:          log,
		AccentVolume: ACCENT_VOLUME,
		ClickVolume:  CLICK_VOLUME,
		requests:     make(chan bool, clickQueue),
		done:         make(chan struct{}),
	}
	go ap.run()
	return ap
}

// Click queues a click. When the worker is backed up the click is dropped.
func (ap *AudioPlayer) Click(accent bool) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	if ap.closed {
		ap.log.WithError(errPlayerClosed).Debug("click ignored")
		return
	}
	select {
	case ap.requests <- accent:
	default:
		ap.log.WithField("accent", accent).Debug("click queue full, dropping click")
	}
}

func (ap *AudioPlayer) run() {
	defer close(ap.done)
	for accent := range ap.requests {
		ap.PlayTick(accent)
	}
	ap.release()
}

// PlayTick performs one click synchronously. Failures are logged and the
// click is lost.
func (ap *AudioPlayer) PlayTick(accent bool) {
	ap.release()

	sound, err := ap.backend.Load(ap.sample)
	if err != nil {
		ap.fail(err, accent, "load")
		return
	}
	ap.active = sound

	volume := ap.ClickVolume
	if accent {
		volume = ap.AccentVolume
	}
	if err := sound.SetVolume(volume); err != nil {
		ap.fail(err, accent, "volume")
		return
	}
	if err := sound.Play(); err != nil {
		ap.fail(err, accent, "play")
	}
}

func (ap *AudioPlayer) release() {
	if ap.active == nil {
		return
	}
	if err := ap.active.Release(); err != nil {
		ap.log.WithError(err).WithField("step", "release").Warn("click error")
	}
	ap.active = nil
}

func (ap *AudioPlayer) fail(err error, accent bool, step string) {
	ap.log.WithError(err).WithFields(logrus.Fields{
		"accent": accent,
		"step":   step,
	}).Warn("click error")
}

// Close stops accepting clicks, lets queued ones finish and releases the last
// sound. It is safe to call more than once.
func (ap *AudioPlayer) Close() error {
	ap.mu.Lock()
	if !ap.closed {
		ap.closed = true
		close(ap.requests)
	}
	ap.mu.Unlock()

	<-ap.done
	return nil
}
