package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func TestAudioPlayerClicks(t *testing.T) {
	log, _ := nullLogger()
	backend := &fakeBackend{}
	ap := NewAudioPlayer(backend, clickSample, log)

	accents := []bool{true, false, false, false}
	for _, a := range accents {
		// PlayTick directly keeps the worker's queue out of the picture.
		ap.PlayTick(a)
	}
	if err := ap.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if len(backend.sounds) != len(accents) {
		t.Fatalf("expected %d sounds, got %d", len(accents), len(backend.sounds))
	}
	for i, s := range backend.sounds {
		want := CLICK_VOLUME
		if accents[i] {
			want = ACCENT_VOLUME
		}
		if s.volume != want {
			t.Fatalf("sound %d: expected volume %v, got %v", i, want, s.volume)
		}
		if !s.played {
			t.Fatalf("sound %d was never played", i)
		}
		if !s.released {
			t.Fatalf("sound %d was never released", i)
		}
	}
	if backend.overlaps != 0 {
		t.Fatalf("expected previous sound released before each load, %d overlaps", backend.overlaps)
	}
}

func TestAudioPlayerWorkerDrainsOnClose(t *testing.T) {
	log, _ := nullLogger()
	backend := &fakeBackend{}
	ap := NewAudioPlayer(backend, clickSample, log)

	ap.Click(true)
	ap.Click(false)
	ap.Close()

	if len(backend.sounds) != 2 {
		t.Fatalf("expected 2 sounds, got %d", len(backend.sounds))
	}
	if !backend.sounds[1].released {
		t.Fatalf("expected last sound released on close")
	}
}

func TestAudioPlayerSwallowsFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		step    string
	}{
		{"load", &fakeBackend{loadErr: errors.New("no device")}, "load"},
		{"volume", &fakeBackend{volumeErr: errors.New("bad volume")}, "volume"},
		{"play", &fakeBackend{playErr: errors.New("busy")}, "play"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := nullLogger()
			ap := NewAudioPlayer(tt.backend, clickSample, log)
			ap.PlayTick(true)
			ap.PlayTick(false)
			ap.Close()

			warnings := 0
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.WarnLevel && e.Data["step"] == tt.step {
					warnings++
				}
			}
			if warnings != 2 {
				t.Fatalf("expected 2 %s warnings, got %d", tt.step, warnings)
			}
			for i, s := range tt.backend.sounds {
				if !s.released {
					t.Fatalf("sound %d leaked", i)
				}
			}
		})
	}
}

func TestAudioPlayerRecoversAfterFailure(t *testing.T) {
	log, _ := nullLogger()
	backend := &fakeBackend{failLoads: 1}
	ap := NewAudioPlayer(backend, clickSample, log)

	ap.PlayTick(true)
	ap.PlayTick(false)
	ap.Close()

	if len(backend.sounds) != 1 || !backend.sounds[0].played {
		t.Fatalf("expected the second click to play")
	}
}

func TestAudioPlayerDropsWhenBackedUp(t *testing.T) {
	log, _ := nullLogger()
	backend := &fakeBackend{
		entered: make(chan struct{}, clickQueue+2),
		gate:    make(chan struct{}),
	}
	ap := NewAudioPlayer(backend, clickSample, log)

	ap.Click(true)
	<-backend.entered // worker is now stuck in Load

	for i := 0; i < clickQueue+3; i++ {
		ap.Click(false)
	}
	close(backend.gate)
	ap.Close()

	if got := len(backend.sounds); got != clickQueue+1 {
		t.Fatalf("expected %d sounds, got %d", clickQueue+1, got)
	}
}

func TestAudioPlayerCloseIsIdempotent(t *testing.T) {
	log, _ := nullLogger()
	backend := &fakeBackend{}
	ap := NewAudioPlayer(backend, clickSample, log)

	ap.Close()
	ap.Close()
	ap.Click(true)

	if len(backend.sounds) != 0 {
		t.Fatalf("expected clicks after close to be ignored")
	}
}
