package main

import (
	"os"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var frameDuration = 30 * time.Millisecond

// App is the event loop. Everything that touches the metronome runs on the
// goroutine that calls Run.
type App struct {
	Metronome *Metronome
	Display   Renderer
	Pulse     *Pulse
	Keys      <-chan keyboard.KeyEvent
	Signals   <-chan os.Signal
	Log       logrus.FieldLogger

	now func() time.Time
}

func NewApp(m *Metronome, display Renderer, log logrus.FieldLogger) *App {
	app := &App{
		Metronome: m,
		Display:   display,
		Pulse:     &Pulse{},
		Log:       log,
		now:       time.Now,
	}
	m.OnPulse = app.Pulse.Trigger
	m.Subscribe(func(st State) {
		app.Display.Render(st, app.Pulse.Scale(app.now()))
	})
	return app
}

func (app *App) Run() error {
	frames := time.NewTicker(frameDuration)
	defer frames.Stop()

	app.Display.Render(app.Metronome.State(), 1)

	keys := app.Keys
	for {
		select {
		case now := <-app.Metronome.Ticks():
			app.Metronome.Tick(now)
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if ev.Err != nil {
				return errors.Wrap(ev.Err, "reading keyboard")
			}
			cmd, ok := CommandForKey(ev.Rune, ev.Key)
			if !ok {
				continue
			}
			if cmd.Apply(app.Metronome) {
				app.Log.Debug("quit requested")
				return nil
			}
		case now := <-frames.C:
			app.Display.Render(app.Metronome.State(), app.Pulse.Scale(now))
		case sig := <-app.Signals:
			app.Log.WithField("signal", sig).Debug("shutting down")
			return nil
		}
	}
}
