package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func parseFlags(args []string) (Config, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("pulse", flag.ContinueOnError)

	var (
		configPath = fs.String("config", DefaultConfigPath(), "preset file")
		preset     = fs.StringP("preset", "p", "", "preset key to load from the preset file")
	)
	fs.IntVarP(&cfg.Tempo, "tempo", "t", cfg.Tempo, "the speed at which a passage of this metronome should be played")
	fs.StringVarP(&cfg.Timesig, "timesig", "s", cfg.Timesig, "indicate how many beats are in each measure (4/4 or 3/4)")
	fs.Float64Var(&cfg.AccentVolume, "accent-volume", cfg.AccentVolume, "volume of the first beat, 0 to 1")
	fs.Float64Var(&cfg.ClickVolume, "click-volume", cfg.ClickVolume, "volume of the other beats, 0 to 1")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "run without audio")
	fs.BoolVar(&cfg.Autostart, "start", cfg.Autostart, "start playing right away")
	fs.DurationVar(&cfg.Buffer, "buffer", cfg.Buffer, "speaker buffer length")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs here instead of stderr")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parsing flags")
	}

	if *preset != "" {
		cm := NewConfigManager(*configPath)
		if err := cm.LoadConfig(fs.Changed("config")); err != nil {
			return Config{}, err
		}
		p := cm.GetConfigByKey(*preset)
		if p == nil {
			return Config{}, errors.Errorf("`%v` preset not found", *preset)
		}

		// Flags given on the command line beat the preset.
		merged := cfg
		merged.ApplyPreset(*p)
		if fs.Changed("tempo") {
			merged.Tempo = cfg.Tempo
		}
		if fs.Changed("timesig") {
			merged.Timesig = cfg.Timesig
		}
		cfg = merged
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing log level")
	}
	logger.SetLevel(level)

	var out io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}
		out = f
		closeLog = func() { f.Close() }
	}
	logger.SetOutput(out)
	return logger, closeLog, nil
}

// newBackend opens the speaker, falling back to silence when that fails.
func newBackend(cfg Config, log logrus.FieldLogger) (AudioBackend, func()) {
	if cfg.Mute {
		return SilentBackend{}, func() {}
	}
	backend := NewSpeakerBackend(log)
	opts := DefaultSessionOptions()
	opts.Buffer = cfg.Buffer
	if err := backend.Configure(opts); err != nil {
		log.WithError(err).Warn("audio setup error, continuing without sound")
		return SilentBackend{}, func() {}
	}
	return backend, func() { backend.Close() }
}

func run(cfg Config, log *logrus.Logger) error {
	backend, closeBackend := newBackend(cfg, log)
	defer closeBackend()

	player := NewAudioPlayer(backend, clickSample, log)
	player.AccentVolume = cfg.AccentVolume
	player.ClickVolume = cfg.ClickVolume
	defer player.Close()

	m := NewMetronome(NewScheduler(NewTicker, log), player, log)
	m.SetTempo(cfg.Tempo)
	m.SetTimeSignature(cfg.TimeSignature())
	defer m.Close()

	interactive := isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())

	var display Renderer
	if interactive {
		display = NewScreen(os.Stdout)
	} else {
		display = NewLogRenderer(log)
	}
	defer display.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	app := NewApp(m, display, log)
	app.Signals = sig

	if interactive {
		keys, err := keyboard.GetKeys(10)
		if err != nil {
			return errors.Wrap(err, "opening keyboard")
		}
		defer keyboard.Close()
		app.Keys = keys
	}

	log.WithFields(logrus.Fields{
		"bpm":     cfg.Tempo,
		"timesig": cfg.Timesig,
		"mute":    cfg.Mute,
	}).Debug("starting")

	if cfg.Autostart || !interactive {
		m.Start()
	}
	return app.Run()
}
