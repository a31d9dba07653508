package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Preset is one entry of the preset file.
type Preset struct {
	Key     string `json:"key"`
	Tempo   int    `json:"tempo"`
	Timesig string `json:"timesig"`
}

// ConfigManager reads presets from a JSON array on disk. The file is never
// written.
type ConfigManager struct {
	Presets    []Preset
	ConfigPath string
}

func NewConfigManager(path string) *ConfigManager {
	return &ConfigManager{
		ConfigPath: path,
		Presets:    []Preset{},
	}
}

// LoadConfig reads the preset file. A missing file leaves the manager empty
// unless required is set.
func (cm *ConfigManager) LoadConfig(required bool) error {
	f, err := os.Open(cm.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(err, "opening config")
	}
	defer f.Close()

	fileInfo, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	if fileInfo.Size() == 0 {
		return nil
	}
	if err := json.NewDecoder(f).Decode(&cm.Presets); err != nil {
		return errors.Wrapf(err, "decoding %s", cm.ConfigPath)
	}
	return nil
}

func (cm *ConfigManager) GetConfigByKey(key string) *Preset {
	for i := range cm.Presets {
		if cm.Presets[i].Key == key {
			return &cm.Presets[i]
		}
	}
	return nil
}

// Config is the resolved launch configuration.
type Config struct {
	Tempo        int
	Timesig      string
	AccentVolume float64
	ClickVolume  float64
	Mute         bool
	Autostart    bool
	Buffer       time.Duration
	LogLevel     string
	LogFile      string
}

func DefaultConfig() Config {
	return Config{
		Tempo:        DEFAULT_TEMPO,
		Timesig:      DEFAULT_TIME_SIGNATURE.String(),
		AccentVolume: ACCENT_VOLUME,
		ClickVolume:  CLICK_VOLUME,
		Buffer:       DefaultSessionOptions().Buffer,
		LogLevel:     "info",
	}
}

// ApplyPreset copies the preset's non-zero fields into c.
func (c *Config) ApplyPreset(p Preset) {
	if p.Tempo != 0 {
		c.Tempo = p.Tempo
	}
	if p.Timesig != "" {
		c.Timesig = p.Timesig
	}
}

func (c Config) Validate() error {
	if !ValidTempo(c.Tempo) {
		return errors.Errorf("tempo %d is not valid make sure its between %v and %v", c.Tempo, MIN_TEMPO, MAX_TEMPO)
	}
	if _, err := ValidTimeSig(c.Timesig); err != nil {
		return err
	}
	if c.AccentVolume < 0 || c.AccentVolume > 1 {
		return errors.Wrap(errVolumeRange, "accent volume")
	}
	if c.ClickVolume < 0 || c.ClickVolume > 1 {
		return errors.Wrap(errVolumeRange, "click volume")
	}
	if c.Buffer <= 0 {
		return errors.New("buffer must be positive")
	}
	return nil
}

// TimeSignature assumes c has been validated.
func (c Config) TimeSignature() TimeSignature {
	ts, err := ValidTimeSig(c.Timesig)
	if err != nil {
		return DEFAULT_TIME_SIGNATURE
	}
	return ts
}
