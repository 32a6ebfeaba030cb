package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings controls how the processes find each other and the hardware
type Settings struct {
	// ServerURL is the config server the desktop app persists through.
	// Empty means the document is saved straight to DocumentPath.
	ServerURL      string        `env:"K2_SERVER_URL"`
	ListenAddr     string        `env:"K2_LISTEN_ADDR"      envDefault:"127.0.0.1:8765"`
	DocumentPath   string        `env:"K2_CONFIG_PATH"`
	MidiIn         string        `env:"K2_MIDI_IN"`
	MidiOut        string        `env:"K2_MIDI_OUT"`
	DeviceType     string        `env:"K2_DEVICE_TYPE"      envDefault:"k2"`
	RequestTimeout time.Duration `env:"K2_REQUEST_TIMEOUT" envDefault:"10s"`
}

// LoadSettings parses settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.DocumentPath == "" {
		path, err := DocumentPath()
		if err != nil {
			return Settings{}, err
		}
		s.DocumentPath = path
	}
	return s, nil
}
