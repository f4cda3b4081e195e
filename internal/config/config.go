package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"

	// EngineDevice renders tones through a raw output device.
	EngineDevice = "device"
	// EngineSpeaker renders tones through the beep speaker mixer.
	EngineSpeaker = "speaker"
	// EngineNone plays silently; the timeline still runs.
	EngineNone = "none"
)

// Config holds all application configuration.
type Config struct {
	Env string `envconfig:"ENV" default:"development"`

	// Logging settings. LogFile receives logs while the TUI owns the
	// terminal; empty means logs are dropped in TUI mode.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:""`

	// Playback settings
	WPM        int     `envconfig:"WPM" default:"15"`
	ToneHz     float64 `envconfig:"TONE_HZ" default:"700"`
	Volume     float64 `envconfig:"VOLUME" default:"0.5"`
	SampleRate int     `envconfig:"SAMPLE_RATE" default:"44100"`
	Engine     string  `envconfig:"ENGINE" default:"device"`
	Loop       bool    `envconfig:"LOOP" default:"false"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}
