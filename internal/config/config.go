package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"ratscrew/internal/util"
)

// Config provides configuration for Egyptian Ratscrew
type Config struct {
	loaded bool

	Log  LogConfig   `yaml:"log"`
	Keys KeyBindings `yaml:"keys"`

	// SlapCooldown is how long every slap is ignored after one is accepted
	SlapCooldown time.Duration `yaml:"slapCooldown" envconfig:"slap_cooldown"`
	// InputDelay is the minimum time between two plays by the same player
	InputDelay time.Duration `yaml:"inputDelay" envconfig:"input_delay"`
	// RenderDelay throttles how often the terminal is redrawn
	RenderDelay time.Duration `yaml:"renderDelay" envconfig:"render_delay"`

	AutoDraw         bool          `yaml:"autoDraw" envconfig:"auto_draw"`
	AutoDrawInterval time.Duration `yaml:"autoDrawInterval" envconfig:"auto_draw_interval"`

	// Seed makes the shuffle repeatable when > 0
	Seed int64 `yaml:"seed"`

	RNG      RNGConfig      `yaml:"rng"`
	Spectate SpectateConfig `yaml:"spectate"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level             string `yaml:"level"`
	Format            string `yaml:"format"`
	File              string `yaml:"file"`
	DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
}

// KeyBindings maps a single key to each player input
type KeyBindings struct {
	Player1Play string `yaml:"player1Play" envconfig:"player1_play"`
	Player1Slap string `yaml:"player1Slap" envconfig:"player1_slap"`
	Player2Play string `yaml:"player2Play" envconfig:"player2_play"`
	Player2Slap string `yaml:"player2Slap" envconfig:"player2_slap"`
}

// Lower returns the bindings with every key lowercased
// Keys are matched regardless of case.
func (k KeyBindings) Lower() KeyBindings {
	return KeyBindings{
		Player1Play: strings.ToLower(k.Player1Play),
		Player1Slap: strings.ToLower(k.Player1Slap),
		Player2Play: strings.ToLower(k.Player2Play),
		Player2Slap: strings.ToLower(k.Player2Slap),
	}
}

// RNGConfig selects a hardware random number generator for shuffling
// The operating system's generator is used when SerialDevice is empty.
type RNGConfig struct {
	SerialDevice string        `yaml:"serialDevice" envconfig:"serial_device"`
	BaudRate     int           `yaml:"baudRate" envconfig:"baud_rate"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"read_timeout"`
}

// SpectateConfig configures the read-only spectator server
type SpectateConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "ratscrew.log",
		},
		Keys: KeyBindings{
			Player1Play: "q",
			Player1Slap: "w",
			Player2Play: "o",
			Player2Slap: "p",
		},
		SlapCooldown:     time.Second,
		InputDelay:       time.Millisecond * 150,
		RenderDelay:      time.Millisecond * 50,
		AutoDrawInterval: time.Millisecond * 750,
		RNG: RNGConfig{
			BaudRate:    9600,
			ReadTimeout: time.Second * 2,
		},
		Spectate: SpectateConfig{
			Addr: "127.0.0.1:5000",
		},
	}
}

// Validate checks the configuration for values the game cannot run with
func (c Config) Validate() error {
	keys := c.Keys.Lower()
	seen := make(map[string]string)
	for name, key := range map[string]string{
		"player1Play": keys.Player1Play,
		"player1Slap": keys.Player1Slap,
		"player2Play": keys.Player2Play,
		"player2Slap": keys.Player2Slap,
	} {
		if len(key) != 1 {
			return fmt.Errorf("keys.%s must be a single character, got %q", name, key)
		}

		if other, ok := seen[key]; ok {
			return fmt.Errorf("keys.%s and keys.%s are both bound to %q", name, other, key)
		}

		seen[key] = name
	}

	if c.SlapCooldown < 0 || c.InputDelay < 0 || c.RenderDelay < 0 {
		return errors.New("delays cannot be negative")
	}

	if c.AutoDraw && c.AutoDrawInterval <= 0 {
		return errors.New("autoDrawInterval must be greater than 0")
	}

	return nil
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values come from the defaults, then the YAML file, then the environment (including .env).
func Load() error {
	envFile := util.Getenv("RATSCREW_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load %s: %w", envFile, err)
	}

	cfg := DefaultConfig()

	configFile := util.Getenv("RATSCREW_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && err != io.EOF {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("ratscrew", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Keys = cfg.Keys.Lower()
	cfg.loaded = true
	config = cfg
	return nil
}
