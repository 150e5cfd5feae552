package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 960
	WindowHeight = 640
	WindowTitle  = "Stopwatch - Space: Start/Stop, P: Pause, R: Reset, L: Lap, E: Export, Esc/Q: Quit"

	// Updates per second. 100 keeps the stopwatch's 10ms cadence.
	TPS = 100

	// Button dimensions
	ButtonWidth  = 110
	ButtonHeight = 40
	ButtonGap    = 12

	// Lap list
	LapRowHeight   = 22
	LapListRows    = 8
	LapListWidth   = 360
	LapListPadding = 8

	// Sound
	ClickFrequency = 880.0
	ClickLength    = 60 // milliseconds
	SampleRate     = 44100

	// EnvPath overrides the config file location.
	EnvPath = "STOPWATCH_CONFIG"
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Sound  SoundConfig  `yaml:"sound"`
	Export ExportConfig `yaml:"export"`
}

type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Vsync  bool `yaml:"vsync"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
	// File replaces the generated click with a wav, mp3 or flac file.
	File string `yaml:"file"`
}

type ExportConfig struct {
	// Prompt opens a save dialog; otherwise the file is written to Dir.
	Prompt bool   `yaml:"prompt"`
	Dir    string `yaml:"dir"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Vsync:  true,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Export: ExportConfig{
			Prompt: true,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location: $STOPWATCH_CONFIG, else
// ~/.stopwatch/config.yaml.
func Path() string {
	if p, ok := os.LookupEnv(EnvPath); ok && p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stopwatch", "config.yaml")
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound volume must be within [0, 1], got %v", c.Sound.Volume)
	}
	return nil
}

// Save writes c to path as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportDir resolves where exports are written when not prompting: the
// configured dir, else ~/Downloads if it exists, else the working directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		dl := filepath.Join(home, "Downloads")
		if fi, err := os.Stat(dl); err == nil && fi.IsDir() {
			return dl
		}
	}
	return "."
}
