package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"smarttodo/internal/tasklist"
)

const (
	// DefaultBenchSize is the number of generated tasks used by bench.
	DefaultBenchSize = 1000
)

// Settings are user preferences read from settings.yaml.
type Settings struct {
	// DefaultAlgorithm is used by sort when no algorithm is given.
	DefaultAlgorithm string `yaml:"default_algorithm"`

	// ExportList is the Google Tasks list title used by export when
	// --list is not given. Empty means the default list.
	ExportList string `yaml:"export_list"`

	// BenchSize is the default number of tasks generated by bench.
	BenchSize int `yaml:"bench_size"`

	// Color forces coloured output on or off. Nil leaves it to terminal
	// detection.
	Color *bool `yaml:"color"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		DefaultAlgorithm: tasklist.Bubble.Key(),
		BenchSize:        DefaultBenchSize,
	}
}

// Algorithm returns the parsed default sort algorithm.
func (s Settings) Algorithm() (tasklist.Algorithm, error) {
	return tasklist.ParseAlgorithm(s.DefaultAlgorithm)
}

// LoadSettings reads settings.yaml from the config directory.
// A missing file is not an error and yields DefaultSettings.
func (c *Config) LoadSettings() error {
	s, err := ReadSettings(c.SettingsPath())
	if err != nil {
		return err
	}
	c.Settings = s
	return nil
}

// ReadSettings parses a settings file, filling unset fields with defaults.
func ReadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if s.DefaultAlgorithm == "" {
		s.DefaultAlgorithm = tasklist.Bubble.Key()
	}
	if _, err := s.Algorithm(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if s.BenchSize <= 0 {
		s.BenchSize = DefaultBenchSize
	}
	return s, nil
}
