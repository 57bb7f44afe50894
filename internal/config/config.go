// Package config locates the configuration directory and the files kept in
// it: OAuth credentials, the stored token and settings.yaml.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// AppName names the directory under the user's config home.
	AppName = "smarttodo"

	// DirEnv overrides the configuration directory when --config is not given.
	DirEnv = "SMARTTODO_CONFIG_DIR"

	OAuthClientFile = "oauth_client.json"
	TokenFile       = "token.json"
	SettingsFile    = "settings.yaml"
)

// Config is the per-run configuration.
type Config struct {
	Dir string

	Debug bool
	Quiet bool

	// Interactive is true when input comes from a terminal.
	// Prompts and the session banner are only printed in interactive mode.
	Interactive bool

	Settings Settings
}

// New returns a Config rooted at configDir, or at DefaultConfigDir when
// configDir is empty. Settings start at their defaults until LoadSettings.
func New(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return &Config{Dir: configDir, Settings: DefaultSettings()}, nil
}

// DefaultConfigDir resolves, in order: $SMARTTODO_CONFIG_DIR,
// $XDG_CONFIG_HOME/smarttodo, $HOME/.config/smarttodo.
func DefaultConfigDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) OAuthClientPath() string { return filepath.Join(c.Dir, OAuthClientFile) }
func (c *Config) TokenPath() string       { return filepath.Join(c.Dir, TokenFile) }
func (c *Config) SettingsPath() string    { return filepath.Join(c.Dir, SettingsFile) }

// EnsureDir creates the config directory with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func (c *Config) HasOAuthClient() bool { return fileExists(c.OAuthClientPath()) }
func (c *Config) HasToken() bool       { return fileExists(c.TokenPath()) }

// RemoveToken deletes the stored token. It reports whether a token existed.
func (c *Config) RemoveToken() (bool, error) {
	err := os.Remove(c.TokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
