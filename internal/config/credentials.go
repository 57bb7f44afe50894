package config

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TasksScope is the OAuth scope requested for Google Tasks.
const TasksScope = "https://www.googleapis.com/auth/tasks"

// OAuthConfig builds the OAuth client configuration from oauth_client.json.
func (c *Config) OAuthConfig() (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(c.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored OAuth token.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	return &token, nil
}

// SaveToken writes token with mode 0600, creating the directory if needed.
func (c *Config) SaveToken(token *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.TokenPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
