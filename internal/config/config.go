package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the project configuration file
const FileName = "showcase.json"

var ErrConfigNotFound = errors.New("no " + FileName + " found")

// Config represents the showcase.json configuration file
type Config struct {
	// RoutesFile is the routes file the demo pages are registered in
	RoutesFile string `json:"routesFile"`

	// RoutesKey is the literal text that opens the route list inside
	// RoutesFile. Empty matches a list assigned to any identifier ending in
	// Routes.
	RoutesKey string `json:"routesKey,omitempty"`

	// SnippetsDir receives the example code snippets
	SnippetsDir string `json:"snippetsDir"`

	// PagesDir receives the demo pages
	PagesDir string `json:"pagesDir"`

	// TemplatesDir, if set, replaces the built-in template sets. Relative
	// paths are resolved against the project root.
	TemplatesDir string `json:"templatesDir,omitempty"`
}

// Default returns the configuration of a standard Angular workspace
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.RoutesFile == "" {
		c.RoutesFile = "src/app/app.routes.ts"
	}
	if c.SnippetsDir == "" {
		c.SnippetsDir = "src/assets/code-snippets"
	}
	if c.PagesDir == "" {
		c.PagesDir = "src/app/pages"
	}
}

// Validate checks that every path is relative to the project root
func (c *Config) Validate() error {
	for name, p := range map[string]string{
		"routesFile":  c.RoutesFile,
		"snippetsDir": c.SnippetsDir,
		"pagesDir":    c.PagesDir,
	} {
		if filepath.IsAbs(p) {
			return fmt.Errorf("%s must be relative to the project root, got %s", name, p)
		}
	}
	return nil
}

// Save writes the configuration as indented JSON to path
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadConfig loads showcase.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// LoadConfigFromDir searches for showcase.json in startDir and its parents.
// The directory holding the file is returned as the project root.
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, startDir)
}
