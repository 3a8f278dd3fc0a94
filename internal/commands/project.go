package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okra-platform/showcase/internal/config"
	"github.com/okra-platform/showcase/internal/render"
)

// ConfigLoader finds the project configuration for a directory
type ConfigLoader interface {
	LoadConfig(dir string) (*config.Config, string, error)
}

// Output receives user-facing text
type Output interface {
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

type defaultConfigLoader struct{}

// LoadConfig falls back to the default layout rooted at dir when no
// showcase.json exists.
func (l *defaultConfigLoader) LoadConfig(dir string) (*config.Config, string, error) {
	cfg, root, err := config.LoadConfigFromDir(dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.Default(), dir, nil
	}
	return cfg, root, err
}

type defaultOutput struct{}

func (o *defaultOutput) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func (o *defaultOutput) Println(args ...interface{}) {
	fmt.Println(args...)
}

// projectDir resolves the --project flag, defaulting to the working directory
func projectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(dir)
}

// templatesDir returns the absolute custom templates directory, or "" for
// the built-in sets.
func templatesDir(cfg *config.Config, root string) string {
	if cfg.TemplatesDir == "" {
		return ""
	}
	if filepath.IsAbs(cfg.TemplatesDir) {
		return cfg.TemplatesDir
	}
	return filepath.Join(root, cfg.TemplatesDir)
}

func newRenderer(cfg *config.Config, root string) *render.Renderer {
	if dir := templatesDir(cfg, root); dir != "" {
		return render.New(os.DirFS(dir), ".")
	}
	return render.NewDefault()
}
