package commands

import (
	"context"
	"fmt"
)

// TemplatesCommand lists the available template sets
type TemplatesCommand struct {
	dir    string
	loader ConfigLoader
	output Output
}

func NewTemplatesCommand(dir string) *TemplatesCommand {
	return &TemplatesCommand{
		dir:    dir,
		loader: &defaultConfigLoader{},
		output: &defaultOutput{},
	}
}

func (tc *TemplatesCommand) Run(ctx context.Context) error {
	dir, err := projectDir(tc.dir)
	if err != nil {
		return err
	}
	cfg, root, err := tc.loader.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	sets, err := newRenderer(cfg, root).Sets()
	if err != nil {
		return err
	}

	source := "built-in"
	if d := templatesDir(cfg, root); d != "" {
		source = d
	}
	tc.output.Printf("Template sets (%s):\n", source)
	for _, s := range sets {
		tc.output.Printf("  %s\n", s)
	}
	return nil
}
