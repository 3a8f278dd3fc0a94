package commands

import (
	"context"
	"fmt"

	"github.com/okra-platform/showcase/internal/project"
	"github.com/okra-platform/showcase/internal/routes"
)

// RoutesCommand lists the pages registered in the routes file
type RoutesCommand struct {
	dir    string
	loader ConfigLoader
	output Output
}

func NewRoutesCommand(dir string) *RoutesCommand {
	return &RoutesCommand{
		dir:    dir,
		loader: &defaultConfigLoader{},
		output: &defaultOutput{},
	}
}

func (rc *RoutesCommand) Run(ctx context.Context) error {
	dir, err := projectDir(rc.dir)
	if err != nil {
		return err
	}
	cfg, root, err := rc.loader.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	contents, err := project.NewDiskTree(root).Read(cfg.RoutesFile)
	if err != nil {
		return fmt.Errorf("failed to read routes file: %w", err)
	}

	table, err := routes.Registrar{Key: cfg.RoutesKey}.Parse(contents)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.RoutesFile, err)
	}

	rc.output.Printf("%s: %d routes, %d imports\n", cfg.RoutesFile, len(table.Paths), len(table.Imports))
	for _, p := range table.Paths {
		rc.output.Printf("  /%s\n", p)
	}
	return nil
}
