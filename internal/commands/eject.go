package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/okra-platform/showcase/internal/config"
	"github.com/okra-platform/showcase/internal/project"
	"github.com/okra-platform/showcase/internal/render"
)

// DefaultEjectDir receives the ejected templates unless told otherwise
const DefaultEjectDir = "showcase-templates"

// EjectOptions contains options for the eject command
type EjectOptions struct {
	Dir   string
	Force bool
}

// EjectCommand copies the built-in template sets into the project so they
// can be customized
type EjectCommand struct {
	dir         string
	loader      ConfigLoader
	output      Output
	templatesFS fs.FS
}

func NewEjectCommand(dir string) *EjectCommand {
	return &EjectCommand{
		dir:         dir,
		loader:      &defaultConfigLoader{},
		output:      &defaultOutput{},
		templatesFS: render.Builtin(),
	}
}

func (ec *EjectCommand) Run(ctx context.Context, opts EjectOptions) error {
	if opts.Dir == "" {
		opts.Dir = DefaultEjectDir
	}

	dir, err := projectDir(ec.dir)
	if err != nil {
		return err
	}
	cfg, root, err := ec.loader.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	tree := project.NewDiskTree(root)
	written, skipped, err := ec.extractTemplates(tree, opts)
	if err != nil {
		return fmt.Errorf("failed to extract templates: %w", err)
	}
	ec.output.Printf("✅ Ejected %d template files to %s (%d existing files kept)\n", written, opts.Dir, skipped)

	configPath := filepath.Join(root, config.FileName)
	if tree.Exists(config.FileName) {
		ec.output.Printf("💡 Set \"templatesDir\": %q in %s to use them\n", opts.Dir, config.FileName)
		return nil
	}

	cfg.TemplatesDir = opts.Dir
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	ec.output.Printf("📝 Wrote %s\n", config.FileName)
	return nil
}

func (ec *EjectCommand) extractTemplates(tree project.Tree, opts EjectOptions) (int, int, error) {
	var written, skipped int

	err := fs.WalkDir(ec.templatesFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		dest := path.Join(opts.Dir, p)
		if tree.Exists(dest) && !opts.Force {
			skipped++
			return nil
		}

		data, err := fs.ReadFile(ec.templatesFS, p)
		if err != nil {
			return err
		}
		if err := tree.Write(dest, string(data)); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if written == 0 && skipped == 0 {
		return 0, 0, errors.New("no templates to eject")
	}
	return written, skipped, nil
}
