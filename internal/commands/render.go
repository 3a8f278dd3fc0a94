package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/showcase/internal/naming"
	"github.com/okra-platform/showcase/internal/render"
	"github.com/okra-platform/showcase/internal/watch"
)

var ErrWatchBuiltinTemplates = errors.New("--watch needs a templatesDir in showcase.json")

// RenderOptions contains options for the render command
type RenderOptions struct {
	Set   string
	Name  string
	Watch bool
}

// RenderCommand previews a template set without touching the project
type RenderCommand struct {
	dir    string
	loader ConfigLoader
	output Output
}

func NewRenderCommand(dir string) *RenderCommand {
	return &RenderCommand{
		dir:    dir,
		loader: &defaultConfigLoader{},
		output: &defaultOutput{},
	}
}

func (rc *RenderCommand) Run(ctx context.Context, opts RenderOptions) error {
	if opts.Name == "" {
		opts.Name = "example-component"
	}
	if err := validateName(opts.Name); err != nil {
		return err
	}

	dir, err := projectDir(rc.dir)
	if err != nil {
		return err
	}
	cfg, root, err := rc.loader.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}
	renderer := newRenderer(cfg, root)

	if err := rc.print(renderer, opts); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	tdir := templatesDir(cfg, root)
	if tdir == "" {
		return ErrWatchBuiltinTemplates
	}
	return rc.watch(ctx, tdir, renderer, opts)
}

func (rc *RenderCommand) print(renderer *render.Renderer, opts RenderOptions) error {
	files, err := renderer.Render(opts.Set, naming.Derive(opts.Name).Variables())
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", opts.Set, err)
	}

	for _, f := range files {
		rc.output.Printf("==> %s <==\n%s\n", f.Path, f.Content)
	}
	return nil
}

func (rc *RenderCommand) watch(ctx context.Context, dir string, renderer *render.Renderer, opts RenderOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.With().Str("component", "render-watch").Logger()
	w, err := watch.New(nil, func(path string, op fsnotify.Op) {
		logger.Debug().Str("path", path).Str("op", op.String()).Msg("template changed")
		rc.output.Println("\n🔄 Templates changed, re-rendering...")
		if err := rc.print(renderer, opts); err != nil {
			rc.output.Printf("❌ %v\n", err)
		}
	}, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.AddDirectory(dir); err != nil {
		return err
	}

	rc.output.Printf("👀 Watching %s (Ctrl+C to stop)\n", dir)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher error: %w", err)
	}
	return nil
}
