// Package schematic generates the demo page of a library component and
// registers it in the app's routes file.
package schematic

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okra-platform/showcase/internal/config"
	"github.com/okra-platform/showcase/internal/naming"
	"github.com/okra-platform/showcase/internal/project"
	"github.com/okra-platform/showcase/internal/render"
	"github.com/okra-platform/showcase/internal/routes"
)

// Template sets used by the generator
const (
	ExampleSet   = "example"
	ConsumerSet  = "consumer"
	ComponentSet = "component"

	// RoutesSource marks the routes file change of a plan
	RoutesSource = "routes"
)

// Renderer renders a named template set
type Renderer interface {
	Render(set string, vars map[string]string) ([]render.File, error)
}

// Action tells how a change touches the tree
type Action string

const (
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
)

// Change is one file write of a plan
type Change struct {
	// Path relative to the project root
	Path string

	// Content is the full new content
	Content string

	// Action is ActionOverwrite when the file exists at plan time
	Action Action

	// Source names the step that produced the change
	Source string

	// Previous holds the content being replaced, for overwrites
	Previous string
}

// Plan is the ordered list of writes for one generated page
type Plan struct {
	Names   naming.Names
	Route   routes.Route
	Changes []Change
}

// Paths returns the changed paths in write order
func (p *Plan) Paths() []string {
	paths := make([]string, len(p.Changes))
	for i, c := range p.Changes {
		paths[i] = c.Path
	}
	return paths
}

// Options locate the generator's inputs and outputs inside the project
type Options struct {
	RoutesFile  string
	RoutesKey   string
	SnippetsDir string
	PagesDir    string
}

// OptionsFromConfig converts a project configuration into Options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RoutesFile:  cfg.RoutesFile,
		RoutesKey:   cfg.RoutesKey,
		SnippetsDir: cfg.SnippetsDir,
		PagesDir:    cfg.PagesDir,
	}
}

// Generator creates consumer pages. It is not safe to run two generators
// against the same tree at once.
type Generator struct {
	opts       Options
	renderer   Renderer
	scaffolder Scaffolder
	registrar  routes.Registrar
	logger     zerolog.Logger
}

// NewGenerator creates a generator that renders its templates with renderer
// and scaffolds component shells from ComponentSet.
func NewGenerator(opts Options, renderer Renderer, logger zerolog.Logger) *Generator {
	opts.RoutesFile = path.Clean(opts.RoutesFile)
	opts.SnippetsDir = path.Clean(opts.SnippetsDir)
	opts.PagesDir = path.Clean(opts.PagesDir)

	return &Generator{
		opts:       opts,
		renderer:   renderer,
		scaffolder: NewTemplateScaffolder(renderer, opts.PagesDir),
		registrar:  routes.Registrar{Key: opts.RoutesKey},
		logger:     logger,
	}
}

// WithScaffolder replaces the component shell scaffolder
func (g *Generator) WithScaffolder(s Scaffolder) *Generator {
	g.scaffolder = s
	return g
}

// Generate plans the page for raw and applies the plan to tree. Nothing is
// written when planning fails. A failed write stops the remaining writes;
// files already written stay in place.
func (g *Generator) Generate(ctx context.Context, raw string, tree project.Tree) (*Plan, error) {
	plan, err := g.Plan(ctx, raw, tree)
	if err != nil {
		return nil, err
	}

	if err := g.Apply(ctx, plan, tree); err != nil {
		return plan, err
	}
	return plan, nil
}

// Plan computes every write needed for raw without touching tree
func (g *Generator) Plan(ctx context.Context, raw string, tree project.Tree) (*Plan, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	names := naming.Derive(raw)
	g.logger.Debug().
		Str("raw", raw).
		Str("dasherized", names.Dasherized).
		Str("classified", names.Classified).
		Msg("derived names")

	vars := names.Variables()

	examples, err := g.renderer.Render(ExampleSet, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s templates: %w", ExampleSet, err)
	}
	consumers, err := g.renderer.Render(ConsumerSet, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s templates: %w", ConsumerSet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shell, err := g.scaffolder.Scaffold(names)
	if err != nil {
		return nil, fmt.Errorf("failed to scaffold component: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !tree.Exists(g.opts.RoutesFile) {
		return nil, fmt.Errorf("%w: %s", ErrRoutesFileNotFound, g.opts.RoutesFile)
	}
	current, err := tree.Read(g.opts.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	route := routes.Route{
		Path:       names.Dasherized,
		Title:      names.TitleCase,
		Component:  names.ConsumerComponent,
		ImportPath: g.importPath(names),
	}
	updated, err := g.registrar.Register(current, route)
	if err != nil {
		return nil, fmt.Errorf("failed to register route in %s: %w", g.opts.RoutesFile, err)
	}

	plan := &Plan{Names: names, Route: route}
	stage := func(source, p, content string) error {
		for i := range plan.Changes {
			if plan.Changes[i].Path == p {
				g.logger.Debug().
					Str("path", p).
					Str("from", plan.Changes[i].Source).
					Str("by", source).
					Msg("replacing staged file")
				plan.Changes[i].Content = content
				plan.Changes[i].Source = source
				return nil
			}
		}

		c := Change{Path: p, Content: content, Action: ActionCreate, Source: source}
		if tree.Exists(p) {
			previous, err := tree.Read(p)
			if err != nil {
				return fmt.Errorf("failed to read existing %s: %w", p, err)
			}
			c.Action = ActionOverwrite
			c.Previous = previous
		}
		plan.Changes = append(plan.Changes, c)
		return nil
	}

	for _, f := range shell {
		if err := stage(ComponentSet, f.Path, f.Content); err != nil {
			return nil, err
		}
	}
	for _, f := range examples {
		if err := stage(ExampleSet, path.Join(g.opts.SnippetsDir, f.Path), f.Content); err != nil {
			return nil, err
		}
	}
	for _, f := range consumers {
		if err := stage(ConsumerSet, path.Join(g.opts.PagesDir, f.Path), f.Content); err != nil {
			return nil, err
		}
	}
	if err := stage(RoutesSource, g.opts.RoutesFile, updated); err != nil {
		return nil, err
	}

	g.logger.Debug().
		Int("changes", len(plan.Changes)).
		Str("route", route.Path).
		Msg("planned consumer page")

	return plan, nil
}

// Apply writes plan to tree in order
func (g *Generator) Apply(ctx context.Context, plan *Plan, tree project.Tree) error {
	if tree == nil {
		return ErrNilTree
	}

	for _, c := range plan.Changes {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if c.Source == RoutesSource {
			err = tree.Overwrite(c.Path, c.Content)
		} else {
			err = tree.Write(c.Path, c.Content)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Path, err)
		}

		g.logger.Info().
			Str("path", c.Path).
			Str("action", string(c.Action)).
			Msg("wrote file")
	}
	return nil
}

// importPath is the module specifier of the consumer component as seen from
// the routes file.
func (g *Generator) importPath(names naming.Names) string {
	target := path.Join(g.opts.PagesDir, names.ConsumerSelector, names.ConsumerSelector+".component")
	from := path.Dir(g.opts.RoutesFile)

	rel, err := filepath.Rel(filepath.FromSlash(from), filepath.FromSlash(target))
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}
