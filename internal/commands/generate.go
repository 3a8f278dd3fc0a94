package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/showcase/internal/naming"
	"github.com/okra-platform/showcase/internal/project"
	"github.com/okra-platform/showcase/internal/schematic"
)

var ErrEmptyName = errors.New("component name cannot be empty")

// GenerateOptions contains options for the generate command
type GenerateOptions struct {
	Name   string
	DryRun bool
}

// NamePrompter asks the user for a component name
type NamePrompter interface {
	PromptName(opts ...tea.ProgramOption) (string, error)
}

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	Prompter     NamePrompter
	Output       Output
}

// GenerateCommand creates a consumer page for a library component
type GenerateCommand struct {
	dir  string
	deps GenerateDependencies
}

// NewGenerateCommand creates a generate command for the project containing dir
func NewGenerateCommand(dir string) *GenerateCommand {
	return &GenerateCommand{
		dir: dir,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Prompter:     &formPrompter{},
			Output:       &defaultOutput{},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

func (gc *GenerateCommand) Run(ctx context.Context, opts GenerateOptions) error {
	name := opts.Name
	if name == "" {
		var err error
		name, err = gc.deps.Prompter.PromptName()
		if err != nil {
			return fmt.Errorf("failed to get component name: %w", err)
		}
	}
	if err := validateName(name); err != nil {
		return err
	}

	dir, err := projectDir(gc.dir)
	if err != nil {
		return err
	}
	cfg, root, err := gc.deps.ConfigLoader.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	logger := log.With().Str("component", "generate").Str("root", root).Logger()
	gen := schematic.NewGenerator(schematic.OptionsFromConfig(cfg), newRenderer(cfg, root), logger)
	tree := project.NewDiskTree(root)

	if opts.DryRun {
		plan, err := gen.Plan(ctx, name, tree)
		if err != nil {
			return fmt.Errorf("failed to plan consumer page: %w", err)
		}
		gc.printPlan(plan)
		return nil
	}

	plan, err := gen.Generate(ctx, name, tree)
	if err != nil {
		return fmt.Errorf("failed to generate consumer page: %w", err)
	}

	for _, c := range plan.Changes {
		gc.deps.Output.Printf("  %-9s %s\n", c.Action, c.Path)
	}
	gc.deps.Output.Printf("✅ Created consumer page %s at /%s\n", plan.Names.ConsumerComponent, plan.Route.Path)
	return nil
}

func (gc *GenerateCommand) printPlan(plan *schematic.Plan) {
	gc.deps.Output.Printf("📋 Plan for %s (dry run, nothing written)\n", plan.Names.Dasherized)
	for _, c := range plan.Changes {
		gc.deps.Output.Printf("  %-9s %s\n", c.Action, c.Path)
	}
	for _, c := range plan.Changes {
		if c.Action != schematic.ActionOverwrite {
			continue
		}
		gc.deps.Output.Printf("\n--- %s (-current +generated)\n%s", c.Path, cmp.Diff(c.Previous, c.Content))
	}
}

func validateName(s string) error {
	if s == "" {
		return ErrEmptyName
	}
	if naming.Derive(s).Empty() {
		return fmt.Errorf("%w: %q has no usable characters", ErrEmptyName, s)
	}
	return nil
}

type formPrompter struct{}

func (p *formPrompter) PromptName(opts ...tea.ProgramOption) (string, error) {
	var name string
	form := createNameForm(&name)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return "", err
		}
	} else {
		if err := form.Run(); err != nil {
			return "", err
		}
	}

	return name, nil
}

func createNameForm(name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Component name").
				Description("Library component to create a demo page for").
				Placeholder("step-change-event").
				Value(name).
				Validate(validateName),
		),
	)
}
