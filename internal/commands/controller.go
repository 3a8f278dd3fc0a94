// Package commands contains the CLI commands for the application
package commands

import (
	"context"
)

type Flags struct {
	LogLevel string
	Project  string
}

type Controller struct {
	Flags *Flags
}

func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	cmd := NewGenerateCommand(c.Flags.Project)
	return cmd.Run(ctx, opts)
}

func (c *Controller) Render(ctx context.Context, opts RenderOptions) error {
	cmd := NewRenderCommand(c.Flags.Project)
	return cmd.Run(ctx, opts)
}

func (c *Controller) Routes(ctx context.Context) error {
	cmd := NewRoutesCommand(c.Flags.Project)
	return cmd.Run(ctx)
}

func (c *Controller) Templates(ctx context.Context) error {
	cmd := NewTemplatesCommand(c.Flags.Project)
	return cmd.Run(ctx)
}

func (c *Controller) Eject(ctx context.Context, opts EjectOptions) error {
	cmd := NewEjectCommand(c.Flags.Project)
	return cmd.Run(ctx, opts)
}
