package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/showcase/internal/commands"
	"github.com/okra-platform/showcase/internal/schematic"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	// A missing .env is fine, values may come from the real environment
	_ = godotenv.Load()

	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "showcase",
		Usage:   "Scaffold demo pages for component library docs",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("SHOWCASE_LOG_LEVEL"),
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"C"},
				Usage:   "project directory (defaults to the current directory)",
				Sources: cli.EnvVars("SHOWCASE_PROJECT"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Flags.LogLevel = c.String("log-level")
			ctrl.Flags.Project = c.String("project")

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Aliases:   []string{"g"},
				Usage:     "Create the demo page for a library component and register its route",
				ArgsUsage: "[component-name]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print the planned changes without writing them",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx, commands.GenerateOptions{
						Name:   c.Args().First(),
						DryRun: c.Bool("dry-run"),
					})
				},
			},
			{
				Name:      "render",
				Usage:     "Preview a template set for a component name",
				ArgsUsage: "<set> [component-name]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "re-render whenever the templates directory changes",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					set := c.Args().Get(0)
					if set == "" {
						set = schematic.ConsumerSet
					}
					return ctrl.Render(ctx, commands.RenderOptions{
						Set:   set,
						Name:  c.Args().Get(1),
						Watch: c.Bool("watch"),
					})
				},
			},
			{
				Name:  "routes",
				Usage: "List the routes registered in the routes file",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Routes(ctx)
				},
			},
			{
				Name:  "templates",
				Usage: "List the available template sets",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Templates(ctx)
				},
			},
			{
				Name:      "eject",
				Usage:     "Copy the built-in template sets into the project for customization",
				ArgsUsage: "[dir]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite template files that already exist",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Eject(ctx, commands.EjectOptions{
						Dir:   c.Args().First(),
						Force: c.Bool("force"),
					})
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run showcase")
	}
}
