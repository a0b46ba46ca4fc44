// Package commands wires the CLI commands of the recipe manager.
package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/ameal/cocina/internal/manager"
	"github.com/ameal/cocina/internal/shell"
	"github.com/ameal/cocina/internal/simulator"
	"github.com/ameal/cocina/internal/storage"
)

// Flags holds the global flag values shared across commands.
type Flags struct {
	LogLevel string
	NoColor  bool
}

// RunCmd implements the run command: the interactive menu loop.
type RunCmd struct {
	flags *Flags
	file  string
}

// NewRunCmd creates a new run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "run",
		Usage: "start the interactive recipe and shopping-list manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path of the data file",
				Value:       "recetas.json",
				Destination: &cmd.file,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	gateway := storage.NewGateway(cmd.file)
	defer gateway.Close()

	mgr := manager.New()
	recipes, items, err := gateway.Load(ctx)
	if err != nil {
		// A broken data file must not keep the program from starting.
		log.Warn().Err(err).Str("path", cmd.file).Msg("could not load data file, starting empty")
	} else {
		mgr.Replace(recipes, items)
	}

	log.Debug().
		Str("path", cmd.file).
		Int("recipes", mgr.RecipeCount()).
		Int("items", mgr.ItemCount()).
		Msg("state loaded, starting shell")

	printer := shell.NewPrinter(os.Stdout, cmd.flags.NoColor)
	sim := simulator.New(mgr, printer)

	return shell.New(mgr, gateway, sim, printer, os.Stdin).Run(ctx)
}
