package commands

import (
	"testing"

	"github.com/urfave/cli/v3"
)

func TestRegister(t *testing.T) {
	app := &cli.Command{Name: "cocina"}
	app = NewRunCmd(&Flags{}).Register(app)

	if len(app.Commands) != 1 {
		t.Fatalf("registered %d commands, want 1", len(app.Commands))
	}
	if app.Commands[0].Name != "run" {
		t.Errorf("command name = %q, want %q", app.Commands[0].Name, "run")
	}
}
