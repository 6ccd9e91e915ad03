package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/lebowkis/go-lebowkis/flags"
)

var app = newApp()

func newApp() *cli.App {
	a := flags.NewApp()
	a.Commands = commands()
	a.Action = func(ctx *cli.Context) error {
		return cli.ShowAppHelp(ctx)
	}
	return a
}

// Launch parses the arguments and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}
