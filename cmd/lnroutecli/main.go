// Command lnroutecli loads a fixture describing a small gossip network,
// replays it through the real gossip ingest path, and prints the routes
// the fixture asks for. It exists to exercise the graph and routing
// packages end to end without standing up a live peer connection.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "lnroutecli"
	app.Usage = "inspect a gossiped channel graph and compute routes over it"
	app.Commands = []cli.Command{
		routeCommand,
		queryCommand,
		graphCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "lnroutecli: %v\n", err)
		os.Exit(1)
	}
}

// actionDecorator wraps a cli.ActionFunc so command implementations can
// return plain errors without also having to call cli.NewExitError
// themselves.
func actionDecorator(fn func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		if err := fn(ctx); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		return nil
	}
}
