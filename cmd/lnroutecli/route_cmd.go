package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lightninglabs/lnroute/fn"
	"github.com/lightninglabs/lnroute/lnwire"
	"github.com/lightninglabs/lnroute/routing/route"
	"github.com/urfave/cli"
)

// defaultFinalCLTV is used for an ad hoc query command invocation that
// doesn't specify --cltv explicitly.
const defaultFinalCLTV = 40

var fixtureFlag = cli.StringFlag{
	Name:  "fixture",
	Usage: "path to a JSON gossip fixture",
}

var routeCommand = cli.Command{
	Name:   "route",
	Usage:  "replay a gossip fixture and print the routes it requests",
	Flags:  []cli.Flag{fixtureFlag},
	Action: actionDecorator(runRouteCommand),
}

func runRouteCommand(ctx *cli.Context) error {
	path := ctx.String("fixture")
	if path == "" {
		return fmt.Errorf("--fixture is required")
	}

	router, f, keys, err := loadFixture(path)
	if err != nil {
		return err
	}

	for i, req := range f.Routes {
		target, ok := keys[req.Target]
		if !ok {
			return fmt.Errorf("route %d: unknown target %q", i, req.Target)
		}

		hints, err := resolveHints(keys, req.Hints)
		if err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}

		r, err := router.GetRoute(
			target.v, hints, lnwire.MilliSatoshi(req.FinalValueMsat), req.FinalCLTV,
		)
		if err != nil {
			var rerr *route.Error
			if asRouteError(err, &rerr) {
				ignorable := "fatal"
				if rerr.Ignore() {
					ignorable = "ignorable"
				}

				fmt.Fprintf(os.Stderr, "route %d: %s (%s)\n", i, rerr.Error(), ignorable)
				continue
			}

			return fmt.Errorf("route %d: %w", i, err)
		}

		printRoute(req.Target, r)
	}

	return nil
}

func asRouteError(err error, target **route.Error) bool {
	rerr, ok := err.(*route.Error)
	if ok {
		*target = rerr
	}

	return ok
}

func printRoute(targetName string, r *route.Route) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("route to %s", targetName))
	t.AppendHeader(table.Row{"#", "channel", "next hop", "fee msat", "cltv delta"})

	for i, hop := range r.Hops {
		t.AppendRow(table.Row{
			i,
			strconv.FormatUint(hop.ChannelID, 10),
			hop.PubKeyBytes.String(),
			uint64(hop.FeeMsat),
			hop.CLTVExpiryDelta,
		})
	}

	t.AppendFooter(table.Row{"", "", "total fee", uint64(r.TotalFees()), ""})
	t.Render()
}

var queryCommand = cli.Command{
	Name:  "query",
	Usage: "compute a single ad hoc route against a loaded fixture",
	Flags: []cli.Flag{
		fixtureFlag,
		cli.StringFlag{Name: "to", Usage: "name of the target node"},
		cli.Uint64Flag{Name: "amt", Usage: "amount to deliver, in millisatoshis"},
		cli.UintFlag{Name: "cltv", Usage: "final CLTV expiry (default 40)"},
	},
	Action: actionDecorator(runQueryCommand),
}

// cltvFromFlag reads the --cltv flag as an fn.Option: present only if the
// caller actually set it, so a zero flag value and an omitted flag aren't
// conflated.
func cltvFromFlag(ctx *cli.Context) fn.Option[uint32] {
	if !ctx.IsSet("cltv") {
		return fn.None[uint32]()
	}

	return fn.Some(uint32(ctx.Uint("cltv")))
}

func runQueryCommand(ctx *cli.Context) error {
	path := ctx.String("fixture")
	targetName := ctx.String("to")
	if path == "" || targetName == "" {
		return fmt.Errorf("--fixture and --to are required")
	}

	router, _, keys, err := loadFixture(path)
	if err != nil {
		return err
	}

	target, ok := keys[targetName]
	if !ok {
		return fmt.Errorf("unknown target %q", targetName)
	}

	finalCLTV := cltvFromFlag(ctx).UnwrapOr(defaultFinalCLTV)

	r, err := router.GetRoute(
		target.v, nil, lnwire.MilliSatoshi(ctx.Uint64("amt")), finalCLTV,
	)
	if err != nil {
		return err
	}

	printRoute(targetName, r)

	return nil
}

var graphCommand = cli.Command{
	Name:   "graph",
	Usage:  "replay a gossip fixture and print the resulting node table",
	Flags:  []cli.Flag{fixtureFlag},
	Action: actionDecorator(runGraphCommand),
}

func runGraphCommand(ctx *cli.Context) error {
	path := ctx.String("fixture")
	if path == "" {
		return fmt.Errorf("--fixture is required")
	}

	router, f, keys, err := loadFixture(path)
	if err != nil {
		return err
	}

	snapshot := router.Snapshot()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("graph loaded from %s", path))
	t.AppendHeader(table.Row{
		"node", "lowest inbound base", "lowest inbound ppm",
	})

	for name := range f.Nodes {
		v := keys[name].v
		node, ok := snapshot.Node(v)
		if !ok {
			continue
		}

		t.AppendRow(table.Row{
			name, node.LowestInboundFeeBaseMsat, node.LowestInboundFeeProportionalMillionths,
		})
	}

	t.Render()

	return nil
}
