package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hvmlabs/netcodec"
	"github.com/urfave/cli/v2"
)

var statCommand = &cli.Command{
	Name:      "stat",
	Usage:     "report size and wiring cost for an encoded net",
	ArgsUsage: "<in.bin>",
	Flags:     []cli.Flag{refModeFlag, refIDWidthFlag, endianFlag},
	Action:    runStat,
}

func runStat(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("netcodec stat: expected <in.bin>")
	}
	order, err := resolveOrder(ctx)
	if err != nil {
		return err
	}
	refMode, err := resolveRefMode(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("netcodec stat: %w", err)
	}

	net, err := netcodec.DecodeNet(data, order, refMode)
	if err != nil {
		return fmt.Errorf("netcodec stat: %w", err)
	}

	wiring, err := net.CurrentWiring()
	if err != nil {
		return fmt.Errorf("netcodec stat: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("net stat",
		slog.Int("bytes", len(data)),
		slog.Int("bits", len(data)*8),
		slog.Int("redexes", len(net.Redexes)),
		slog.Int("pairs", len(wiring.Pairs)),
		slog.Int("wiring_bits_bound", netcodec.WiringBitCost(len(wiring.Pairs))),
	)
	return nil
}
