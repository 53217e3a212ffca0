package main

import (
	"fmt"
	"os"

	"github.com/hvmlabs/netcodec"
	"github.com/urfave/cli/v2"
)

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "pack a tab-separated book fixture into a single encoded book",
	ArgsUsage: "<in.book> <out.bin>",
	Flags:     []cli.Flag{refModeFlag, refIDWidthFlag, endianFlag},
	Action:    runEncode,
}

func runEncode(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("netcodec encode: expected <in.book> <out.bin>")
	}
	order, err := resolveOrder(ctx)
	if err != nil {
		return err
	}
	refMode, err := resolveRefMode(ctx)
	if err != nil {
		return err
	}

	in, err := os.Open(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("netcodec encode: %w", err)
	}
	defer in.Close()

	entries, err := readFixture(in)
	if err != nil {
		return err
	}

	book := netcodec.NewBook()
	for _, e := range entries {
		net, err := netcodec.DecodeNet(e.data, order, refMode)
		if err != nil {
			return fmt.Errorf("netcodec encode: decoding entry %q: %w", e.name, err)
		}
		book.Put(e.name, net)
	}

	data, err := netcodec.EncodeBook(book, order, refMode)
	if err != nil {
		return fmt.Errorf("netcodec encode: %w", err)
	}
	if err := os.WriteFile(ctx.Args().Get(1), data, 0o644); err != nil {
		return fmt.Errorf("netcodec encode: %w", err)
	}
	return nil
}
