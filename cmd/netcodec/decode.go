package main

import (
	"fmt"
	"os"

	"github.com/hvmlabs/netcodec"
	"github.com/urfave/cli/v2"
)

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "unpack an encoded book into a tab-separated book fixture",
	ArgsUsage: "<in.bin> <out.book>",
	Flags:     []cli.Flag{refModeFlag, refIDWidthFlag, endianFlag},
	Action:    runDecode,
}

func runDecode(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("netcodec decode: expected <in.bin> <out.book>")
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
		return fmt.Errorf("netcodec decode: %w", err)
	}

	book, err := netcodec.DecodeBook(data, order, refMode)
	if err != nil {
		return fmt.Errorf("netcodec decode: %w", err)
	}

	entries := make([]fixtureEntry, 0, book.Len())
	for _, name := range book.Keys() {
		net, _ := book.Get(name)
		encoded, err := netcodec.EncodeNet(net, order, refMode)
		if err != nil {
			return fmt.Errorf("netcodec decode: re-encoding entry %q: %w", name, err)
		}
		entries = append(entries, fixtureEntry{name: name, data: encoded})
	}

	out, err := os.Create(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("netcodec decode: %w", err)
	}
	defer out.Close()

	return writeFixture(out, entries)
}
