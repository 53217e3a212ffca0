// Command netcodec is a small front end over the netcodec library: it
// encodes and decodes book fixture files and reports size statistics
// for an encoded net.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "netcodec",
		Usage: "encode, decode, and inspect interaction net bitstreams",
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			statCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "netcodec:", err)
		os.Exit(1)
	}
}

var refModeFlag = &cli.StringFlag{
	Name:  "ref-mode",
	Value: "string",
	Usage: "REF payload encoding: string or id",
}

var endianFlag = &cli.StringFlag{
	Name:  "endian",
	Value: "le",
	Usage: "bit packing order: le or be",
}

var refIDWidthFlag = &cli.IntFlag{
	Name:  "ref-id-width",
	Value: 28,
	Usage: "bit width of REF ids when --ref-mode=id",
}
