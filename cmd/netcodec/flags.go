package main

import (
	"fmt"

	"github.com/hvmlabs/netcodec"
	"github.com/urfave/cli/v2"
)

func resolveOrder(ctx *cli.Context) (netcodec.Order, error) {
	switch ctx.String(endianFlag.Name) {
	case "le", "":
		return netcodec.LittleEndian, nil
	case "be":
		return netcodec.BigEndian, nil
	default:
		return 0, fmt.Errorf("netcodec: unknown --endian value %q (want le or be)", ctx.String(endianFlag.Name))
	}
}

func resolveRefMode(ctx *cli.Context) (netcodec.RefMode, error) {
	switch ctx.String(refModeFlag.Name) {
	case "string", "":
		return netcodec.RefString, nil
	case "id":
		return netcodec.RefIDMode(ctx.Int(refIDWidthFlag.Name)), nil
	default:
		return netcodec.RefMode{}, fmt.Errorf("netcodec: unknown --ref-mode value %q (want string or id)", ctx.String(refModeFlag.Name))
	}
}
