package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ark-network/scriptsim/common/script"
	"github.com/urfave/cli/v2"
)

var (
	parseCommand = cli.Command{
		Name:      "parse",
		Usage:     "Disassemble a raw script body into opcode and data records",
		ArgsUsage: "<hex>",
		Action:    parseAction,
	}

	decodeCommand = cli.Command{
		Name:      "decode",
		Usage:     "Disassemble a length-prefixed serialized script",
		ArgsUsage: "<hex>",
		Action:    decodeAction,
	}

	serializeCommand = cli.Command{
		Name:      "serialize",
		Usage:     "Build a script from OP_* names and hex pushes and serialize it",
		ArgsUsage: "<OP_NAME|hex>...",
		Action:    serializeAction,
	}

	varintCommand = cli.Command{
		Name:  "varint",
		Usage: "Encode or decode a variable length integer",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode a non-negative integer",
				ArgsUsage: "<value>",
				Action:    varintEncodeAction,
			},
			{
				Name:      "decode",
				Usage:     "Decode the varint at the start of a hex buffer",
				ArgsUsage: "<hex>",
				Action:    varintDecodeAction,
			},
		},
	}

	numCommand = cli.Command{
		Name:  "num",
		Usage: "Encode or decode a script number",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode a signed integer",
				ArgsUsage: "<value>",
				Action:    numEncodeAction,
			},
			{
				Name:      "decode",
				Usage:     "Decode a script number from hex",
				ArgsUsage: "<hex>",
				Action:    numDecodeAction,
			},
		},
	}
)

func singleArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one argument, got %d", ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func parseAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}
	return printJSON(script.Disassemble(arg))
}

func decodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}
	return printJSON(script.DisassembleSerialized(arg))
}

func serializeAction(ctx *cli.Context) error {
	cmds, err := parseCommandArgs(ctx.Args().Slice())
	if err != nil {
		return err
	}

	s := script.NewScript(cmds...)
	buf, err := s.Serialize()
	if err != nil {
		return err
	}

	return printJSON(map[string]string{
		"script":     s.String(),
		"serialized": hex.EncodeToString(buf),
	})
}

func varintEncodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}

	value, ok := new(big.Int).SetString(arg, 10)
	if !ok {
		return fmt.Errorf("invalid integer %q", arg)
	}
	buf, err := script.EncodeVarIntBig(value)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{
		"value": value.String(),
		"hex":   hex.EncodeToString(buf),
		"size":  len(buf),
	})
}

func varintDecodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}

	buf, err := script.DecodeHex(arg)
	if err != nil {
		return err
	}
	value, n, err := script.DecodeVarInt(buf)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{
		"value":     strconv.FormatUint(value, 10),
		"bytesRead": n,
	})
}

func numEncodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}

	value, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %s", arg, err)
	}

	return printJSON(map[string]interface{}{
		"value": value,
		"hex":   hex.EncodeToString(script.EncodeScriptNum(value)),
	})
}

func numDecodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}

	buf, err := script.DecodeHex(arg)
	if err != nil {
		return err
	}
	value, err := script.DecodeScriptNum(buf)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{
		"hex":   hex.EncodeToString(buf),
		"value": value,
	})
}
