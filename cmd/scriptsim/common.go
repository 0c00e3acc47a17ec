package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ark-network/scriptsim/common/engine"
	"github.com/ark-network/scriptsim/common/script"
)

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}

	fmt.Println(string(jsonBytes))
	return nil
}

// isOpcodeArg reports whether a positional argument names an opcode rather
// than hex data to push.
func isOpcodeArg(arg string) bool {
	return strings.HasPrefix(strings.ToUpper(arg), "OP_")
}

// parseCommandArgs turns OP_* names and hex pushes into script commands.
func parseCommandArgs(args []string) ([]script.Command, error) {
	cmds := make([]script.Command, 0, len(args))
	for _, arg := range args {
		if isOpcodeArg(arg) {
			op, ok := script.OpcodeByName[strings.ToUpper(arg)]
			if !ok {
				return nil, fmt.Errorf("unknown opcode %s", arg)
			}
			cmds = append(cmds, script.NewOpcode(op))
			continue
		}

		data, err := script.DecodeHex(arg)
		if err != nil {
			return nil, err
		}
		cmd, err := script.NewPushData(data)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func decodeDigest(digestHex string) ([]byte, error) {
	digest, err := script.DecodeHex(digestHex)
	if err != nil {
		return nil, fmt.Errorf("invalid digest: %s", err)
	}
	if len(digest) != engine.DigestSize {
		return nil, fmt.Errorf(
			"invalid digest: must be %d bytes, got %d",
			engine.DigestSize, len(digest),
		)
	}
	return digest, nil
}

func stackStrings(items []engine.StackItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
