package main

import (
	"fmt"

	"github.com/ark-network/scriptsim/common/engine"
	"github.com/ark-network/scriptsim/common/script"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	digestFlag = cli.StringFlag{
		Name:  "digest",
		Usage: "32-byte message digest in hex, required by OP_CHECKSIG",
	}

	scriptFlag = cli.StringFlag{
		Name:  "script",
		Usage: "optional, raw script body in hex to run after the arguments",
	}

	pubkeyFlag = cli.StringFlag{
		Name:     "pubkey",
		Usage:    "serialized public key in hex",
		Required: true,
	}

	sigFlag = cli.StringFlag{
		Name:     "sig",
		Usage:    "DER signature in hex",
		Required: true,
	}

	messageFlag = cli.StringFlag{
		Name:  "message",
		Usage: "optional, message to double SHA-256 instead of passing --digest",
	}
)

var (
	execCommand = cli.Command{
		Name:      "exec",
		Usage:     "Run hex pushes and OP_* opcodes against a fresh stack",
		ArgsUsage: "<OP_NAME|hex>...",
		Action:    execAction,
		Flags: []cli.Flag{
			&digestFlag,
			&scriptFlag,
		},
	}

	verifyCommand = cli.Command{
		Name:   "verify",
		Usage:  "Verify an ECDSA signature over a message digest",
		Action: verifyAction,
		Flags: []cli.Flag{
			&pubkeyFlag,
			&sigFlag,
			&digestFlag,
			&messageFlag,
		},
	}
)

func execAction(ctx *cli.Context) error {
	var digest []byte
	if digestHex := ctx.String("digest"); len(digestHex) > 0 {
		d, err := decodeDigest(digestHex)
		if err != nil {
			return err
		}
		digest = d
	}

	m := engine.NewMachine(engine.WithStepCallback(func(info *engine.StepInfo) error {
		log.WithFields(log.Fields{
			"op":    info.Operation,
			"depth": len(info.Stack),
		}).Debug("step")
		return nil
	}))

	for _, arg := range ctx.Args().Slice() {
		if !isOpcodeArg(arg) {
			data, err := script.DecodeHex(arg)
			if err != nil {
				return err
			}
			m.Push(data)
			continue
		}

		pending, err := m.Execute(arg)
		if err != nil {
			return err
		}
		if pending == nil {
			continue
		}
		if digest == nil {
			return fmt.Errorf("%s requires a message digest, use --digest", arg)
		}
		if err := m.ResumeCheckSig(pending, digest); err != nil {
			return err
		}
	}

	if scriptHex := ctx.String("script"); len(scriptHex) > 0 {
		buf, err := script.DecodeHex(scriptHex)
		if err != nil {
			return err
		}
		s, err := script.ParseBody(buf)
		if err != nil {
			return err
		}

		if digest != nil {
			err = m.ExecuteScriptWithDigest(s, digest)
		} else {
			err = m.ExecuteScript(s)
		}
		if err != nil {
			return err
		}
	}

	return printJSON(map[string]interface{}{
		"lastOperation": m.LastOperation(),
		"stack":         stackStrings(m.Stack()),
	})
}

func verifyAction(ctx *cli.Context) error {
	pubKey, err := script.DecodeHex(ctx.String("pubkey"))
	if err != nil {
		return fmt.Errorf("invalid pubkey: %s", err)
	}
	sig, err := script.DecodeHex(ctx.String("sig"))
	if err != nil {
		return fmt.Errorf("invalid signature: %s", err)
	}

	var digest [engine.DigestSize]byte
	switch {
	case ctx.IsSet("message"):
		digest = engine.DigestFromMessage([]byte(ctx.String("message")))
	case ctx.IsSet("digest"):
		d, err := decodeDigest(ctx.String("digest"))
		if err != nil {
			return err
		}
		copy(digest[:], d)
	default:
		return fmt.Errorf("either --digest or --message must be given")
	}

	valid := engine.DefaultVerifier().Verify(pubKey, sig, digest)
	return printJSON(map[string]interface{}{
		"valid": valid,
	})
}
