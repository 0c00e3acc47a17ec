package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ark-network/scriptsim/internal/core/application"
	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	consolePrompt = "scriptsim> "
	digestPrompt  = "digest> "
)

var consoleCommand = cli.Command{
	Name:   "console",
	Usage:  "Start an interactive stack machine session",
	Action: consoleAction,
}

var consoleHelp = `Commands:
  push <hex>...    push one or more byte sequences
  pop              remove the top item
  op <OP_NAME>     execute an opcode (a bare OP_NAME works too)
  digest <hex>     answer a pending OP_CHECKSIG with a 32-byte digest
  cancel           drop a pending OP_CHECKSIG
  stack            print the stack
  example          reset the stack and load the OP_CHECKSIG example
  parse <hex>      disassemble a raw script body
  reset            empty the stack
  help             print this message
  exit             leave the console`

var errExitConsole = errors.New("exit")

func consoleAction(ctx *cli.Context) error {
	svc, err := application.NewService(cfg.MaxSessions, cfg.ShowDecimal, nil)
	if err != nil {
		return err
	}

	c, err := newConsole(svc, ctx.App.Writer)
	if err != nil {
		return err
	}
	defer c.close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          consolePrompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    consoleCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %s", err)
	}
	defer rl.Close()

	log.Debugf("console history is kept in %s", cfg.HistoryFile)
	fmt.Fprintln(c.out, "Type 'help' for the list of commands, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) && len(line) > 0 {
				continue
			}
			return nil
		}

		if err := c.handle(line); err != nil {
			if errors.Is(err, errExitConsole) {
				return nil
			}
			fmt.Fprintf(c.out, "error: %s\n", err)
		}

		if c.waitingDigest {
			rl.SetPrompt(digestPrompt)
		} else {
			rl.SetPrompt(consolePrompt)
		}
	}
}

func consoleCompleter() *readline.PrefixCompleter {
	opcodes := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range []string{
		"OP_DUP", "OP_EQUAL", "OP_ADD", "OP_HASH160", "OP_CHECKSIG",
	} {
		opcodes = append(opcodes, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("push"),
		readline.PcItem("pop"),
		readline.PcItem("op", opcodes...),
		readline.PcItem("digest"),
		readline.PcItem("cancel"),
		readline.PcItem("stack"),
		readline.PcItem("example"),
		readline.PcItem("parse"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// console drives a single application session from text commands.
type console struct {
	svc           application.Service
	session       string
	out           io.Writer
	waitingDigest bool
}

func newConsole(svc application.Service, out io.Writer) (*console, error) {
	id, err := svc.NewSession()
	if err != nil {
		return nil, err
	}
	return &console{svc: svc, session: id, out: out}, nil
}

func (c *console) close() {
	if err := c.svc.CloseSession(c.session); err != nil {
		log.WithError(err).Warn("failed to close console session")
	}
}

// handle runs one console line.  It returns errExitConsole when the user
// asked to leave.
func (c *console) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	if isOpcodeArg(fields[0]) {
		cmd, args = "op", fields
	}

	switch cmd {
	case "exit", "quit":
		return errExitConsole
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
		return nil
	case "push":
		if len(args) == 0 {
			return fmt.Errorf("push requires at least one hex argument")
		}
		var view application.StackView
		for _, arg := range args {
			v, err := c.svc.Push(c.session, arg)
			if err != nil {
				return err
			}
			view = v
		}
		return c.printStack(view)
	case "pop":
		item, err := c.svc.Pop(c.session)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "popped %s\n", item)
		return c.refresh()
	case "op":
		if len(args) != 1 {
			return fmt.Errorf("op requires exactly one opcode name")
		}
		res, err := c.svc.Execute(c.session, args[0])
		if err != nil {
			return err
		}
		return c.printResult(res)
	case "digest":
		if len(args) != 1 {
			return fmt.Errorf("digest requires exactly one hex argument")
		}
		view, err := c.svc.SupplyDigest(c.session, args[0])
		if err != nil {
			return err
		}
		return c.printStack(view)
	case "cancel":
		view, err := c.svc.Cancel(c.session)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, "signature check cancelled")
		return c.printStack(view)
	case "stack":
		return c.refresh()
	case "example":
		res, err := c.svc.LoadCheckSigExample(c.session)
		if err != nil {
			return err
		}
		return c.printResult(res)
	case "parse":
		if len(args) != 1 {
			return fmt.Errorf("parse requires exactly one hex argument")
		}
		for _, record := range c.svc.Parse(args[0]) {
			fmt.Fprintf(c.out, "%-6s %s\n", record.Type, record.Value)
		}
		return nil
	case "reset":
		view, err := c.svc.Reset(c.session)
		if err != nil {
			return err
		}
		return c.printStack(view)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", fields[0])
	}
}

func (c *console) refresh() error {
	view, err := c.svc.Stack(c.session)
	if err != nil {
		return err
	}
	return c.printStack(view)
}

func (c *console) printResult(res application.ExecResult) error {
	if err := c.printStack(res.Stack); err != nil {
		return err
	}
	if res.DigestRequired {
		fmt.Fprintln(c.out, "OP_CHECKSIG needs a 32-byte message digest: "+
			"digest <hex> or cancel")
		if res.SuggestedDigest != "" {
			fmt.Fprintf(c.out, "example digest: %s\n", res.SuggestedDigest)
		}
	}
	return nil
}

func (c *console) printStack(view application.StackView) error {
	c.waitingDigest = view.PendingRequest != ""

	if view.LastOperation != "" {
		fmt.Fprintf(c.out, "last operation: %s\n", view.LastOperation)
	}
	if len(view.Items) == 0 {
		fmt.Fprintln(c.out, "stack is empty")
		return nil
	}
	for i := len(view.Items) - 1; i >= 0; i-- {
		fmt.Fprintf(c.out, "%4d: %s\n", len(view.Items)-1-i, view.Items[i])
	}
	return nil
}
