package main

import (
	"fmt"
	"os"

	"github.com/ark-network/scriptsim/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

//nolint:all
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	app := cli.NewApp()

	app.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	app.Name = "scriptsim"
	app.Usage = "Parse, serialize and step through Bitcoin scripts"
	app.Commands = append(
		app.Commands,
		&parseCommand,
		&decodeCommand,
		&serializeCommand,
		&varintCommand,
		&numCommand,
		&execCommand,
		&verifyCommand,
		&consoleCommand,
	)

	app.Before = func(ctx *cli.Context) error {
		c, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("invalid config: %s", err)
		}
		cfg = c

		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		log.SetLevel(log.Level(cfg.LogLevel))
		log.Debugf("loaded config: %s", cfg)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}
