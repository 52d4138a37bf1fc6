package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tunes: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "tunes",
		Usage:   "Play and keep track of a local music folder",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "extra config file, read after the standard locations",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "music directory, overrides music_dir",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Action: runUI,
		Commands: []*cli.Command{
			{
				Name:   "ui",
				Usage:  "Start the terminal UI (default)",
				Action: runUI,
			},
			{
				Name:   "shell",
				Usage:  "Start an interactive command shell",
				Action: runShell,
			},
			{
				Name:  "scan",
				Usage: "Reconcile the library index once and print it",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the index as JSON",
					},
				},
				Action: runScan,
			},
			{
				Name:   "dir",
				Usage:  "Print the music directory",
				Action: runDir,
			},
			{
				Name:   "watch",
				Usage:  "Log library changes until interrupted",
				Action: runWatch,
			},
		},
	}
}
