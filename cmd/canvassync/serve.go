package main

import (
	"context"
	"flag"
	"os"

	"canvassync/internal/config"
	"canvassync/internal/server"
)

var ServeCommand = _serveCommand{
	Name:        "serve",
	Description: "Serve the HTTP trigger, liveness probe and ICS feed",
}

type _serveCommand struct {
	Name        string
	Description string
}

func (s _serveCommand) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var (
		addr     string
		schedule string
	)

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.StringVar(&addr, "addr", cfg.ListenAddr, "listen address")
	fs.StringVar(&schedule, "schedule", "", "cron expression for background syncs (e.g. '0 6 * * *')")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sync, err := newSyncer(ctx, cfg)
	if err != nil {
		return err
	}

	return server.New(addr, sync, os.Stdout).ListenAndServe(ctx, schedule)
}
