package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"canvassync/internal/config"
	"canvassync/internal/feed"
)

var ExportCommand = _exportCommand{
	Name:        "export",
	Description: "Write the current assignments as an ICS file",
}

type _exportCommand struct {
	Name        string
	Description string
}

func (e _exportCommand) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var file string

	fs := flag.NewFlagSet(e.Name, flag.ExitOnError)
	fs.StringVar(&file, "file", "assignments.ics", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sync, err := newSyncer(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := sync.AssignmentEvents(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(file, []byte(feed.Render(events)), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d event(s) written to %s\n", len(events), file)
	return nil
}
