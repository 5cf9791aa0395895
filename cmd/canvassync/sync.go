package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"canvassync/internal/config"
)

var SyncCommand = _syncCommand{
	Name:        "sync",
	Description: "Run one sync and print the summary",
}

type _syncCommand struct {
	Name        string
	Description string
}

func (s _syncCommand) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sync, err := newSyncer(ctx, cfg)
	if err != nil {
		return err
	}

	summary, err := sync.Run(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
