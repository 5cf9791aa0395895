package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"canvassync/internal/canvas"
	"canvassync/internal/config"
	"canvassync/internal/google"
	"canvassync/internal/syncer"
)

var verbose bool

func init() {
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	args := flag.Args()
	name := SyncCommand.Name
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	switch name {
	case SyncCommand.Name:
		err = SyncCommand.Run(ctx, cfg, args)
	case ServeCommand.Name:
		err = ServeCommand.Run(ctx, cfg, args)
	case ExportCommand.Name:
		err = ExportCommand.Run(ctx, cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintf(w, "  %-8s %s\n", SyncCommand.Name, SyncCommand.Description)
	fmt.Fprintf(w, "  %-8s %s\n", ServeCommand.Name, ServeCommand.Description)
	fmt.Fprintf(w, "  %-8s %s\n", ExportCommand.Name, ExportCommand.Description)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.PrintDefaults()
}

// newSyncer wires the configured collaborators. Credentials are parsed once
// here and the resulting handles shared by every caller.
func newSyncer(ctx context.Context, cfg *config.Config) (*syncer.Syncer, error) {
	source := canvas.NewClient(cfg.CanvasBaseURL, cfg.CanvasToken)
	source.Verbose = verbose

	var sheet syncer.SheetStore
	if cfg.SheetID != "" {
		s, err := google.NewSheets(ctx, cfg.Credentials, cfg.SheetID)
		if err != nil {
			return nil, err
		}
		s.Verbose = verbose
		sheet = s
	}

	var cal syncer.CalendarStore
	if cfg.CalendarID != "" {
		c, err := google.NewCalendar(ctx, cfg.Credentials, cfg.CalendarID)
		if err != nil {
			return nil, err
		}
		c.Verbose = verbose
		cal = c
	}

	return syncer.New(os.Stdout, source, sheet, cal, cfg.CourseIDs, cfg.Location()), nil
}
