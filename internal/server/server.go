// Package server exposes the sync over HTTP: a liveness probe, a trigger
// endpoint, and the ICS feed, plus an optional cron schedule.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"

	"canvassync/internal"
	"canvassync/internal/feed"
	"canvassync/internal/syncer"
)

// Runner is the sync entry point the HTTP surface triggers.
type Runner interface {
	Run(ctx context.Context) (*syncer.Summary, error)
	AssignmentEvents(ctx context.Context) ([]internal.Event, error)
}

type Server struct {
	addr   string
	runner Runner
	output io.Writer
}

func New(addr string, runner Runner, output io.Writer) *Server {
	if output == nil {
		output = os.Stdout
	}
	return &Server{addr: addr, runner: runner, output: output}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/sync", s.handleSync)
	mux.HandleFunc("/feed.ics", s.handleFeed)
	return mux
}

// ListenAndServe serves until ctx is cancelled. A non-empty schedule runs
// syncs in the background on the given cron expression; scheduled and
// triggered runs are not synchronized with each other, last write wins.
func (s *Server) ListenAndServe(ctx context.Context, schedule string) error {
	if schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(schedule, s.scheduledSync); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		s.logf("scheduled sync: %q", schedule)
	}

	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	s.logf("listening on %s", s.addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) scheduledSync() {
	summary, err := s.runner.Run(context.Background())
	if err != nil {
		s.logf("scheduled sync failed: %v", err)
		return
	}
	s.logf("scheduled sync: %d assignment(s), %d manual event(s)",
		summary.SyncedAssignments, summary.ManualEvents)
}

func (s *Server) handleHealthz(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSync(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	summary, err := s.runner.Run(req.Context())
	if err != nil {
		s.logf("sync failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleFeed(w http.ResponseWriter, req *http.Request) {
	events, err := s.runner.AssignmentEvents(req.Context())
	if err != nil {
		s.logf("feed failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	io.WriteString(w, feed.Render(events))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) logf(format string, a ...any) {
	internal.Logf(s.output, "server:", "", format, a...)
}
