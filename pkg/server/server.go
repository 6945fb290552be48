// Package server exposes the voting API and the live leaderboard over HTTP.
//
// Routes:
//
//	POST /import-contacts   replace the roster, returns {"status","count"}
//	POST /save-questions    replace the ballot questions
//	POST /submit-vote       cast one vote per employee
//	POST /clear-votes       delete every vote
//	GET  /contacts          roster
//	GET  /questions         ballot questions
//	GET  /votes-summary     {"totalVotes": n}
//	GET  /ranking           ranking drawn into the current leaderboard
//	GET  /leaderboard.png   current leaderboard image
//	GET  /healthz           liveness and build version
//
// Every mutating route regenerates the leaderboard before responding so a
// client polling /leaderboard.png sees the change on its next request.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/votecloud/votecloud/pkg/buildinfo"
	"github.com/votecloud/votecloud/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies. Roster uploads are the largest.
const MaxBodyBytes = 10 << 20

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// Server routes HTTP requests to a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server over runner. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(s.observe)

	r.Post("/import-contacts", s.handleImportContacts)
	r.Post("/save-questions", s.handleSaveQuestions)
	r.Post("/submit-vote", s.handleSubmitVote)
	r.Post("/clear-votes", s.handleClearVotes)

	r.Get("/contacts", s.handleContacts)
	r.Get("/questions", s.handleQuestions)
	r.Get("/votes-summary", s.handleVotesSummary)
	r.Get("/ranking", s.handleRanking)
	r.Get("/leaderboard.png", s.handleLeaderboard)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Short()})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
