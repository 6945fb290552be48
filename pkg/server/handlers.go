package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/score"
	"github.com/votecloud/votecloud/pkg/store"
)

type statusResponse struct {
	Status string `json:"status"`
	Count  *int   `json:"count,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

type importRequest struct {
	Contacts []store.RawContact `json:"contacts"`
}

type questionsRequest struct {
	Questions []store.Question `json:"questions"`
}

type voteRequest struct {
	EmployeeID string `json:"employeeId"`
	VoteFor    string `json:"voteFor"`
}

type summaryResponse struct {
	TotalVotes int `json:"totalVotes"`
}

func (s *Server) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Contacts == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidContact, "contacts must be an array"))
		return
	}

	contacts := store.CleanContacts(req.Contacts)
	if err := s.runner.Store.ReplaceContacts(r.Context(), contacts); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("imported contacts", "received", len(req.Contacts), "kept", len(contacts))
	s.refresh(r.Context())

	n := len(contacts)
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Count: &n})
}

func (s *Server) handleSaveQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.runner.Store.SaveQuestions(r.Context(), req.Questions); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !decode(w, r, &req) {
		return
	}
	if req.EmployeeID == "" || req.VoteFor == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing fields"))
		return
	}

	vote, err := s.runner.Store.CastVote(r.Context(), req.EmployeeID, req.VoteFor)
	if err != nil {
		s.logger.Debug("vote rejected", "employee", req.EmployeeID, "error", err)
		writeError(w, err)
		return
	}
	s.logger.Info("vote recorded", "employee", vote.EmployeeID, "for", vote.VotedFor)
	s.refresh(r.Context())

	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleClearVotes(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Store.ClearVotes(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("votes cleared")
	s.refresh(r.Context())

	writeJSON(w, http.StatusOK, statusResponse{Status: "cleared"})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.runner.Store.Contacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []store.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.runner.Store.Questions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if questions == nil {
		questions = []store.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleVotesSummary(w http.ResponseWriter, r *http.Request) {
	votes, err := s.runner.Store.Votes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{TotalVotes: len(votes)})
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := s.runner.Standings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ranking == nil {
		ranking = []score.Entry{}
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	png, cached, err := s.runner.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// refresh regenerates the leaderboard after a write. The write has already
// succeeded, so a failed render is logged and the cached image dropped; the
// next GET /leaderboard.png retries.
func (s *Server) refresh(ctx context.Context) {
	if _, err := s.runner.Regenerate(ctx); err != nil {
		s.logger.Error("regenerate leaderboard", "error", err)
		if err := s.runner.Invalidate(ctx); err != nil {
			s.logger.Error("invalidate leaderboard", "error", err)
		}
	}
}

// decode reads a JSON body into v. Numbers are kept as json.Number so phone
// numbers survive untouched. On failure it writes a 400 and returns false.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid data"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidContact:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidVoter:
		return http.StatusForbidden
	case errors.ErrCodeAlreadyVoted:
		return http.StatusConflict
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStorage, errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
