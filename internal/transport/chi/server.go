// Package chi is the HTTP API layer: thin glue over the assistant service.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/assistant"
	"github.com/elijah-alonzo/ai-poc/internal/version"
)

// assistantService is the consumer interface for the orchestrator (ISP).
type assistantService interface {
	Ask(ctx context.Context, question string) (assistant.Response, error)
	ComposeArticle(ctx context.Context, topic assistant.Topic) (assistant.Response, error)
}

// Server serves the ask/article API.
type Server struct {
	assistant assistantService
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(svc assistantService, logger *zap.Logger) *Server {
	return &Server{assistant: svc, logger: logger}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/ask", s.handleAsk)
	r.Post("/api/article", s.handleArticle)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

type askRequest struct {
	Question string `json:"question"`
}

type articleRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Focus    string `json:"focus"`
	Audience string `json:"audience"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	resp, err := s.assistant.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeServiceError(w, err, "ask failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	topic := assistant.Topic{
		Name:     req.Name,
		Role:     req.Role,
		Focus:    req.Focus,
		Audience: req.Audience,
	}
	resp, err := s.assistant.ComposeArticle(r.Context(), topic)
	if err != nil {
		s.writeServiceError(w, err, "article failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// writeServiceError maps domain sentinels to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrSeedingFailed):
		s.logger.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	default:
		s.logger.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
