// Package http exposes a running nbtest client over a JSON API.
// It lets remote harnesses execute cells, inject code, and read outputs
// without linking the library.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/internal/dto"
	"github.com/aretw0/nbtest/internal/logging"
	"github.com/aretw0/nbtest/pkg/domain"
	"github.com/aretw0/nbtest/pkg/ports"
)

// Server routes JSON requests to an nbtest.Client.
// The client is not safe for concurrent use, so mu serializes every handler
// that touches it or its document.
type Server struct {
	client  *nbtest.Client
	store   ports.SessionStore
	logger  *slog.Logger
	metrics *metrics

	mu sync.Mutex
}

// Option configures the server.
type Option func(*Server)

// WithSessionStore enables the /sessions endpoints.
func WithSessionStore(store ports.SessionStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for a client.
func NewHandler(client *nbtest.Client, opts ...Option) http.Handler {
	s := &Server{
		client:  client,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": nbtest.Version})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Get("/cells", s.listCells)
	r.Post("/cells/{ref}/execute", s.executeCell)
	r.Get("/cells/{ref}/output", s.cellOutput)
	r.Post("/inject", s.inject)
	r.Get("/values/{name}", s.getValue)

	if s.store != nil {
		r.Get("/sessions", s.listSessions)
		r.Post("/sessions/{id}", s.saveSession)
		r.Get("/sessions/{id}", s.loadSession)
		r.Delete("/sessions/{id}", s.deleteSession)
	}

	return r
}

// CellSummary is the wire representation of one cell in listings.
type CellSummary struct {
	Index          int      `json:"index"`
	Type           string   `json:"type"`
	Name           string   `json:"name,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Source         string   `json:"source"`
	ExecutionCount *int     `json:"execution_count,omitempty"`
}

func (s *Server) listCells(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb := s.client.Notebook()
	summaries := make([]CellSummary, nb.Len())
	for i, cell := range nb.Cells {
		meta, err := dto.Decode(cell.Metadata)
		if err != nil {
			s.logger.Warn("skipping malformed cell metadata", "index", i, "error", err)
		}
		summaries[i] = CellSummary{
			Index:          i,
			Type:           cell.Type,
			Name:           meta.Name,
			Tags:           meta.Tags,
			Source:         string(cell.Source),
			ExecutionCount: cell.ExecutionCount,
		}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) executeCell(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	start := time.Now()
	cell, err := s.client.ExecuteCell(r.Context(), ref)
	s.mu.Unlock()
	s.metrics.observeExecution(err, time.Since(start))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}

func (s *Server) cellOutput(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	text, err := s.client.OutputText(ref)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// InjectRequest is the body of POST /inject. Either Code or Function must be
// set; Args only apply to function injection. Prerun cells are executed
// first in either case.
type InjectRequest struct {
	Code     string `json:"code,omitempty"`
	Function *struct {
		Name   string `json:"name"`
		Source string `json:"source"`
	} `json:"function,omitempty"`
	Args   []any    `json:"args,omitempty"`
	Prerun []string `json:"prerun,omitempty"`
}

func (s *Server) inject(w http.ResponseWriter, r *http.Request) {
	var body InjectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if body.Function == nil && body.Code == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("either code or function is required"))
		return
	}

	prerun := make([]nbtest.Ref, len(body.Prerun))
	for i, raw := range body.Prerun {
		ref, err := parseRef(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		prerun[i] = ref
	}

	s.mu.Lock()
	start := time.Now()
	cell, err := s.doInject(r.Context(), body, prerun)
	s.mu.Unlock()
	s.metrics.observeExecution(err, time.Since(start))

	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}

// doInject executes the prerun cells and then dispatches to function or code
// injection. Callers hold s.mu.
func (s *Server) doInject(ctx context.Context, body InjectRequest, prerun []nbtest.Ref) (*domain.Cell, error) {
	if len(prerun) > 0 {
		if _, err := s.client.Execute(ctx, prerun...); err != nil {
			return nil, fmt.Errorf("prerun: %w", err)
		}
	}

	if body.Function != nil {
		return s.client.InjectFunc(ctx, nbtest.Def{
			Name:   body.Function.Name,
			Source: body.Function.Source,
		}, body.Args...)
	}
	return s.client.Inject(ctx, body.Code)
}

func (s *Server) getValue(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	value, err := s.client.Value(r.Context(), name)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "value": value})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Hold the lock while the store serializes the document, or a concurrent
	// inject could mutate it mid-snapshot.
	s.mu.Lock()
	err := s.store.Save(r.Context(), id, s.client.Notebook())
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session": id})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nb, err := s.store.Load(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nb)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseRef interprets a path segment as a cell index when numeric, otherwise
// as a cell tag.
func parseRef(raw string) (nbtest.Ref, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty cell reference")
	}
	if idx, err := strconv.Atoi(raw); err == nil {
		return nbtest.Index(idx), nil
	}
	return nbtest.Tag(raw), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTagNotFound), errors.Is(err, domain.ErrCellIndex), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoExecuteResult):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
