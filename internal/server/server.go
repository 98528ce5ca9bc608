// Package server exposes the dashboard API over stored cleaning runs.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"listlens/internal/model"
	"listlens/internal/report"
	"listlens/internal/store/runstore"
)

// Server serves run history and derived dashboard documents.
type Server struct {
	db      *runstore.DB
	log     zerolog.Logger
	listID  string
	baseURL string
}

func New(db *runstore.DB, log zerolog.Logger, listID, baseURL string) *Server {
	return &Server{db: db, log: log, listID: listID, baseURL: baseURL}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/latest", s.handleLatest)
		r.Get("/runs/latest/analysis", s.handleAnalysis)
		r.Get("/runs/latest/newsletter", s.handleNewsletter)
	})
	return r
}

// ListenAndServe blocks serving the router on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("dashboard api listening")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.db.List(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []runstore.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	run, err := s.db.Latest(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(run.Payload)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	data, err := s.latestData(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	listURL := s.baseURL + "/i/lists/" + s.listID
	s.writeJSON(w, http.StatusOK, report.BuildListAnalysis(data, listURL, s.listID, time.Now()))
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	data, err := s.latestData(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.BuildNewsletter(data))
}

func (s *Server) latestData(r *http.Request) (model.CleanedData, error) {
	run, err := s.db.Latest(r.Context())
	if err != nil {
		return model.CleanedData{}, err
	}
	var data model.CleanedData
	if err := json.Unmarshal(run.Payload, &data); err != nil {
		return model.CleanedData{}, err
	}
	return data, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, runstore.ErrNoRuns) {
		status = http.StatusNotFound
	}
	s.log.Error().Err(err).Msg("request failed")
	http.Error(w, err.Error(), status)
}
