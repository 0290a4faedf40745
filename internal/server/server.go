// Package server exposes a running match to spectators: a read-only JSON
// API and a websocket feed of field events.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"skirmish/internal/fault"
	"skirmish/internal/match"
)

type Server struct {
	session  *match.Session
	hub      *match.Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(session *match.Session, hub *match.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		session: session,
		hub:     hub,
		log:     logger,
		upgrader: websocket.Upgrader{
			// Spectators may connect from any page.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/field", s.getField)
		r.Get("/field/render", s.getRender)
		r.Get("/units", s.listUnits)
		r.Get("/units/{id}", s.getUnit)
		r.Get("/terrain/{x}/{y}", s.getTerrain)
	})
	r.Get("/ws/events", s.streamEvents)
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fault.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fault.ErrInvalidArgument), errors.Is(err, fault.ErrOutOfBounds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
