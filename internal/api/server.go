// Package api exposes the progression engine over a local HTTP API so
// dashboards and scripts can read the same state as the CLI.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"habitquest/internal/engine"
)

// Server is the habitquest HTTP API server.
type Server struct {
	svc     *engine.Service
	log     *slog.Logger
	timeout time.Duration
}

func NewServer(svc *engine.Service, log *slog.Logger, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{svc: svc, log: log, timeout: timeout}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "0.1.0"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/habits", s.handleListHabits)
		r.Post("/habits", s.handleCreateHabit)
		r.Get("/habits/{id}", s.handleGetHabit)
		r.Delete("/habits/{id}", s.handleDeleteHabit)
		r.Post("/habits/{id}/checkin", s.handleCheckin)
		r.Delete("/habits/{id}/checkin/{date}", s.handleClearCheckin)
		r.Post("/habits/{id}/dungeon", s.handleDungeon)

		r.Get("/today", s.handleToday)

		r.Get("/quests", s.handleQuests)
		r.Post("/quests/refresh", s.handleRefreshQuests)
		r.Post("/quests/{id}/complete", s.handleCompleteQuest)

		r.Get("/profile", s.handleProfile)
		r.Get("/stats", s.handleStats)
		r.Get("/achievements", s.handleAchievements)

		r.Get("/inventory", s.handleInventory)
		r.Post("/items/{id}/equip", s.handleEquip)
		r.Post("/items/{id}/unequip", s.handleUnequip)

		r.Get("/ledger", s.handleLedger)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}
