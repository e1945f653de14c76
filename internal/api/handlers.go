package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"habitquest/internal/engine"
)

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.svc.ListHabits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": habits})
}

type createHabitRequest struct {
	Title            string `json:"title"`
	Identity         string `json:"identity"`
	ObviousCue       string `json:"obvious_cue"`
	AttractiveBundle string `json:"attractive_bundle"`
	EasyStep         string `json:"easy_step"`
	SatisfyingReward string `json:"satisfying_reward"`
	Schedule         string `json:"schedule"`
	Category         string `json:"category"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h, err := s.svc.CreateHabit(r.Context(), engine.CreateHabitInput{
		Title:            req.Title,
		Identity:         req.Identity,
		ObviousCue:       req.ObviousCue,
		AttractiveBundle: req.AttractiveBundle,
		EasyStep:         req.EasyStep,
		SatisfyingReward: req.SatisfyingReward,
		Schedule:         req.Schedule,
		Category:         req.Category,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h, err := s.svc.GetHabit(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteHabit(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkinRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD, empty means today
	Status string `json:"status"`
	Fast   bool   `json:"fast"`
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	day, err := resolveDate(req.Date, s.svc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := engine.CheckinStatus(req.Status)
	if req.Status == "" {
		status = engine.StatusDone
	}

	res, err := s.svc.CheckIn(r.Context(), id, day, status, req.Fast)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClearCheckin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	day, err := engine.ParseDateKey(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.ClearCheckin(r.Context(), id, day); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDungeon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := s.svc.DungeonRun(r.Context(), id, s.svc.Today())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.TodayBoard(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.DailyQuests(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRefreshQuests(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.RefreshQuests(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.CompleteQuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Status(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.Achievements(r.Context(), s.svc.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	owned, err := s.svc.Inventory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": owned})
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.svc.Equip(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.svc.Unequip(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	day := s.svc.Today()
	if q := r.URL.Query().Get("date"); q != "" {
		var err error
		day, err = engine.ParseDateKey(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	entries, err := s.svc.Ledger(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

func resolveDate(s string, svc *engine.Service) (time.Time, error) {
	if s == "" {
		return svc.Today(), nil
	}
	return engine.ParseDateKey(s)
}

// writeServiceError maps engine errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var nf engine.NotFoundError
	if errors.As(err, &nf) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
