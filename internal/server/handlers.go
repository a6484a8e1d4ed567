package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/tracker"
	"github.com/go-chi/chi/v5"
)

const defaultSessionLimit = 10

type meResponse struct {
	UserInfo
	User *models.User `json:"user,omitempty"`
}

type todayResponse struct {
	models.TodayView
	Message           string `json:"message"`
	HasRecentWorkouts bool   `json:"has_recent_workouts"`
}

type progressResponse struct {
	Stats     models.ProgressStats      `json:"stats"`
	Exercises []models.ExerciseProgress `json:"exercises"`
}

// tracker loads the caller's dataset and indexes it. On failure the error
// response has already been written.
func (s *Server) tracker(w http.ResponseWriter, r *http.Request) (*tracker.Tracker, bool) {
	userID := userIDFromContext(r)
	if userID == "" {
		userID = s.userID
	}
	ds, err := s.store.LoadDataset(r.Context(), userID)
	if err != nil {
		s.log.Error("load dataset", "user", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return tracker.New(ds, userID), true
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	resp := meResponse{UserInfo: userInfoFromContext(r)}
	if t, ok := s.tracker(w, r); !ok {
		return
	} else if u, found := t.CurrentUser(); found {
		resp.User = &u
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	ref, err := s.parseDate(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, todayResponse{
		TodayView:         t.Today(ref),
		Message:           tracker.MotivationalMessage(ref),
		HasRecentWorkouts: t.HasRecentWorkouts(),
	})
}

func (s *Server) handleActiveSplit(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	split, found := t.ActiveSplit()
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no split configured"})
		return
	}
	overview, _ := t.SplitOverview(split.ID)
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	overview, found := t.SplitOverview(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "split not found"})
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	sessions := t.RecentSessions(limit)
	if sessions == nil {
		sessions = []models.SessionWithDetails{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	details, found := t.SessionDetails(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ref, err := s.parseDate(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var muscles []models.MuscleGroup
	if v := r.URL.Query().Get("muscle"); v != "" {
		muscles = models.ParseMuscleGroups(v)
		if len(muscles) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + strconv.Quote(v)})
			return
		}
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}

	exercises := []models.ExerciseProgress{}
	for _, p := range t.AllExerciseProgress() {
		if len(muscles) > 0 && !targetsAny(t, p.ExerciseID, muscles) {
			continue
		}
		exercises = append(exercises, p)
	}
	writeJSON(w, http.StatusOK, progressResponse{Stats: t.ProgressStats(ref), Exercises: exercises})
}

func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, ok := s.tracker(w, r)
	if !ok {
		return
	}
	progress, found := t.ExerciseProgress(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// handleDataset exports the caller's base collections. Remote MCP clients
// build their tracker from it.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == "" {
		userID = s.userID
	}
	ds, err := s.store.LoadDataset(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, ok := s.store.(statsStore)
	if !ok {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "store does not report stats"})
		return
	}
	userID := userIDFromContext(r)
	if userID == "" {
		userID = s.userID
	}
	stats, err := st.GetDataStats(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func targetsAny(t *tracker.Tracker, exerciseID string, groups []models.MuscleGroup) bool {
	ex, ok := t.Exercise(exerciseID)
	if !ok {
		return false
	}
	for _, g := range groups {
		if ex.Targets(g) {
			return true
		}
	}
	return false
}

// pathID reads the {id} URL parameter. Ids are opaque, only an empty one is
// rejected.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return "", false
	}
	return id, true
}

// parseDate reads the optional date parameter as a calendar day in the
// server's timezone. Without it the current time is used.
func (s *Server) parseDate(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return s.now().In(s.loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return d, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
