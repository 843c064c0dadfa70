package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleMe echoes the authenticated user, letting clients resolve their
// identity from an API key alone.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	defs, err := s.store.ListExercises(r.Context())
	if err != nil {
		s.log.Error("list exercises failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	def, err := s.store.GetExercise(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	if u == nil || !u.Role.CanCreateExercises() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "trusted user role required"})
		return
	}

	var def models.ExerciseDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if def.Name == "" || !def.ExerciseType.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and valid exerciseType are required"})
		return
	}
	def.CreatedBy = u.ID

	created, err := s.store.InsertExercise(r.Context(), def)
	if err != nil {
		s.log.Error("create exercise failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSaveCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	var req models.WorkoutSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !s.authorizeUser(w, r, req.UserID) {
		return
	}
	if len(req.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout has no exercises"})
		return
	}

	workout, err := s.store.SaveCompleteWorkout(r.Context(), req)
	if err != nil {
		s.log.Error("save workout failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	workouts, err := s.store.QueryUserWorkouts(r.Context(), userID)
	if err != nil {
		s.log.Error("list workouts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}
	u, _ := UserFromContext(r.Context())
	workout, err := s.store.GetWorkout(r.Context(), workoutID, u.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleLastPerformance(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := strconv.ParseInt(chi.URLParam(r, "exerciseId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId parameter required"})
		return
	}
	if !s.authorizeUser(w, r, userID) {
		return
	}

	snap, err := s.store.LastPerformance(r.Context(), exerciseID, userID)
	if err != nil {
		s.log.Error("last performance failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if snap == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no performance history"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// pathUserID parses the {userId} path param and enforces that the caller may
// act for that user.
func (s *Server) pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return 0, false
	}
	if !s.authorizeUser(w, r, userID) {
		return 0, false
	}
	return userID, true
}

// authorizeUser enforces that the authenticated account is the given user or
// an admin. Writes the error response on failure.
func (s *Server) authorizeUser(w http.ResponseWriter, r *http.Request, userID int64) bool {
	u, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return false
	}
	if u.ID != userID && u.Role != models.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not your data"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
