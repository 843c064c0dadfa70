package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	prefs, err := s.store.GetPreferences(r.Context(), userID)
	if err != nil {
		s.log.Error("get preferences failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	prefs.UserID = userID
	if prefs.DefaultRestTime <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "defaultRestTime must be positive"})
		return
	}

	if err := s.store.UpsertPreferences(r.Context(), prefs); err != nil {
		s.log.Error("put preferences failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleCreateWeightMeasurement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID     int64      `json:"userId"`
		WeightKg   float64    `json:"weightKg"`
		MeasuredAt *time.Time `json:"measuredAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.WeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weightKg must be positive"})
		return
	}
	if !s.authorizeUser(w, r, body.UserID) {
		return
	}
	measuredAt := time.Now()
	if body.MeasuredAt != nil {
		measuredAt = *body.MeasuredAt
	}

	m, err := s.store.InsertWeightMeasurement(r.Context(), body.UserID, body.WeightKg, measuredAt)
	if err != nil {
		s.log.Error("create weight measurement failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListWeightMeasurements(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	measurements, err := s.store.ListWeightMeasurements(r.Context(), userID)
	if err != nil {
		s.log.Error("list weight measurements failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, measurements)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.log.Error("list users failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}
	var body struct {
		Role models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !body.Role.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown role"})
		return
	}

	updated, err := s.store.UpdateUserRole(r.Context(), userID, body.Role)
	if err != nil {
		s.log.Error("update role failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
