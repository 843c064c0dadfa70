package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "template name is required"})
		return
	}
	if !s.authorizeUser(w, r, req.UserID) {
		return
	}

	tmpl, err := s.store.CreateTemplate(r.Context(), req)
	if err != nil {
		s.log.Error("create template failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	templates, err := s.store.ListUserTemplates(r.Context(), userID)
	if err != nil {
		s.log.Error("list templates failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}
	u, _ := UserFromContext(r.Context())
	tmpl, err := s.store.GetTemplate(r.Context(), templateID, u.ID)
	if err != nil {
		s.log.Error("get template failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tmpl == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}
	var req models.TemplateSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "template name is required"})
		return
	}
	if !s.authorizeUser(w, r, req.UserID) {
		return
	}

	tmpl, err := s.store.UpdateTemplate(r.Context(), templateID, req)
	if err != nil {
		s.log.Error("update template failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tmpl == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}
	u, _ := UserFromContext(r.Context())
	deleted, err := s.store.DeleteTemplate(r.Context(), templateID, u.ID)
	if err != nil {
		s.log.Error("delete template failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
