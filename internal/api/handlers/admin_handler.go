package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
)

// AdminHandler handles the moderator-only content management routes.
type AdminHandler struct {
	service services.ContentServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.ContentServiceProvider) *AdminHandler {
	return &AdminHandler{service: service}
}

// Data returns the full dashboard payload: events, jobs, news and users.
func (h *AdminHandler) Data(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.AdminData(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch admin data")
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Delete removes a content record by plural type and id.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := services.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown content type")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), kind, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		log.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Delete failed")
		writeError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// CreateEvent stores a new event.
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.Event
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Event creation failed")
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

// UpdateEvent merge-patches an existing event.
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch models.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	event, err := h.service.UpdateEvent(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Event update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

// CreateJob stores a new job posting.
func (h *AdminHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in models.Job
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.service.CreateJob(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("Job creation failed")
		writeError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// UpdateJob merge-patches an existing job posting.
func (h *AdminHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	job, err := h.service.UpdateJob(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Job update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// CreateNews stores a new article.
func (h *AdminHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var in models.NewsArticle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := h.service.CreateNews(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("News creation failed")
		writeError(w, http.StatusInternalServerError, "Failed to create news article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}

// UpdateNews merge-patches an existing article.
func (h *AdminHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var patch models.NewsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	article, err := h.service.UpdateNews(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "News article not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("News update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update news article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}
