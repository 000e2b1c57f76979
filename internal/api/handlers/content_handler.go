package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/services"
)

// ContentHandler serves the public read-only listings.
type ContentHandler struct {
	content services.ContentServiceProvider
	users   services.AuthServiceProvider
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content services.ContentServiceProvider, users services.AuthServiceProvider) *ContentHandler {
	return &ContentHandler{content: content, users: users}
}

// ListEvents returns all events.
func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.content.ListEvents(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch events")
		writeError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// ListJobs returns all job postings.
func (h *ContentHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.content.ListJobs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch jobs")
		writeError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// ListNews returns all news articles.
func (h *ContentHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.content.ListNews(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch news")
		writeError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"news": news})
}

// ListAlumni returns the directory of identities, credentials stripped.
func (h *ContentHandler) ListAlumni(w http.ResponseWriter, r *http.Request) {
	alumni, err := h.users.ListAlumni(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch alumni")
		writeError(w, http.StatusInternalServerError, "Failed to fetch alumni")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alumni": alumni})
}
