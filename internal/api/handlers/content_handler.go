package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ContentHandler handles HTTP requests for the singleton site content.
type ContentHandler struct {
	content services.ContentServiceProvider
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content services.ContentServiceProvider) *ContentHandler {
	return &ContentHandler{content: content}
}

// Get returns the site content for the public site.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.content.GetContent()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get site content")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, c)
}

// Save upserts the site content document.
func (h *ContentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var c models.Content
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.content.SaveContent(c)
	if err != nil {
		log.Error().Err(err).Msg("Failed to save site content")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusOK, saved, "Content updated successfully")
}
