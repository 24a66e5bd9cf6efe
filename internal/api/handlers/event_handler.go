package handlers

import (
	"net/http"
	"strconv"

	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler exposes the audit log to the admin panel.
type EventHandler struct {
	events services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventServiceProvider) *EventHandler {
	return &EventHandler{events: events}
}

// Recent returns the newest audit events, capped by ?limit= (default 50).
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.events.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, events)
}
