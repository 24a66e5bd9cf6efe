package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/ekaraslan/portfolio-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ContactHandler handles HTTP requests for contact form submissions.
type ContactHandler struct {
	contacts services.ContactServiceProvider
	events   services.EventServiceProvider
	hub      *websocket.Hub
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts services.ContactServiceProvider, events services.EventServiceProvider, hub *websocket.Hub) *ContactHandler {
	return &ContactHandler{contacts: contacts, events: events, hub: hub}
}

// Create stores a public contact form submission and notifies the admin feed.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		respondError(w, http.StatusBadRequest, "Name, email, subject and message are required")
		return
	}
	c.IPAddress = middleware.RealIP(r)

	created, err := h.contacts.CreateContact(c)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store contact submission")
		respondError(w, http.StatusInternalServerError, "Failed to send message. Please try again.")
		return
	}

	event, err := h.events.LogEvent(models.EventContactNew, "info",
		"New contact message: "+created.Subject, created.Email, created.IPAddress)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write contact audit event")
	} else if h.hub != nil {
		h.hub.BroadcastEvent(event)
	}

	respondMessage(w, http.StatusCreated, "Your message has been sent successfully. We will contact you soon!")
}

// List returns submissions for the admin panel, filtered by ?status=.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.contacts.GetContacts(r.URL.Query().Get("status"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list contacts")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Get returns a single submission, marking new ones as read.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.contacts.GetContactByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Contact not found")
			return
		}
		log.Error().Err(err).Str("contact_id", id).Msg("Failed to get contact")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, c)
}

// UpdateContactPayload carries the mutable fields of a submission.
type UpdateContactPayload struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Update sets status and/or notes on a submission.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload UpdateContactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Status != "" && !models.ValidContactStatus(payload.Status) {
		respondError(w, http.StatusBadRequest, "Invalid contact status")
		return
	}

	notes := ""
	if payload.Notes != nil {
		notes = *payload.Notes
	}

	updated, err := h.contacts.UpdateContact(id, payload.Status, notes, payload.Notes != nil)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Contact not found")
			return
		}
		log.Error().Err(err).Str("contact_id", id).Msg("Failed to update contact")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusOK, updated, "Contact updated successfully")
}

// Delete removes a submission.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.contacts.DeleteContact(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Contact not found")
			return
		}
		log.Error().Err(err).Str("contact_id", id).Msg("Failed to delete contact")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Contact deleted successfully")
}
