package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ServiceHandler handles HTTP requests for service offerings.
type ServiceHandler struct {
	catalog services.CatalogServiceProvider
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalog services.CatalogServiceProvider) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List returns all active services for the public site.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetActiveServices()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list services")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// GetBySlug returns a single active service.
func (h *ServiceHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	svc, err := h.catalog.GetServiceBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to get service")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, svc)
}

// AdminList returns every service, active or not.
func (h *ServiceHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.GetAllServices()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list services for admin")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Create adds a new service offering.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if svc.Title == "" || svc.Slug == "" {
		respondError(w, http.StatusBadRequest, "Title and slug are required")
		return
	}

	created, err := h.catalog.CreateService(svc)
	if err != nil {
		log.Error().Err(err).Str("slug", svc.Slug).Msg("Failed to create service")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusCreated, created, "Service created successfully")
}

// Update modifies an existing service offering.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.catalog.UpdateService(id, svc)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Error().Err(err).Str("service_id", id).Msg("Failed to update service")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusOK, updated, "Service updated successfully")
}

// Delete removes a service offering.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.catalog.DeleteService(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Error().Err(err).Str("service_id", id).Msg("Failed to delete service")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Service deleted successfully")
}
