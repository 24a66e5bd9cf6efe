package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	projects services.ProjectServiceProvider
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects services.ProjectServiceProvider) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns active projects, optionally filtered by ?category= and
// ?featured=true.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	featured := r.URL.Query().Get("featured") == "true"

	items, err := h.projects.GetActiveProjects(category, featured)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// GetBySlug returns a single active project.
func (h *ProjectHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := h.projects.GetProjectBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to get project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, p)
}

// AdminList returns every project for the admin panel.
func (h *ProjectHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.GetAllProjects()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects for admin")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Create adds a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Title == "" || p.Slug == "" || p.Category == "" {
		respondError(w, http.StatusBadRequest, "Title, slug and category are required")
		return
	}

	created, err := h.projects.CreateProject(p)
	if err != nil {
		if strings.Contains(err.Error(), "invalid project category") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("slug", p.Slug).Msg("Failed to create project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusCreated, created, "Project created successfully")
}

// Update modifies an existing project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.projects.UpdateProject(id, p)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Project not found")
		case strings.Contains(err.Error(), "invalid project category"):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("project_id", id).Msg("Failed to update project")
			respondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	respondDataMessage(w, http.StatusOK, updated, "Project updated successfully")
}

// Delete removes a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.projects.DeleteProject(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Error().Err(err).Str("project_id", id).Msg("Failed to delete project")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Project deleted successfully")
}
