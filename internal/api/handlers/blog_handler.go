package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ekaraslan/portfolio-be/internal/auth"
	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BlogHandler handles HTTP requests for blog posts.
type BlogHandler struct {
	blogs services.BlogServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs services.BlogServiceProvider) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// List returns published posts, filtered by ?category=, ?tag= and ?limit=.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.blogs.GetPublishedBlogs(q.Get("category"), q.Get("tag"), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list blogs")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// GetBySlug returns a single published post and increments its view counter.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	b, err := h.blogs.GetPublishedBlogBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to get blog")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, b)
}

// AdminList returns every post, drafts included.
func (h *BlogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.blogs.GetAllBlogs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list blogs for admin")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Create adds a new post authored by the current user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var b models.Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if b.Title == "" || b.Slug == "" {
		respondError(w, http.StatusBadRequest, "Title and slug are required")
		return
	}
	b.AuthorID = user.ID

	created, err := h.blogs.CreateBlog(b)
	if err != nil {
		log.Error().Err(err).Str("slug", b.Slug).Msg("Failed to create blog")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusCreated, created, "Blog created successfully")
}

// Update modifies an existing post.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var b models.Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.blogs.UpdateBlog(id, b)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Error().Err(err).Str("blog_id", id).Msg("Failed to update blog")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondDataMessage(w, http.StatusOK, updated, "Blog updated successfully")
}

// Delete removes a post.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.blogs.DeleteBlog(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Error().Err(err).Str("blog_id", id).Msg("Failed to delete blog")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Blog deleted successfully")
}
