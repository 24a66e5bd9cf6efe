package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// ProjectServiceProvider defines the interface for project services.
type ProjectServiceProvider interface {
	GetActiveProjects(category string, featuredOnly bool) ([]models.Project, error)
	GetProjectBySlug(slug string) (models.Project, error)
	GetAllProjects() ([]models.Project, error)
	CreateProject(p models.Project) (models.Project, error)
	UpdateProject(id string, p models.Project) (models.Project, error)
	DeleteProject(id string) error
}

// ProjectService provides business logic for portfolio projects.
type ProjectService struct {
	db *sql.DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *sql.DB) *ProjectService {
	return &ProjectService{db: db}
}

const projectColumns = `id, title, slug, short_description, description, category, thumbnail,
	images_json, technologies_json, features_json, client, completed_date,
	project_url, github_url, is_featured, is_active, sort_order, created_at, updated_at`

func scanProject(scanner interface{ Scan(...interface{}) error }) (models.Project, error) {
	var p models.Project
	var images, technologies, features sql.NullString
	var completed sql.NullTime
	var featured, active int

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.ShortDescription, &p.Description, &p.Category, &p.Thumbnail,
		&images, &technologies, &features, &p.Client, &completed,
		&p.ProjectURL, &p.GithubURL, &featured, &active, &p.Order, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	p.ImagesJSON = images.String
	p.TechnologiesJSON = technologies.String
	p.FeaturesJSON = features.String
	p.IsFeatured = featured != 0
	p.IsActive = active != 0
	if completed.Valid {
		t := completed.Time
		p.CompletedDate = &t
	}

	p.PrepareForAPI()
	return p, nil
}

func (s *ProjectService) queryProjects(query string, args ...interface{}) ([]models.Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetActiveProjects retrieves active projects, optionally filtered by
// category and featured flag.
func (s *ProjectService) GetActiveProjects(category string, featuredOnly bool) ([]models.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE is_active = 1"
	var args []interface{}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	if featuredOnly {
		query += " AND is_featured = 1"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"
	return s.queryProjects(query, args...)
}

// GetProjectBySlug retrieves a single active project by slug.
func (s *ProjectService) GetProjectBySlug(slug string) (models.Project, error) {
	row := s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE slug = ? AND is_active = 1", strings.ToLower(slug))
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetAllProjects retrieves every project for the admin panel.
func (s *ProjectService) GetAllProjects() ([]models.Project, error) {
	return s.queryProjects("SELECT " + projectColumns + " FROM projects ORDER BY sort_order ASC, created_at DESC")
}

// GetProjectByID retrieves a single project regardless of its active flag.
func (s *ProjectService) GetProjectByID(id string) (models.Project, error) {
	row := s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// CreateProject adds a new project.
func (s *ProjectService) CreateProject(p models.Project) (models.Project, error) {
	if !models.ValidCategory(p.Category) {
		return models.Project{}, fmt.Errorf("invalid project category %q", p.Category)
	}
	p.ID = uuid.New().String()
	p.Slug = strings.ToLower(p.Slug)
	p.PrepareForSave()

	_, err := s.db.Exec(`
		INSERT INTO projects(id, title, slug, short_description, description, category, thumbnail,
			images_json, technologies_json, features_json, client, completed_date,
			project_url, github_url, is_featured, is_active, sort_order)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.ShortDescription, p.Description, p.Category, p.Thumbnail,
		p.ImagesJSON, p.TechnologiesJSON, p.FeaturesJSON, p.Client, p.CompletedDate,
		p.ProjectURL, p.GithubURL, boolToInt(p.IsFeatured), boolToInt(p.IsActive), p.Order,
	)
	if err != nil {
		return models.Project{}, err
	}
	return s.GetProjectByID(p.ID)
}

// UpdateProject updates an existing project.
func (s *ProjectService) UpdateProject(id string, p models.Project) (models.Project, error) {
	if !models.ValidCategory(p.Category) {
		return models.Project{}, fmt.Errorf("invalid project category %q", p.Category)
	}
	p.Slug = strings.ToLower(p.Slug)
	p.PrepareForSave()

	res, err := s.db.Exec(`
		UPDATE projects SET title = ?, slug = ?, short_description = ?, description = ?,
			category = ?, thumbnail = ?, images_json = ?, technologies_json = ?, features_json = ?,
			client = ?, completed_date = ?, project_url = ?, github_url = ?,
			is_featured = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.ShortDescription, p.Description,
		p.Category, p.Thumbnail, p.ImagesJSON, p.TechnologiesJSON, p.FeaturesJSON,
		p.Client, p.CompletedDate, p.ProjectURL, p.GithubURL,
		boolToInt(p.IsFeatured), boolToInt(p.IsActive), p.Order, time.Now().UTC(), id,
	)
	if err != nil {
		return models.Project{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Project{}, ErrNotFound
	}
	return s.GetProjectByID(id)
}

// DeleteProject removes a project.
func (s *ProjectService) DeleteProject(id string) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
