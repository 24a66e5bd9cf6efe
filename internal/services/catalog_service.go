package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// CatalogServiceProvider defines the interface for service-offering management.
type CatalogServiceProvider interface {
	GetActiveServices() ([]models.Service, error)
	GetServiceBySlug(slug string) (models.Service, error)
	GetAllServices() ([]models.Service, error)
	CreateService(svc models.Service) (models.Service, error)
	UpdateService(id string, svc models.Service) (models.Service, error)
	DeleteService(id string) error
}

// CatalogService provides business logic for the service offerings shown on
// the marketing site.
type CatalogService struct {
	db *sql.DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db}
}

const serviceColumns = `id, title, slug, short_description, description, icon, image,
	features_json, technologies_json, pricing_json, is_active, sort_order, created_at, updated_at`

func scanService(scanner interface{ Scan(...interface{}) error }) (models.Service, error) {
	var svc models.Service
	var features, technologies, pricing sql.NullString
	var active int

	err := scanner.Scan(
		&svc.ID, &svc.Title, &svc.Slug, &svc.ShortDescription, &svc.Description,
		&svc.Icon, &svc.Image, &features, &technologies, &pricing,
		&active, &svc.Order, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		return svc, err
	}

	svc.FeaturesJSON = features.String
	svc.TechnologiesJSON = technologies.String
	svc.PricingJSON = pricing.String
	svc.IsActive = active != 0

	svc.PrepareForAPI()
	return svc, nil
}

func (s *CatalogService) queryServices(query string, args ...interface{}) ([]models.Service, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// GetActiveServices retrieves all active services in display order.
func (s *CatalogService) GetActiveServices() ([]models.Service, error) {
	return s.queryServices("SELECT " + serviceColumns + " FROM services WHERE is_active = 1 ORDER BY sort_order ASC, created_at DESC")
}

// GetServiceBySlug retrieves a single active service by slug.
func (s *CatalogService) GetServiceBySlug(slug string) (models.Service, error) {
	row := s.db.QueryRow("SELECT "+serviceColumns+" FROM services WHERE slug = ? AND is_active = 1", strings.ToLower(slug))
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, err
	}
	return svc, nil
}

// GetAllServices retrieves every service, active or not, for the admin panel.
func (s *CatalogService) GetAllServices() ([]models.Service, error) {
	return s.queryServices("SELECT " + serviceColumns + " FROM services ORDER BY sort_order ASC, created_at DESC")
}

// GetServiceByID retrieves a single service regardless of its active flag.
func (s *CatalogService) GetServiceByID(id string) (models.Service, error) {
	row := s.db.QueryRow("SELECT "+serviceColumns+" FROM services WHERE id = ?", id)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, err
	}
	return svc, nil
}

// CreateService adds a new service offering.
func (s *CatalogService) CreateService(svc models.Service) (models.Service, error) {
	svc.ID = uuid.New().String()
	svc.Slug = strings.ToLower(svc.Slug)
	svc.PrepareForSave()

	_, err := s.db.Exec(`
		INSERT INTO services(id, title, slug, short_description, description, icon, image,
			features_json, technologies_json, pricing_json, is_active, sort_order)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		svc.ID, svc.Title, svc.Slug, svc.ShortDescription, svc.Description, svc.Icon, svc.Image,
		svc.FeaturesJSON, svc.TechnologiesJSON, svc.PricingJSON, boolToInt(svc.IsActive), svc.Order,
	)
	if err != nil {
		return models.Service{}, err
	}
	return s.GetServiceByID(svc.ID)
}

// UpdateService updates an existing service offering.
func (s *CatalogService) UpdateService(id string, svc models.Service) (models.Service, error) {
	svc.Slug = strings.ToLower(svc.Slug)
	svc.PrepareForSave()

	res, err := s.db.Exec(`
		UPDATE services SET title = ?, slug = ?, short_description = ?, description = ?,
			icon = ?, image = ?, features_json = ?, technologies_json = ?, pricing_json = ?,
			is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		svc.Title, svc.Slug, svc.ShortDescription, svc.Description, svc.Icon, svc.Image,
		svc.FeaturesJSON, svc.TechnologiesJSON, svc.PricingJSON, boolToInt(svc.IsActive), svc.Order,
		time.Now().UTC(), id,
	)
	if err != nil {
		return models.Service{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Service{}, ErrNotFound
	}
	return s.GetServiceByID(id)
}

// DeleteService removes a service offering.
func (s *CatalogService) DeleteService(id string) error {
	res, err := s.db.Exec("DELETE FROM services WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
