package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
)

// ContentServiceProvider defines the interface for site content services.
type ContentServiceProvider interface {
	GetContent() (models.Content, error)
	SaveContent(c models.Content) (models.Content, error)
}

// ContentService manages the singleton site content document.
type ContentService struct {
	db *sql.DB
}

// NewContentService creates a new ContentService.
func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{db: db}
}

// GetContent retrieves the site content. A missing row returns an empty
// document rather than an error, so a fresh install renders with defaults.
func (s *ContentService) GetContent() (models.Content, error) {
	var c models.Content
	var hero, about, skills, contact, social, seo sql.NullString

	row := s.db.QueryRow("SELECT hero_json, about_json, skills_json, contact_json, social_json, seo_json, updated_at FROM content WHERE id = 1")
	err := row.Scan(&hero, &about, &skills, &contact, &social, &seo, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.PrepareForAPI()
			return c, nil
		}
		return models.Content{}, err
	}

	c.HeroJSON = hero.String
	c.AboutJSON = about.String
	c.SkillsJSON = skills.String
	c.ContactJSON = contact.String
	c.SocialJSON = social.String
	c.SEOJSON = seo.String
	c.PrepareForAPI()
	return c, nil
}

// SaveContent upserts the singleton content row.
func (s *ContentService) SaveContent(c models.Content) (models.Content, error) {
	c.PrepareForSave()
	c.UpdatedAt = time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO content(id, hero_json, about_json, skills_json, contact_json, social_json, seo_json, updated_at)
		VALUES(1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hero_json = excluded.hero_json,
			about_json = excluded.about_json,
			skills_json = excluded.skills_json,
			contact_json = excluded.contact_json,
			social_json = excluded.social_json,
			seo_json = excluded.seo_json,
			updated_at = excluded.updated_at`,
		c.HeroJSON, c.AboutJSON, c.SkillsJSON, c.ContactJSON, c.SocialJSON, c.SEOJSON, c.UpdatedAt,
	)
	if err != nil {
		return models.Content{}, err
	}
	return s.GetContent()
}
