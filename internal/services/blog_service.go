package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// BlogServiceProvider defines the interface for blog services.
type BlogServiceProvider interface {
	GetPublishedBlogs(category, tag string, limit int) ([]models.Blog, error)
	GetPublishedBlogBySlug(slug string) (models.Blog, error)
	GetAllBlogs() ([]models.Blog, error)
	CreateBlog(b models.Blog) (models.Blog, error)
	UpdateBlog(id string, b models.Blog) (models.Blog, error)
	DeleteBlog(id string) error
}

// BlogService provides business logic for blog posts.
type BlogService struct {
	db *sql.DB
}

// NewBlogService creates a new BlogService.
func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{db: db}
}

// Blog rows are always joined with the author's name.
const blogColumns = `b.id, b.title, b.slug, b.excerpt, b.content, b.category, b.tags_json,
	b.cover_image, b.author_id, COALESCE(u.name, ''), b.is_published, b.published_at,
	b.views, b.created_at, b.updated_at`

const blogFrom = " FROM blogs b LEFT JOIN users u ON u.id = b.author_id"

func scanBlog(scanner interface{ Scan(...interface{}) error }) (models.Blog, error) {
	var b models.Blog
	var tags sql.NullString
	var authorID sql.NullString
	var publishedAt sql.NullTime
	var published int

	err := scanner.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.Category, &tags,
		&b.CoverImage, &authorID, &b.AuthorName, &published, &publishedAt,
		&b.Views, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}

	b.TagsJSON = tags.String
	b.AuthorID = authorID.String
	b.IsPublished = published != 0
	if publishedAt.Valid {
		t := publishedAt.Time
		b.PublishedAt = &t
	}

	b.PrepareForAPI()
	return b, nil
}

func (s *BlogService) queryBlogs(query string, args ...interface{}) ([]models.Blog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// GetPublishedBlogs retrieves published posts, newest first, optionally
// filtered by category or tag and capped at limit.
func (s *BlogService) GetPublishedBlogs(category, tag string, limit int) ([]models.Blog, error) {
	query := "SELECT " + blogColumns + blogFrom + " WHERE b.is_published = 1"
	var args []interface{}
	if category != "" {
		query += " AND b.category = ?"
		args = append(args, category)
	}
	if tag != "" {
		// Tags live in a JSON array column; match the quoted element.
		query += " AND b.tags_json LIKE ?"
		args = append(args, `%"`+tag+`"%`)
	}
	query += " ORDER BY b.published_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryBlogs(query, args...)
}

// GetPublishedBlogBySlug retrieves a published post by slug and increments
// its view counter.
func (s *BlogService) GetPublishedBlogBySlug(slug string) (models.Blog, error) {
	row := s.db.QueryRow("SELECT "+blogColumns+blogFrom+" WHERE b.slug = ? AND b.is_published = 1", strings.ToLower(slug))
	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blog{}, ErrNotFound
		}
		return models.Blog{}, err
	}

	if _, err := s.db.Exec("UPDATE blogs SET views = views + 1 WHERE id = ?", b.ID); err != nil {
		return models.Blog{}, err
	}
	b.Views++
	return b, nil
}

// GetAllBlogs retrieves every post, drafts included, for the admin panel.
func (s *BlogService) GetAllBlogs() ([]models.Blog, error) {
	return s.queryBlogs("SELECT " + blogColumns + blogFrom + " ORDER BY b.created_at DESC")
}

// GetBlogByID retrieves a single post regardless of publication state.
func (s *BlogService) GetBlogByID(id string) (models.Blog, error) {
	row := s.db.QueryRow("SELECT "+blogColumns+blogFrom+" WHERE b.id = ?", id)
	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blog{}, ErrNotFound
		}
		return models.Blog{}, err
	}
	return b, nil
}

// CreateBlog adds a new post. When created already published without an
// explicit publish date, the date is set to now.
func (s *BlogService) CreateBlog(b models.Blog) (models.Blog, error) {
	b.ID = uuid.New().String()
	b.Slug = strings.ToLower(b.Slug)
	if b.IsPublished && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	}
	b.PrepareForSave()

	// author_id references users(id); an absent author must be NULL, not "".
	var authorID interface{}
	if b.AuthorID != "" {
		authorID = b.AuthorID
	}

	_, err := s.db.Exec(`
		INSERT INTO blogs(id, title, slug, excerpt, content, category, tags_json,
			cover_image, author_id, is_published, published_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.Category, b.TagsJSON,
		b.CoverImage, authorID, boolToInt(b.IsPublished), b.PublishedAt,
	)
	if err != nil {
		return models.Blog{}, err
	}
	return s.GetBlogByID(b.ID)
}

// UpdateBlog updates an existing post. The publish date is stamped when a
// draft transitions to published for the first time.
func (s *BlogService) UpdateBlog(id string, b models.Blog) (models.Blog, error) {
	existing, err := s.GetBlogByID(id)
	if err != nil {
		return models.Blog{}, err
	}

	if b.IsPublished && !existing.IsPublished && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	} else if b.PublishedAt == nil {
		b.PublishedAt = existing.PublishedAt
	}

	b.Slug = strings.ToLower(b.Slug)
	b.PrepareForSave()

	_, err = s.db.Exec(`
		UPDATE blogs SET title = ?, slug = ?, excerpt = ?, content = ?, category = ?,
			tags_json = ?, cover_image = ?, is_published = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Slug, b.Excerpt, b.Content, b.Category,
		b.TagsJSON, b.CoverImage, boolToInt(b.IsPublished), b.PublishedAt, time.Now().UTC(), id,
	)
	if err != nil {
		return models.Blog{}, err
	}
	return s.GetBlogByID(id)
}

// DeleteBlog removes a post.
func (s *BlogService) DeleteBlog(id string) error {
	res, err := s.db.Exec("DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
