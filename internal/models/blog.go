package models

import "time"

// Blog represents a blog post.
type Blog struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	CoverImage  string     `json:"coverImage"`
	AuthorID    string     `json:"authorId"`
	AuthorName  string     `json:"authorName"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int        `json:"views"`

	TagsJSON string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrepareForSave marshals the tag list into its JSON string form.
func (b *Blog) PrepareForSave() {
	b.TagsJSON = marshalOrEmpty(b.Tags)
}

// PrepareForAPI unmarshals the JSON string columns for API responses.
func (b *Blog) PrepareForAPI() {
	unmarshalInto(b.TagsJSON, &b.Tags)
	if b.Tags == nil {
		b.Tags = []string{}
	}
}
