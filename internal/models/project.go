package models

import "time"

// ProjectCategories are the accepted values for Project.Category.
var ProjectCategories = []string{"web", "mobile", "desktop", "erp", "automation", "other"}

// ProjectImage is a gallery entry for a project.
type ProjectImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Project represents a portfolio entry.
type Project struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	ShortDescription string         `json:"shortDescription"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	Thumbnail        string         `json:"thumbnail"`
	Images           []ProjectImage `json:"images"`
	Technologies     []string       `json:"technologies"`
	Features         []string       `json:"features"`
	Client           string         `json:"client"`
	CompletedDate    *time.Time     `json:"completedDate,omitempty"`
	ProjectURL       string         `json:"projectUrl"`
	GithubURL        string         `json:"githubUrl"`
	IsFeatured       bool           `json:"isFeatured"`
	IsActive         bool           `json:"isActive"`
	Order            int            `json:"order"`

	ImagesJSON       string `json:"-"`
	TechnologiesJSON string `json:"-"`
	FeaturesJSON     string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidCategory reports whether c is an accepted project category.
func ValidCategory(c string) bool {
	for _, v := range ProjectCategories {
		if v == c {
			return true
		}
	}
	return false
}

// PrepareForSave marshals the slice fields into their JSON string form.
func (p *Project) PrepareForSave() {
	p.ImagesJSON = marshalOrEmpty(p.Images)
	p.TechnologiesJSON = marshalOrEmpty(p.Technologies)
	p.FeaturesJSON = marshalOrEmpty(p.Features)
}

// PrepareForAPI unmarshals the JSON string columns for API responses.
func (p *Project) PrepareForAPI() {
	unmarshalInto(p.ImagesJSON, &p.Images)
	unmarshalInto(p.TechnologiesJSON, &p.Technologies)
	unmarshalInto(p.FeaturesJSON, &p.Features)
	if p.Images == nil {
		p.Images = []ProjectImage{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
}
