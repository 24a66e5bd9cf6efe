package models

import "time"

// Hero is the landing section of the public site.
type Hero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	CTA         string `json:"cta"`
	Image       string `json:"image"`
}

// About holds the about section and headline numbers.
type About struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	ProjectsCompleted int    `json:"projectsCompleted"`
	HappyClients      int    `json:"happyClients"`
}

// ContactInfo holds the public contact details.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Social holds social profile links.
type Social struct {
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// SEO holds the site-wide SEO metadata.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Content is the singleton site content document. Each section is stored as a
// JSON text column in a single-row table.
type Content struct {
	Hero    Hero        `json:"hero"`
	About   About       `json:"about"`
	Skills  []string    `json:"skills"`
	Contact ContactInfo `json:"contact"`
	Social  Social      `json:"social"`
	SEO     SEO         `json:"seo"`

	HeroJSON    string `json:"-"`
	AboutJSON   string `json:"-"`
	SkillsJSON  string `json:"-"`
	ContactJSON string `json:"-"`
	SocialJSON  string `json:"-"`
	SEOJSON     string `json:"-"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// PrepareForSave marshals every section into its JSON string form.
func (c *Content) PrepareForSave() {
	c.HeroJSON = marshalOrEmpty(c.Hero)
	c.AboutJSON = marshalOrEmpty(c.About)
	c.SkillsJSON = marshalOrEmpty(c.Skills)
	c.ContactJSON = marshalOrEmpty(c.Contact)
	c.SocialJSON = marshalOrEmpty(c.Social)
	c.SEOJSON = marshalOrEmpty(c.SEO)
}

// PrepareForAPI unmarshals the JSON string columns for API responses.
func (c *Content) PrepareForAPI() {
	unmarshalInto(c.HeroJSON, &c.Hero)
	unmarshalInto(c.AboutJSON, &c.About)
	unmarshalInto(c.SkillsJSON, &c.Skills)
	unmarshalInto(c.ContactJSON, &c.Contact)
	unmarshalInto(c.SocialJSON, &c.Social)
	unmarshalInto(c.SEOJSON, &c.SEO)
	if c.Skills == nil {
		c.Skills = []string{}
	}
}
