package models

import (
	"encoding/json"
	"time"
)

// Pricing describes how a service offering is priced.
type Pricing struct {
	StartingPrice float64 `json:"startingPrice"`
	PricingType   string  `json:"pricingType"` // fixed, hourly, project, custom
	Currency      string  `json:"currency"`
}

// Service represents a service offering shown on the marketing site.
type Service struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`
	Technologies     []string `json:"technologies"`
	Pricing          Pricing  `json:"pricing"`
	IsActive         bool     `json:"isActive"`
	Order            int      `json:"order"`

	// Stored as JSON text columns
	FeaturesJSON     string `json:"-"`
	TechnologiesJSON string `json:"-"`
	PricingJSON      string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrepareForSave marshals the slice and struct fields into their JSON string form.
func (s *Service) PrepareForSave() {
	s.FeaturesJSON = marshalOrEmpty(s.Features)
	s.TechnologiesJSON = marshalOrEmpty(s.Technologies)
	s.PricingJSON = marshalOrEmpty(s.Pricing)
}

// PrepareForAPI unmarshals the JSON string columns for API responses.
func (s *Service) PrepareForAPI() {
	unmarshalInto(s.FeaturesJSON, &s.Features)
	unmarshalInto(s.TechnologiesJSON, &s.Technologies)
	unmarshalInto(s.PricingJSON, &s.Pricing)
	if s.Features == nil {
		s.Features = []string{}
	}
	if s.Technologies == nil {
		s.Technologies = []string{}
	}
}

func marshalOrEmpty(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func unmarshalInto(s string, v interface{}) {
	if s == "" {
		return
	}
	_ = json.Unmarshal([]byte(s), v)
}
