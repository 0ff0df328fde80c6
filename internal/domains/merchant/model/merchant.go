package model

import (
	"encoding/json"
)

// Merchant is the read-side projection of a merchants row. The JSON
// blob columns (location, rates, rating, social links) are relayed
// verbatim; the backend never interprets their contents.
type Merchant struct {
	Slug                string          `json:"slug" db:"slug"`
	Name                string          `json:"name" db:"name"`
	Description         *string         `json:"description,omitempty" db:"description"`
	About               *string         `json:"about,omitempty" db:"about"`
	Phone               *string         `json:"phone,omitempty" db:"phone"`
	Active              bool            `json:"active" db:"active"`
	Gender              *string         `json:"gender,omitempty" db:"gender"`
	Sexuality           *string         `json:"sexuality,omitempty" db:"sexuality"`
	Services            []string        `json:"services" db:"services"`
	Location            json.RawMessage `json:"location,omitempty" db:"location"`
	Rates               json.RawMessage `json:"rates,omitempty" db:"rates"`
	Rating              json.RawMessage `json:"rating,omitempty" db:"rating"`
	SocialMedia         json.RawMessage `json:"socialmedia,omitempty" db:"socialmedia"`
	ResolvedSocialLinks json.RawMessage `json:"resolvedsociallinks,omitempty" db:"resolvedsociallinks"`
	Images              []string        `json:"images" db:"images"`
	Thumbnails          []string        `json:"thumbnails" db:"thumbnails"`
	MainImage           *string         `json:"mainimage,omitempty" db:"mainimage"`
	VideoURL            *string         `json:"videourl,omitempty" db:"videourl"`
	LastActive          *string         `json:"last_active,omitempty" db:"last_active"`
}

// SlugLocation is the minimal projection used for sitemap generation.
type SlugLocation struct {
	Slug     string          `json:"slug"`
	Location json.RawMessage `json:"location"`
}

// CityArea extracts the city/area pair from the opaque location blob.
// Missing or malformed locations yield empty strings.
func (s SlugLocation) CityArea() (city, area string) {
	if len(s.Location) == 0 {
		return "", ""
	}
	var loc struct {
		City string `json:"city"`
		Area string `json:"area"`
	}
	if err := json.Unmarshal(s.Location, &loc); err != nil {
		return "", ""
	}
	return loc.City, loc.Area
}
