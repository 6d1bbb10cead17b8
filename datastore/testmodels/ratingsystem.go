package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/dorm/mapping"
)

type RatingSystem struct {

	// Unique identifier for the rating system, chosen by the caller.
	ID string `json:"Id"`

	// Name of the rating system.
	Name string `json:"Name"`

	// A description of the rating system.
	Description string `json:"Description"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty"`

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"CreatedAt"`

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"UpdatedAt"`
}

// RatingSystemMap maps RatingSystem to the "rating_system" table. The key
// is caller supplied and the timestamps need the datetime field type.
func RatingSystemMap() *mapping.EntityMap[RatingSystem] {
	m := mapping.New[RatingSystem]("rating_system")
	m.ID("id", mapping.Ref(func(r *RatingSystem) *string { return &r.ID }))
	m.Field("name", mapping.Ref(func(r *RatingSystem) *string { return &r.Name }))
	m.Field("description", mapping.Ref(func(r *RatingSystem) *string { return &r.Description }))
	m.Field("site_url", mapping.Ref(func(r *RatingSystem) *string { return &r.SiteURL }))
	m.Field("created_at", mapping.Ref(func(r *RatingSystem) *strfmt.DateTime { return &r.CreatedAt }))
	m.Field("updated_at", mapping.Ref(func(r *RatingSystem) *strfmt.DateTime { return &r.UpdatedAt }))
	return m
}
