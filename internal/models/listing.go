package models

import (
	"time"
)

// Listing status values. New listings default to AVAILABLE; moderation
// moves listings between ACTIVE, INACTIVE and PENDING.
const (
	ListingStatusAvailable = "AVAILABLE"
	ListingStatusActive    = "ACTIVE"
	ListingStatusInactive  = "INACTIVE"
	ListingStatusPending   = "PENDING"
)

const (
	DefaultPropertyType = "APARTMENT"
	DefaultLeaseType    = "LONG_TERM"
)

// ValidModerationStatus reports whether status is one a moderator may set.
func ValidModerationStatus(status string) bool {
	switch status {
	case ListingStatusActive, ListingStatusInactive, ListingStatusPending:
		return true
	}
	return false
}

// Listing is a rental property record. The Images, Amenities and
// BuildingAmenities slices are persisted as encoded text columns; the
// repository handles the round trip through pkg/listfield.
type Listing struct {
	ID                string
	Title             string
	Description       string
	Price             float64
	Location          string
	Bedrooms          int
	Bathrooms         int
	Size              int
	Images            []string
	Amenities         []string
	BuildingAmenities []string
	PropertyType      string
	LeaseType         string
	Status            string
	Featured          bool
	UserID            string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Owner is populated on reads that join the users table.
	Owner *UserSummary
}

// ListingSummary is the compact view returned by dashboard-style queries.
type ListingSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Location  string    `json:"location"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListingFilter narrows listing queries. Zero values mean "no filter".
type ListingFilter struct {
	Featured bool
	UserID   string
	Status   string
}

// ListingUpdate carries a partial update. Nil fields are left unchanged.
type ListingUpdate struct {
	Title             *string
	Description       *string
	Price             *float64
	Location          *string
	Bedrooms          *int
	Bathrooms         *int
	Size              *int
	PropertyType      *string
	LeaseType         *string
	Images            *[]string
	Amenities         *[]string
	BuildingAmenities *[]string
}
