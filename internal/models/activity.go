package models

import (
	"time"
)

// Activity event types recorded for the admin feed.
const (
	ActivityUserUpdated    = "USER_UPDATED"
	ActivityListingCreated = "LISTING_CREATED"
	ActivityListingUpdated = "LISTING_UPDATED"
	ActivityListingDeleted = "LISTING_DELETED"
	ActivityReportCreated  = "REPORT_CREATED"
	ActivityReportResolved = "REPORT_RESOLVED"
)

// Activity is a single entry in the admin activity feed. Metadata is an
// optional JSON blob of event-specific identifiers.
type Activity struct {
	ID          string
	Type        string
	Description string
	Metadata    string
	CreatedAt   time.Time
}
