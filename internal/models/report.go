package models

import (
	"time"
)

// Report types and statuses. PENDING is the only non-terminal status;
// RESOLVED and REJECTED are terminal.
const (
	ReportTypeListing = "LISTING"
	ReportTypeUser    = "USER"

	ReportStatusPending  = "PENDING"
	ReportStatusResolved = "RESOLVED"
	ReportStatusRejected = "REJECTED"
)

// ValidReportType reports whether t is a recognized report type.
func ValidReportType(t string) bool {
	return t == ReportTypeListing || t == ReportTypeUser
}

// ValidReportStatus reports whether s is a recognized report status.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// Report is a moderation flag raised by a user against a listing or
// another user. ListingID is only set for LISTING reports and survives
// listing deletion as NULL while TargetID keeps the original reference.
type Report struct {
	ID          string
	Type        string
	TargetID    string
	Reason      string
	Description string
	Status      string
	ReporterID  string
	ListingID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated on admin reads that join related tables.
	Reporter *UserSummary
	Listing  *ListingSummary
}

// ReportFilter narrows report queries. Empty strings mean "no filter".
type ReportFilter struct {
	Type   string
	Status string
}
