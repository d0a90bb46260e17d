package models

import (
	"time"

	"github.com/google/uuid"
)

// ProspectStatus mirrors the lead lifecycle
type ProspectStatus string

const (
	ProspectStatusNew       ProspectStatus = "New"
	ProspectStatusContacted ProspectStatus = "Contacted"
	ProspectStatusQualified ProspectStatus = "Qualified"
	ProspectStatusConverted ProspectStatus = "Converted"
	ProspectStatusLost      ProspectStatus = "Lost"
)

// Prospect represents a discovered outlet that has not yet entered the pipeline.
// Unlike a Lead, conversion materializes an Account, a Contact and an Opportunity
// in one shot from caller-supplied form data.
type Prospect struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	ProspectName    string         `json:"prospect_name" db:"prospect_name"`
	BusinessType    string         `json:"business_type" db:"business_type"`
	DiscoverySource string         `json:"discovery_source" db:"discovery_source"`
	ContactName     string         `json:"contact_name" db:"contact_name"`
	ContactEmail    string         `json:"contact_email" db:"contact_email"`
	ContactPhone    string         `json:"contact_phone" db:"contact_phone"`
	EstimatedValue  float64        `json:"estimated_value" db:"estimated_value"`
	ProspectScore   int            `json:"prospect_score" db:"prospect_score"`
	Notes           string         `json:"notes" db:"notes"`
	Status          ProspectStatus `json:"status" db:"status"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}
