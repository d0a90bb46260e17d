package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadQuality represents lead quality values
type LeadQuality string

const (
	LeadQualityCold LeadQuality = "Cold"
	LeadQualityWarm LeadQuality = "Warm"
	LeadQualityHot  LeadQuality = "Hot"
)

// LeadStatus represents lead lifecycle status values
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
	LeadStatusConverted LeadStatus = "Converted"
	LeadStatusLost      LeadStatus = "Lost"
)

// Lead represents an inbound sales lead
type Lead struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	OutletName     string      `json:"outlet_name" db:"outlet_name"`
	ContactName    string      `json:"contact_name" db:"contact_name"`
	ContactEmail   string      `json:"contact_email" db:"contact_email"`
	ContactPhone   string      `json:"contact_phone" db:"contact_phone"`
	Website        string      `json:"website" db:"website"`
	Source         string      `json:"source" db:"source"`
	Platform       string      `json:"platform" db:"platform"`
	LeadQuality    LeadQuality `json:"lead_quality" db:"lead_quality"`
	Status         LeadStatus  `json:"status" db:"status"`
	EstimatedValue float64     `json:"estimated_value" db:"estimated_value"`
	AIScore        int         `json:"ai_score" db:"ai_score"`
	SentimentScore int         `json:"sentiment_score" db:"sentiment_score"`
	SentimentLabel string      `json:"sentiment_label" db:"sentiment_label"`
	TrendScore     int         `json:"trend_score" db:"trend_score"`
	Notes          string      `json:"notes" db:"notes"`
	Converted      bool        `json:"converted" db:"converted"`
	ConvertedTo    *uuid.UUID  `json:"converted_to" db:"converted_to"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}
