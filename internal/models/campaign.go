package models

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents campaign lifecycle status
type CampaignStatus string

const (
	CampaignStatusPlanned   CampaignStatus = "Planned"
	CampaignStatusActive    CampaignStatus = "Active"
	CampaignStatusCompleted CampaignStatus = "Completed"
	CampaignStatusCancelled CampaignStatus = "Cancelled"
)

// Campaign represents a marketing campaign, optionally tied to an account
type Campaign struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	AccountID      *uuid.UUID     `json:"account_id" db:"account_id"`
	CampaignName   string         `json:"campaign_name" db:"campaign_name"`
	Channel        string         `json:"channel" db:"channel"`
	Status         CampaignStatus `json:"status" db:"status"`
	Budget         float64        `json:"budget" db:"budget"`
	Spend          float64        `json:"spend" db:"spend"`
	Revenue        float64        `json:"revenue" db:"revenue"`
	LeadsGenerated int            `json:"leads_generated" db:"leads_generated"`
	StartDate      *time.Time     `json:"start_date" db:"start_date"`
	EndDate        *time.Time     `json:"end_date" db:"end_date"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}
