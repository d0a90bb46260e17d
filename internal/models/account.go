package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountType represents the kind of outlet an account is
type AccountType string

const (
	AccountTypeSalon       AccountType = "Salon"
	AccountTypeSpa         AccountType = "Spa"
	AccountTypeBarbershop  AccountType = "Barbershop"
	AccountTypeDistributor AccountType = "Distributor"
	AccountTypeOther       AccountType = "Other"
)

// AccountTier represents the commercial tier of an account
type AccountTier string

const (
	AccountTierPlatinum AccountTier = "Platinum"
	AccountTierGold     AccountTier = "Gold"
	AccountTierSilver   AccountTier = "Silver"
	AccountTierBronze   AccountTier = "Bronze"
)

// AccountStatus represents account lifecycle status
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusProspect AccountStatus = "Prospect"
	AccountStatusInactive AccountStatus = "Inactive"
)

// RiskLevel buckets an account's overall risk
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// TimelineStage represents the onboarding pipeline position of an account
type TimelineStage string

const (
	StageOnboarding             TimelineStage = "Onboarding"
	StageFinancialNegotiation   TimelineStage = "FinancialNegotiation"
	StageOpportunityDevelopment TimelineStage = "OpportunityDevelopment"
	StageCampaignExecution      TimelineStage = "CampaignExecution"
	StageRevenueRealization     TimelineStage = "RevenueRealization"
)

// TimelineStages lists the onboarding stages in pipeline order.
var TimelineStages = []TimelineStage{
	StageOnboarding,
	StageFinancialNegotiation,
	StageOpportunityDevelopment,
	StageCampaignExecution,
	StageRevenueRealization,
}

// TimelineStageStatus represents progress within the current timeline stage
type TimelineStageStatus string

const (
	StageStatusNotStarted TimelineStageStatus = "NotStarted"
	StageStatusInProgress TimelineStageStatus = "InProgress"
	StageStatusCompleted  TimelineStageStatus = "Completed"
	StageStatusDelayed    TimelineStageStatus = "Delayed"
	StageStatusBlocked    TimelineStageStatus = "Blocked"
)

// Account represents a customer account. HealthScore is a cache of the last
// computed value; read paths recompute it from the other fields and never
// trust the stored number for display.
type Account struct {
	ID                  uuid.UUID           `json:"id" db:"id"`
	AccountName         string              `json:"account_name" db:"account_name"`
	AccountType         AccountType         `json:"account_type" db:"account_type"`
	AccountTier         AccountTier         `json:"account_tier" db:"account_tier"`
	Status              AccountStatus       `json:"status" db:"status"`
	AnnualRevenue       float64             `json:"annual_revenue" db:"annual_revenue"`
	EstimatedMonthlyGMV float64             `json:"estimated_monthly_gmv" db:"estimated_monthly_gmv"`
	Website             string              `json:"website" db:"website"`
	Phone               string              `json:"phone" db:"phone"`
	Address             string              `json:"address" db:"address"`
	HealthScore         int                 `json:"health_score" db:"health_score"`
	SentimentScore      int                 `json:"sentiment_score" db:"sentiment_score"`
	RiskLevel           RiskLevel           `json:"risk_level" db:"risk_level"`
	CurrentStage        TimelineStage       `json:"current_timeline_stage" db:"current_timeline_stage"`
	StageStatus         TimelineStageStatus `json:"timeline_stage_status" db:"timeline_stage_status"`
	TimelineNotes       string              `json:"timeline_notes" db:"timeline_notes"`
	PriorityScore       int                 `json:"priority_score" db:"priority_score"`
	PriorityRating      int                 `json:"priority_rating" db:"priority_rating"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" db:"updated_at"`
}

// Contact represents a person attached to an account
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
