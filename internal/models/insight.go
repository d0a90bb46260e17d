package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertType classifies a risk alert
type AlertType string

const (
	AlertDecliningEngagement AlertType = "DecliningEngagement"
	AlertNegativeSentiment   AlertType = "NegativeSentiment"
	AlertSlowResponse        AlertType = "SlowResponse"
)

// AlertSeverity ranks a risk alert
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// RiskAlert is a detection record emitted by the scoring run. Alerts are
// insert-only: they are resolved, never deleted, and repeated runs may emit
// duplicates so the table doubles as a detection audit trail.
type RiskAlert struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	AccountID   uuid.UUID     `json:"account_id" db:"account_id"`
	AlertType   AlertType     `json:"alert_type" db:"alert_type"`
	Severity    AlertSeverity `json:"severity" db:"severity"`
	Description string        `json:"description" db:"description"`
	IsResolved  bool          `json:"is_resolved" db:"is_resolved"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// RecommendationType classifies a recommendation
type RecommendationType string

const (
	RecTypeProduct  RecommendationType = "Product"
	RecTypeCampaign RecommendationType = "Campaign"
	RecTypeDeal     RecommendationType = "Deal"
	RecTypeRisk     RecommendationType = "Risk"
)

// RecommendationPriority ranks a recommendation
type RecommendationPriority string

const (
	RecPriorityLow    RecommendationPriority = "Low"
	RecPriorityMedium RecommendationPriority = "Medium"
	RecPriorityHigh   RecommendationPriority = "High"
)

// RecommendationStatus tracks what the account owner did with a recommendation
type RecommendationStatus string

const (
	RecStatusNew          RecommendationStatus = "New"
	RecStatusAcknowledged RecommendationStatus = "Acknowledged"
	RecStatusDismissed    RecommendationStatus = "Dismissed"
)

// Recommendation is a suggested next action for an account
type Recommendation struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	AccountID uuid.UUID              `json:"account_id" db:"account_id"`
	RecType   RecommendationType     `json:"rec_type" db:"rec_type"`
	Text      string                 `json:"text" db:"text"`
	Priority  RecommendationPriority `json:"priority" db:"priority"`
	Status    RecommendationStatus   `json:"status" db:"status"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" db:"updated_at"`
}
