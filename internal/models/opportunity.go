package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// OpportunityStage represents the sales pipeline stage of an opportunity
type OpportunityStage string

const (
	OppStageProspecting   OpportunityStage = "Prospecting"
	OppStageQualification OpportunityStage = "Qualification"
	OppStageNeedsAnalysis OpportunityStage = "Needs Analysis"
	OppStageProposal      OpportunityStage = "Proposal"
	OppStageNegotiation   OpportunityStage = "Negotiation"
	OppStageClosedWon     OpportunityStage = "Closed Won"
	OppStageClosedLost    OpportunityStage = "Closed Lost"
)

// OpportunityStages lists the pipeline stages in order.
var OpportunityStages = []OpportunityStage{
	OppStageProspecting,
	OppStageQualification,
	OppStageNeedsAnalysis,
	OppStageProposal,
	OppStageNegotiation,
	OppStageClosedWon,
	OppStageClosedLost,
}

// StageDefaultProbability maps each stage to its default win probability.
var StageDefaultProbability = map[OpportunityStage]int{
	OppStageProspecting:   10,
	OppStageQualification: 25,
	OppStageNeedsAnalysis: 40,
	OppStageProposal:      60,
	OppStageNegotiation:   80,
	OppStageClosedWon:     100,
	OppStageClosedLost:    0,
}

// Opportunity represents a revenue opportunity against an account
type Opportunity struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	AccountID       uuid.UUID        `json:"account_id" db:"account_id"`
	OpportunityName string           `json:"opportunity_name" db:"opportunity_name"`
	Stage           OpportunityStage `json:"stage" db:"stage"`
	Amount          float64          `json:"amount" db:"amount"`
	Probability     int              `json:"probability" db:"probability"`
	ExpectedRevenue float64          `json:"expected_revenue" db:"expected_revenue"`
	AIWinScore      int              `json:"ai_win_score" db:"ai_win_score"`
	DiscountPercent float64          `json:"discount_percent" db:"discount_percent"`
	CloseDate       *time.Time       `json:"close_date" db:"close_date"`
	CloseReason     string           `json:"close_reason" db:"close_reason"`
	Notes           string           `json:"notes" db:"notes"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// RecalculateExpectedRevenue enforces expected_revenue == round(amount * probability/100, 2).
// Must be called after every amount or probability change.
func (o *Opportunity) RecalculateExpectedRevenue() {
	o.ExpectedRevenue = math.Round(o.Amount*float64(o.Probability)) / 100
}

// IsClosed reports whether the opportunity reached a terminal stage
func (o *Opportunity) IsClosed() bool {
	return o.Stage == OppStageClosedWon || o.Stage == OppStageClosedLost
}
