package scoring

import (
	"math"
	"strings"

	"github.com/glowdesk/crm-api/internal/models"
)

// The scoring functions in this package are pure: they read a snapshot,
// return a number, and touch nothing else. Missing numeric inputs count as
// zero, missing strings as empty. Threshold tiers are evaluated top-down and
// only the first matching tier contributes, so bonuses never double-count.

// LeadInput is the snapshot of lead attributes relevant to AI scoring
type LeadInput struct {
	Quality        models.LeadQuality
	Status         models.LeadStatus
	Source         string
	EstimatedValue float64
	ContactName    string
	ContactEmail   string
	ContactPhone   string
}

// LeadScore computes the 0-100 AI score for a lead
func LeadScore(in LeadInput) int {
	score := 50

	switch in.Quality {
	case models.LeadQualityHot:
		score += 30
	case models.LeadQualityWarm:
		score += 15
	case models.LeadQualityCold:
		score -= 10
	}

	switch {
	case in.EstimatedValue > 100000:
		score += 20
	case in.EstimatedValue > 50000:
		score += 10
	case in.EstimatedValue > 20000:
		score += 5
	}

	switch strings.ToLower(in.Source) {
	case "referral":
		score += 15
	case "event":
		score += 10
	case "social":
		score += 5
	}

	switch in.Status {
	case models.LeadStatusQualified:
		score += 20
	case models.LeadStatusContacted:
		score += 10
	}

	if in.ContactEmail != "" {
		score += 5
	}
	if in.ContactPhone != "" {
		score += 5
	}
	if in.ContactName != "" {
		score += 5
	}

	return clamp(score, 0, 100)
}

// AccountInput is the snapshot of account attributes relevant to health scoring
type AccountInput struct {
	Status        models.AccountStatus
	Tier          models.AccountTier
	AnnualRevenue float64
	Website       string
	Phone         string
	Address       string
}

// AccountHealth computes the 0-100 health score for an account. Callers must
// use this on every read path; the stored health_score column is only a cache.
func AccountHealth(in AccountInput) int {
	score := 50

	switch in.Status {
	case models.AccountStatusActive:
		score += 20
	case models.AccountStatusProspect:
		score += 10
	case models.AccountStatusInactive:
		score -= 20
	}

	switch in.Tier {
	case models.AccountTierPlatinum:
		score += 25
	case models.AccountTierGold:
		score += 15
	case models.AccountTierSilver:
		score += 5
	}

	switch {
	case in.AnnualRevenue > 500000:
		score += 20
	case in.AnnualRevenue > 100000:
		score += 10
	}

	if in.Website != "" {
		score += 5
	}
	if in.Phone != "" {
		score += 5
	}
	if in.Address != "" {
		score += 5
	}

	return clamp(score, 0, 100)
}

// PriorityInput is the snapshot used to rank an account 1-5
type PriorityInput struct {
	HealthScore         int
	AnnualRevenue       float64
	EstimatedMonthlyGMV float64
	Tier                models.AccountTier
	Stage               models.TimelineStage
	StageStatus         models.TimelineStageStatus
	SentimentScore      int
}

// PriorityScore computes the weighted 0-100 priority score and its 1-5 bucket.
// Weights: health 40%, revenue potential 25%, tier 15%, timeline progress 10%,
// sentiment 10%.
func PriorityScore(in PriorityInput) (score int, bucket int) {
	weighted := float64(in.HealthScore)*0.40 +
		revenuePotential(in.AnnualRevenue, in.EstimatedMonthlyGMV)*0.25 +
		tierScore(in.Tier)*0.15 +
		timelineProgress(in.Stage, in.StageStatus)*0.10 +
		sentimentRescaled(in.SentimentScore)*0.10

	score = clamp(int(math.Round(weighted)), 0, 100)

	switch {
	case score >= 80:
		bucket = 5
	case score >= 60:
		bucket = 4
	case score >= 40:
		bucket = 3
	case score >= 20:
		bucket = 2
	default:
		bucket = 1
	}
	return score, bucket
}

// revenuePotential tiers annual revenue, falling back to annualized GMV when
// revenue is unreported.
func revenuePotential(annualRevenue, monthlyGMV float64) float64 {
	revenue := annualRevenue
	if revenue == 0 {
		revenue = monthlyGMV * 12
	}

	switch {
	case revenue > 1000000:
		return 100
	case revenue > 500000:
		return 80
	case revenue > 250000:
		return 60
	case revenue > 100000:
		return 40
	case revenue > 0:
		return 20
	default:
		return 0
	}
}

func tierScore(tier models.AccountTier) float64 {
	switch tier {
	case models.AccountTierPlatinum:
		return 100
	case models.AccountTierGold:
		return 75
	case models.AccountTierSilver:
		return 50
	case models.AccountTierBronze:
		return 25
	default:
		return 0
	}
}

// timelineProgress maps the account's pipeline position to 0-100. A Completed
// stage counts as full progress regardless of position; Delayed and Blocked
// stages discount the positional progress.
func timelineProgress(stage models.TimelineStage, status models.TimelineStageStatus) float64 {
	if status == models.StageStatusCompleted {
		return 100
	}

	index := -1
	for i, s := range models.TimelineStages {
		if s == stage {
			index = i
			break
		}
	}
	if index < 0 {
		return 0
	}

	progress := float64(index+1) / float64(len(models.TimelineStages)) * 100
	switch status {
	case models.StageStatusDelayed:
		progress *= 0.7
	case models.StageStatusBlocked:
		progress *= 0.5
	}
	return progress
}

// sentimentRescaled maps [-100,100] sentiment onto [0,100]
func sentimentRescaled(sentiment int) float64 {
	return float64(sentiment+100) / 2
}

// OpportunityInput is the snapshot of opportunity attributes relevant to win scoring
type OpportunityInput struct {
	Stage           models.OpportunityStage
	Amount          float64
	Probability     int
	DiscountPercent float64
	Notes           string
}

// WinProbability computes the 0-100 AI win score for an opportunity
func WinProbability(in OpportunityInput) int {
	score := in.Probability

	switch in.Stage {
	case models.OppStageNegotiation:
		score += 15
	case models.OppStageProposal:
		score += 10
	case models.OppStageNeedsAnalysis:
		score += 5
	}

	switch {
	case in.Amount > 500000:
		score -= 5
	case in.Amount > 200000:
		score -= 2
	}

	switch {
	case in.DiscountPercent > 20:
		score -= 10
	case in.DiscountPercent > 10:
		score -= 5
	}

	if sentiment, _ := Sentiment(in.Notes, DefaultNegativeWeight); sentiment > 0 {
		score += 10
	} else if sentiment < 0 {
		score -= 10
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
