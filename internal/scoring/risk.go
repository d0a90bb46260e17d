package scoring

import (
	"fmt"

	"github.com/glowdesk/crm-api/internal/models"
)

// SentimentTrend describes the direction of recent account sentiment
type SentimentTrend string

const (
	TrendImproving SentimentTrend = "Improving"
	TrendStable    SentimentTrend = "Stable"
	TrendDeclining SentimentTrend = "Declining"
)

// AccountSnapshot bundles a scored account with the aggregates of its related
// records, which is all the rule list needs. Building the snapshot is the
// caller's job; evaluating it is pure.
type AccountSnapshot struct {
	AccountID            string
	AccountType          models.AccountType
	HealthScore          int
	SentimentScore       int
	SentimentTrend       SentimentTrend
	RiskLevel            models.RiskLevel
	ActiveCampaigns      int
	OpportunityCount     int
	TotalExpectedRevenue float64
}

// AlertDraft is an unsaved risk alert produced by the rule list
type AlertDraft struct {
	AlertType   models.AlertType
	Severity    models.AlertSeverity
	Description string
}

// RecommendationDraft is an unsaved recommendation produced by the rule list
type RecommendationDraft struct {
	RecType  models.RecommendationType
	Priority models.RecommendationPriority
	Text     string
}

// GenerateRiskAlerts evaluates the risk rule list against a snapshot.
// Every invocation yields a fresh detection set; persistence is insert-only
// with no dedup against prior identical alerts, so the alert table is an
// audit trail of every detection.
func GenerateRiskAlerts(snap AccountSnapshot) []AlertDraft {
	var alerts []AlertDraft

	if snap.HealthScore < 50 {
		severity := models.SeverityHigh
		if snap.HealthScore < 30 {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, AlertDraft{
			AlertType:   models.AlertDecliningEngagement,
			Severity:    severity,
			Description: fmt.Sprintf("Health score dropped to %d", snap.HealthScore),
		})
	}

	if snap.SentimentScore < -20 {
		severity := models.SeverityHigh
		if snap.SentimentScore < -50 {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, AlertDraft{
			AlertType:   models.AlertNegativeSentiment,
			Severity:    severity,
			Description: fmt.Sprintf("Sentiment score at %d", snap.SentimentScore),
		})
	}

	if snap.SentimentTrend == TrendDeclining {
		alerts = append(alerts, AlertDraft{
			AlertType:   models.AlertSlowResponse,
			Severity:    models.SeverityMedium,
			Description: "Recent sentiment trend is declining",
		})
	}

	return alerts
}

// GenerateRecommendations evaluates the recommendation rule list against a
// snapshot. The Deal rules are exclusive: high pipeline value wins over the
// empty-pipeline rule.
func GenerateRecommendations(snap AccountSnapshot) []RecommendationDraft {
	var recs []RecommendationDraft

	if snap.AccountType == models.AccountTypeSalon || snap.AccountType == models.AccountTypeSpa {
		recs = append(recs, RecommendationDraft{
			RecType:  models.RecTypeProduct,
			Priority: models.RecPriorityHigh,
			Text:     "Introduce the professional product line for " + string(snap.AccountType) + " outlets",
		})
	}

	if snap.ActiveCampaigns == 0 {
		recs = append(recs, RecommendationDraft{
			RecType:  models.RecTypeCampaign,
			Priority: models.RecPriorityMedium,
			Text:     "No active campaigns; plan a campaign to re-engage this account",
		})
	}

	if snap.TotalExpectedRevenue > 100000 {
		recs = append(recs, RecommendationDraft{
			RecType:  models.RecTypeDeal,
			Priority: models.RecPriorityHigh,
			Text:     fmt.Sprintf("Pipeline worth %.0f expected revenue; prioritize open deals", snap.TotalExpectedRevenue),
		})
	} else if snap.OpportunityCount == 0 {
		recs = append(recs, RecommendationDraft{
			RecType:  models.RecTypeDeal,
			Priority: models.RecPriorityMedium,
			Text:     "No open opportunities; identify a first deal for this account",
		})
	}

	if snap.RiskLevel == models.RiskLevelHigh || snap.RiskLevel == models.RiskLevelCritical {
		recs = append(recs, RecommendationDraft{
			RecType:  models.RecTypeRisk,
			Priority: models.RecPriorityHigh,
			Text:     "Risk level is " + string(snap.RiskLevel) + "; schedule a retention call",
		})
	}

	return recs
}

// RiskLevelForHealth buckets a health/sentiment pair into a risk level
func RiskLevelForHealth(health, sentiment int) models.RiskLevel {
	switch {
	case health < 30 || sentiment < -50:
		return models.RiskLevelCritical
	case health < 50 || sentiment < -20:
		return models.RiskLevelHigh
	case health < 70:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}
