package scoring

import (
	"testing"

	"github.com/glowdesk/crm-api/internal/models"
)

func TestGenerateRiskAlerts(t *testing.T) {
	testCases := []struct {
		name     string
		snap     AccountSnapshot
		expected []AlertDraft
	}{
		{
			name: "Healthy account emits nothing",
			snap: AccountSnapshot{HealthScore: 80, SentimentScore: 10, SentimentTrend: TrendStable},
		},
		{
			name: "Low health emits high severity",
			snap: AccountSnapshot{HealthScore: 45},
			expected: []AlertDraft{
				{AlertType: models.AlertDecliningEngagement, Severity: models.SeverityHigh},
			},
		},
		{
			name: "Very low health escalates to critical",
			snap: AccountSnapshot{HealthScore: 25},
			expected: []AlertDraft{
				{AlertType: models.AlertDecliningEngagement, Severity: models.SeverityCritical},
			},
		},
		{
			name: "Negative sentiment emits high severity",
			snap: AccountSnapshot{HealthScore: 80, SentimentScore: -30},
			expected: []AlertDraft{
				{AlertType: models.AlertNegativeSentiment, Severity: models.SeverityHigh},
			},
		},
		{
			name: "Very negative sentiment escalates to critical",
			snap: AccountSnapshot{HealthScore: 80, SentimentScore: -60},
			expected: []AlertDraft{
				{AlertType: models.AlertNegativeSentiment, Severity: models.SeverityCritical},
			},
		},
		{
			name: "Declining trend emits slow response",
			snap: AccountSnapshot{HealthScore: 80, SentimentTrend: TrendDeclining},
			expected: []AlertDraft{
				{AlertType: models.AlertSlowResponse, Severity: models.SeverityMedium},
			},
		},
		{
			name: "All three rules can fire together",
			snap: AccountSnapshot{HealthScore: 20, SentimentScore: -70, SentimentTrend: TrendDeclining},
			expected: []AlertDraft{
				{AlertType: models.AlertDecliningEngagement, Severity: models.SeverityCritical},
				{AlertType: models.AlertNegativeSentiment, Severity: models.SeverityCritical},
				{AlertType: models.AlertSlowResponse, Severity: models.SeverityMedium},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := GenerateRiskAlerts(tc.snap)
			if len(alerts) != len(tc.expected) {
				t.Fatalf("Expected %d alerts, got %d: %+v", len(tc.expected), len(alerts), alerts)
			}
			for i, want := range tc.expected {
				if alerts[i].AlertType != want.AlertType {
					t.Errorf("Alert %d: expected type %s, got %s", i, want.AlertType, alerts[i].AlertType)
				}
				if alerts[i].Severity != want.Severity {
					t.Errorf("Alert %d: expected severity %s, got %s", i, want.Severity, alerts[i].Severity)
				}
			}
		})
	}
}

func TestGenerateRiskAlerts_Deterministic(t *testing.T) {
	snap := AccountSnapshot{HealthScore: 40, SentimentScore: -25, SentimentTrend: TrendDeclining}
	first := GenerateRiskAlerts(snap)
	second := GenerateRiskAlerts(snap)
	if len(first) != len(second) {
		t.Fatalf("Rule list not deterministic: %d vs %d alerts", len(first), len(second))
	}
}

func TestGenerateRecommendations(t *testing.T) {
	testCases := []struct {
		name          string
		snap          AccountSnapshot
		expectedTypes []models.RecommendationType
	}{
		{
			name: "Salon gets product recommendation",
			snap: AccountSnapshot{
				AccountType:      models.AccountTypeSalon,
				ActiveCampaigns:  1,
				OpportunityCount: 1,
			},
			expectedTypes: []models.RecommendationType{models.RecTypeProduct},
		},
		{
			name: "Zero campaigns triggers campaign recommendation",
			snap: AccountSnapshot{
				AccountType:      models.AccountTypeDistributor,
				OpportunityCount: 1,
			},
			expectedTypes: []models.RecommendationType{models.RecTypeCampaign},
		},
		{
			name: "High pipeline value wins over empty pipeline rule",
			snap: AccountSnapshot{
				AccountType:          models.AccountTypeOther,
				ActiveCampaigns:      2,
				OpportunityCount:     3,
				TotalExpectedRevenue: 150000,
			},
			expectedTypes: []models.RecommendationType{models.RecTypeDeal},
		},
		{
			name: "No opportunities triggers medium deal recommendation",
			snap: AccountSnapshot{
				AccountType:     models.AccountTypeOther,
				ActiveCampaigns: 1,
			},
			expectedTypes: []models.RecommendationType{models.RecTypeDeal},
		},
		{
			name: "High risk triggers risk recommendation",
			snap: AccountSnapshot{
				AccountType:      models.AccountTypeOther,
				ActiveCampaigns:  1,
				OpportunityCount: 1,
				RiskLevel:        models.RiskLevelCritical,
			},
			expectedTypes: []models.RecommendationType{models.RecTypeRisk},
		},
		{
			name: "Spa with empty pipeline stacks rules",
			snap: AccountSnapshot{
				AccountType: models.AccountTypeSpa,
				RiskLevel:   models.RiskLevelHigh,
			},
			expectedTypes: []models.RecommendationType{
				models.RecTypeProduct,
				models.RecTypeCampaign,
				models.RecTypeDeal,
				models.RecTypeRisk,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs := GenerateRecommendations(tc.snap)
			if len(recs) != len(tc.expectedTypes) {
				t.Fatalf("Expected %d recommendations, got %d: %+v", len(tc.expectedTypes), len(recs), recs)
			}
			for i, want := range tc.expectedTypes {
				if recs[i].RecType != want {
					t.Errorf("Recommendation %d: expected %s, got %s", i, want, recs[i].RecType)
				}
			}
		})
	}
}

func TestGenerateRecommendations_DealPriority(t *testing.T) {
	rich := GenerateRecommendations(AccountSnapshot{
		AccountType:          models.AccountTypeOther,
		ActiveCampaigns:      1,
		OpportunityCount:     2,
		TotalExpectedRevenue: 200000,
	})
	if len(rich) != 1 || rich[0].Priority != models.RecPriorityHigh {
		t.Errorf("Expected one high priority deal recommendation, got %+v", rich)
	}

	empty := GenerateRecommendations(AccountSnapshot{
		AccountType:     models.AccountTypeOther,
		ActiveCampaigns: 1,
	})
	if len(empty) != 1 || empty[0].Priority != models.RecPriorityMedium {
		t.Errorf("Expected one medium priority deal recommendation, got %+v", empty)
	}
}

func TestRiskLevelForHealth(t *testing.T) {
	testCases := []struct {
		health    int
		sentiment int
		expected  models.RiskLevel
	}{
		{20, 0, models.RiskLevelCritical},
		{80, -60, models.RiskLevelCritical},
		{40, 0, models.RiskLevelHigh},
		{80, -30, models.RiskLevelHigh},
		{60, 0, models.RiskLevelMedium},
		{85, 10, models.RiskLevelLow},
	}

	for _, tc := range testCases {
		if got := RiskLevelForHealth(tc.health, tc.sentiment); got != tc.expected {
			t.Errorf("RiskLevelForHealth(%d, %d): expected %s, got %s", tc.health, tc.sentiment, tc.expected, got)
		}
	}
}
