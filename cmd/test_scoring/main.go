package main

import (
	"fmt"

	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/scoring"
)

// Manual smoke tool for the scoring rules. Prints scores for a handful of
// representative records so threshold changes can be eyeballed quickly.
func main() {
	fmt.Println("Scoring engine smoke test")
	fmt.Println("=========================")

	leads := []struct {
		name string
		in   scoring.LeadInput
	}{
		{
			name: "hot referral salon",
			in: scoring.LeadInput{
				Quality:        models.LeadQualityHot,
				Status:         models.LeadStatusQualified,
				Source:         "referral",
				EstimatedValue: 120000,
				ContactName:    "Maya Chen",
				ContactEmail:   "maya@lumierespa.test",
				ContactPhone:   "+31 20 555 0101",
			},
		},
		{
			name: "cold web form, no contact",
			in: scoring.LeadInput{
				Quality: models.LeadQualityCold,
				Status:  models.LeadStatusNew,
				Source:  "web",
			},
		},
	}

	fmt.Println("\nLead scores:")
	for _, l := range leads {
		fmt.Printf("  %-28s %3d\n", l.name, scoring.LeadScore(l.in))
	}

	accounts := []struct {
		name string
		in   scoring.AccountInput
	}{
		{
			name: "active gold salon",
			in: scoring.AccountInput{
				Status:        models.AccountStatusActive,
				Tier:          models.AccountTierGold,
				AnnualRevenue: 350000,
				Website:       "https://goldleafsalon.test",
				Phone:         "+31 20 555 0102",
				Address:       "Herengracht 12, Amsterdam",
			},
		},
		{
			name: "inactive bronze, bare profile",
			in: scoring.AccountInput{
				Status: models.AccountStatusInactive,
				Tier:   models.AccountTierBronze,
			},
		},
	}

	fmt.Println("\nAccount health:")
	for _, a := range accounts {
		fmt.Printf("  %-28s %3d\n", a.name, scoring.AccountHealth(a.in))
	}

	health := scoring.AccountHealth(accounts[0].in)
	sentiment, label := scoring.Sentiment(
		"Great meeting, owner is happy with the launch but worried about delivery delays",
		scoring.AccountNegativeWeight,
	)
	score, bucket := scoring.PriorityScore(scoring.PriorityInput{
		HealthScore:    health,
		AnnualRevenue:  accounts[0].in.AnnualRevenue,
		Tier:           accounts[0].in.Tier,
		Stage:          models.StageOnboarding,
		StageStatus:    models.StageStatusInProgress,
		SentimentScore: sentiment,
	})

	fmt.Println("\nPriority for the gold salon:")
	fmt.Printf("  sentiment %d (%s)\n", sentiment, label)
	fmt.Printf("  priority score %d, bucket %d\n", score, bucket)

	snap := scoring.AccountSnapshot{
		AccountID:       "smoke-test",
		AccountType:     models.AccountTypeSalon,
		HealthScore:     25,
		SentimentScore:  -60,
		SentimentTrend:  scoring.TrendDeclining,
		RiskLevel:       scoring.RiskLevelForHealth(25, -60),
		ActiveCampaigns: 0,
	}

	fmt.Println("\nRisk alerts for a struggling account:")
	for _, alert := range scoring.GenerateRiskAlerts(snap) {
		fmt.Printf("  [%s] %s: %s\n", alert.Severity, alert.AlertType, alert.Description)
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range scoring.GenerateRecommendations(snap) {
		fmt.Printf("  [%s] %s: %s\n", rec.Priority, rec.RecType, rec.Text)
	}
}
