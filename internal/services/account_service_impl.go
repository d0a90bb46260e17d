package services

import (
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/scoring"
)

// accountServiceImpl implements AccountService
type accountServiceImpl struct {
	repos *repository.Repositories
	log   logger.Logger
}

// newAccountService creates a new account service implementation
func newAccountService(repos *repository.Repositories, log logger.Logger) AccountService {
	return &accountServiceImpl{
		repos: repos,
		log:   log,
	}
}

// GetByID retrieves an account. The stored health score is only a cache, so
// the returned value always carries a freshly computed one.
func (s *accountServiceImpl) GetByID(id string) (*models.Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid account ID", err)
	}

	account, err := s.repos.Account.GetByID(accountID)
	if err != nil {
		return nil, accountError(id, err)
	}

	account.HealthScore = scoring.AccountHealth(accountInput(account))
	return account, nil
}

// GetAll retrieves accounts with filters, health recomputed per row
func (s *accountServiceImpl) GetAll(filters repository.AccountFilters) ([]models.Account, error) {
	accounts, err := s.repos.Account.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get accounts", err)
	}

	for i := range accounts {
		accounts[i].HealthScore = scoring.AccountHealth(accountInput(&accounts[i]))
	}

	return accounts, nil
}

// Create creates a new account
func (s *accountServiceImpl) Create(account *models.Account) error {
	if account.AccountName == "" {
		return apperrors.ValidationError("account_name is required", nil)
	}
	if account.Status == "" {
		account.Status = models.AccountStatusProspect
	}
	if account.AccountTier == "" {
		account.AccountTier = models.AccountTierBronze
	}
	if account.CurrentStage == "" {
		account.CurrentStage = models.StageOnboarding
		account.StageStatus = models.StageStatusNotStarted
	}
	if account.RiskLevel == "" {
		account.RiskLevel = models.RiskLevelLow
	}

	account.HealthScore = scoring.AccountHealth(accountInput(account))

	if err := s.repos.Account.Create(account); err != nil {
		return apperrors.DatabaseError("failed to create account", err)
	}

	return nil
}

// Update updates an existing account
func (s *accountServiceImpl) Update(account *models.Account) error {
	account.HealthScore = scoring.AccountHealth(accountInput(account))

	if err := s.repos.Account.Update(account); err != nil {
		return accountError(account.ID.String(), err)
	}

	return nil
}

// UpdateAIScore recomputes health, sentiment, risk level and priority for an
// account, persists them, and records any risk alerts the run detected.
// Alerts are insert-only; repeated runs append fresh detections.
func (s *accountServiceImpl) UpdateAIScore(id string) (*AccountScoreResult, error) {
	account, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	previousSentiment := account.SentimentScore
	sentiment, _ := scoring.Sentiment(account.TimelineNotes, scoring.AccountNegativeWeight)

	trend := scoring.TrendStable
	if sentiment < previousSentiment {
		trend = scoring.TrendDeclining
	} else if sentiment > previousSentiment {
		trend = scoring.TrendImproving
	}

	account.HealthScore = scoring.AccountHealth(accountInput(account))
	account.SentimentScore = sentiment
	account.RiskLevel = scoring.RiskLevelForHealth(account.HealthScore, sentiment)
	account.PriorityScore, account.PriorityRating = scoring.PriorityScore(scoring.PriorityInput{
		HealthScore:         account.HealthScore,
		AnnualRevenue:       account.AnnualRevenue,
		EstimatedMonthlyGMV: account.EstimatedMonthlyGMV,
		Tier:                account.AccountTier,
		Stage:               account.CurrentStage,
		StageStatus:         account.StageStatus,
		SentimentScore:      sentiment,
	})

	snap, err := s.buildSnapshot(account, trend)
	if err != nil {
		return nil, err
	}

	result := &AccountScoreResult{Account: account}
	for _, draft := range scoring.GenerateRiskAlerts(snap) {
		alert := models.RiskAlert{
			AccountID:   account.ID,
			AlertType:   draft.AlertType,
			Severity:    draft.Severity,
			Description: draft.Description,
		}
		if err := s.repos.Insight.CreateAlert(&alert); err != nil {
			return nil, apperrors.DatabaseError("failed to record risk alert", err)
		}
		result.NewAlerts = append(result.NewAlerts, alert)
	}

	if err := s.repos.Account.Update(account); err != nil {
		return nil, accountError(id, err)
	}

	s.log.Info("account rescored", "account_id", id,
		"health", account.HealthScore, "risk", account.RiskLevel)
	return result, nil
}

// GetRecommendations runs the recommendation rules for an account, persists
// the fresh drafts, and returns the account's full recommendation list.
func (s *accountServiceImpl) GetRecommendations(id string) ([]models.Recommendation, error) {
	account, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	snap, err := s.buildSnapshot(account, scoring.TrendStable)
	if err != nil {
		return nil, err
	}

	for _, draft := range scoring.GenerateRecommendations(snap) {
		rec := models.Recommendation{
			AccountID: account.ID,
			RecType:   draft.RecType,
			Text:      draft.Text,
			Priority:  draft.Priority,
			Status:    models.RecStatusNew,
		}
		if err := s.repos.Insight.CreateRecommendation(&rec); err != nil {
			return nil, apperrors.DatabaseError("failed to record recommendation", err)
		}
	}

	recs, err := s.repos.Insight.GetRecommendationsByAccount(account.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get recommendations", err)
	}

	return recs, nil
}

// UpdateRecommendationStatus moves a recommendation to a new workflow status
func (s *accountServiceImpl) UpdateRecommendationStatus(recID string, status string) error {
	id, err := uuid.Parse(recID)
	if err != nil {
		return apperrors.InvalidInput("invalid recommendation ID", err)
	}

	newStatus := models.RecommendationStatus(status)
	if !validRecommendationStatus(newStatus) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown recommendation status %q", status), nil)
	}

	if err := s.repos.Insight.UpdateRecommendationStatus(id, newStatus); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound(fmt.Sprintf("recommendation %s not found", recID), err)
		}
		return apperrors.DatabaseError("failed to update recommendation status", err)
	}

	return nil
}

// GetAlerts retrieves the risk alerts recorded for an account
func (s *accountServiceImpl) GetAlerts(id string, unresolvedOnly bool) ([]models.RiskAlert, error) {
	account, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	alerts, err := s.repos.Insight.GetAlertsByAccount(account.ID, unresolvedOnly)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get risk alerts", err)
	}

	return alerts, nil
}

// ResolveAlert marks a risk alert as resolved
func (s *accountServiceImpl) ResolveAlert(alertID string) error {
	id, err := uuid.Parse(alertID)
	if err != nil {
		return apperrors.InvalidInput("invalid alert ID", err)
	}

	if err := s.repos.Insight.ResolveAlert(id); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound(fmt.Sprintf("risk alert %s not found", alertID), err)
		}
		return apperrors.DatabaseError("failed to resolve risk alert", err)
	}

	s.log.Info("risk alert resolved", "alert_id", alertID)
	return nil
}

// UpdateTimelineStage moves the account to a new onboarding stage
func (s *accountServiceImpl) UpdateTimelineStage(id string, stage, status, notes string) (*models.Account, error) {
	account, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStage := models.TimelineStage(stage)
	if !validTimelineStage(newStage) {
		return nil, apperrors.InvalidStage(fmt.Sprintf("unknown timeline stage %q", stage))
	}

	newStatus := models.TimelineStageStatus(status)
	if status == "" {
		newStatus = models.StageStatusInProgress
	} else if !validStageStatus(newStatus) {
		return nil, apperrors.InvalidStage(fmt.Sprintf("unknown stage status %q", status))
	}

	account.CurrentStage = newStage
	account.StageStatus = newStatus
	if notes != "" {
		account.TimelineNotes = notes
	}

	account.PriorityScore, account.PriorityRating = scoring.PriorityScore(scoring.PriorityInput{
		HealthScore:         account.HealthScore,
		AnnualRevenue:       account.AnnualRevenue,
		EstimatedMonthlyGMV: account.EstimatedMonthlyGMV,
		Tier:                account.AccountTier,
		Stage:               account.CurrentStage,
		StageStatus:         account.StageStatus,
		SentimentScore:      account.SentimentScore,
	})

	if err := s.repos.Account.Update(account); err != nil {
		return nil, accountError(id, err)
	}

	return account, nil
}

// buildSnapshot aggregates an account's related records for the rule lists
func (s *accountServiceImpl) buildSnapshot(account *models.Account, trend scoring.SentimentTrend) (scoring.AccountSnapshot, error) {
	activeCampaigns, err := s.repos.Campaign.CountActiveByAccount(account.ID)
	if err != nil {
		return scoring.AccountSnapshot{}, apperrors.DatabaseError("failed to count campaigns", err)
	}

	opps, err := s.repos.Opportunity.GetByAccount(account.ID)
	if err != nil {
		return scoring.AccountSnapshot{}, apperrors.DatabaseError("failed to get opportunities", err)
	}

	openCount := 0
	totalExpected := 0.0
	for _, opp := range opps {
		if opp.IsClosed() {
			continue
		}
		openCount++
		totalExpected += opp.ExpectedRevenue
	}

	return scoring.AccountSnapshot{
		AccountID:            account.ID.String(),
		AccountType:          account.AccountType,
		HealthScore:          account.HealthScore,
		SentimentScore:       account.SentimentScore,
		SentimentTrend:       trend,
		RiskLevel:            account.RiskLevel,
		ActiveCampaigns:      activeCampaigns,
		OpportunityCount:     openCount,
		TotalExpectedRevenue: totalExpected,
	}, nil
}

func validTimelineStage(stage models.TimelineStage) bool {
	for _, s := range models.TimelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

func validRecommendationStatus(status models.RecommendationStatus) bool {
	switch status {
	case models.RecStatusNew, models.RecStatusAcknowledged, models.RecStatusDismissed:
		return true
	}
	return false
}

func validStageStatus(status models.TimelineStageStatus) bool {
	switch status {
	case models.StageStatusNotStarted, models.StageStatusInProgress,
		models.StageStatusCompleted, models.StageStatusDelayed, models.StageStatusBlocked:
		return true
	}
	return false
}

// accountError maps a repository error for an account to an AppError
func accountError(id string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound(fmt.Sprintf("account %s not found", id), err)
	}
	return apperrors.DatabaseError("account operation failed", err)
}
