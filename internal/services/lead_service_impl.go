package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/enrichment"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/scoring"
)

// WebsiteFetcher retrieves an outlet profile from a lead's website
type WebsiteFetcher interface {
	Fetch(ctx context.Context, url string) (*enrichment.Profile, error)
}

// leadServiceImpl implements LeadService
type leadServiceImpl struct {
	repos   *repository.Repositories
	fetcher WebsiteFetcher
	log     logger.Logger
}

// newLeadService creates a new lead service implementation
func newLeadService(repos *repository.Repositories, fetcher WebsiteFetcher, log logger.Logger) LeadService {
	return &leadServiceImpl{
		repos:   repos,
		fetcher: fetcher,
		log:     log,
	}
}

// GetByID retrieves a lead by ID
func (s *leadServiceImpl) GetByID(id string) (*models.Lead, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid lead ID", err)
	}

	lead, err := s.repos.Lead.GetByID(leadID)
	if err != nil {
		return nil, leadError(id, err)
	}

	return lead, nil
}

// GetAll retrieves leads with filters
func (s *leadServiceImpl) GetAll(filters repository.LeadFilters) ([]models.Lead, error) {
	leads, err := s.repos.Lead.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get leads", err)
	}
	return leads, nil
}

// Create creates a new lead and computes its initial scores
func (s *leadServiceImpl) Create(lead *models.Lead) error {
	if lead.OutletName == "" {
		return apperrors.ValidationError("outlet_name is required", nil)
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.LeadQuality == "" {
		lead.LeadQuality = models.LeadQualityCold
	}

	s.applyScores(lead)

	if err := s.repos.Lead.Create(lead); err != nil {
		return apperrors.DatabaseError("failed to create lead", err)
	}

	return nil
}

// Update updates a lead and refreshes its scores
func (s *leadServiceImpl) Update(lead *models.Lead) error {
	s.applyScores(lead)

	if err := s.repos.Lead.Update(lead); err != nil {
		return leadError(lead.ID.String(), err)
	}

	return nil
}

// UpdateAIScore recomputes and persists the AI score and sentiment of a lead
func (s *leadServiceImpl) UpdateAIScore(id string) (*models.Lead, error) {
	lead, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.applyScores(lead)

	if err := s.repos.Lead.Update(lead); err != nil {
		return nil, leadError(id, err)
	}

	return lead, nil
}

// Qualify transitions a lead to Qualified and refreshes its score
func (s *leadServiceImpl) Qualify(id string) (*models.Lead, error) {
	lead, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if lead.Converted || lead.Status == models.LeadStatusConverted {
		return nil, apperrors.InvalidTransition(fmt.Sprintf("lead %s is already converted", id))
	}
	if lead.Status == models.LeadStatusQualified {
		return nil, apperrors.AlreadyQualified(fmt.Sprintf("lead %s is already qualified", id))
	}

	lead.Status = models.LeadStatusQualified
	s.applyScores(lead)

	if err := s.repos.Lead.Update(lead); err != nil {
		return nil, leadError(id, err)
	}

	s.log.Info("lead qualified", "lead_id", id, "ai_score", lead.AIScore)
	return lead, nil
}

// ConvertToAccount converts a qualified lead into an account plus, when the
// lead carries contact details, a contact. All writes happen inside one
// transaction; a lead converts at most once.
func (s *leadServiceImpl) ConvertToAccount(id string) (*ConversionResult, error) {
	lead, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if lead.Converted {
		return nil, apperrors.AlreadyConverted(fmt.Sprintf("lead %s is already converted", id))
	}

	result := &ConversionResult{}
	if lead.Status != models.LeadStatusQualified {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("lead status is %s, not Qualified", lead.Status))
	}

	err = s.repos.Tx.WithTransaction(func(txRepos *repository.Repositories) error {
		// Re-read inside the transaction so two concurrent conversions
		// cannot both pass the converted check.
		current, err := txRepos.Lead.GetByID(lead.ID)
		if err != nil {
			return leadError(id, err)
		}
		if current.Converted {
			return apperrors.AlreadyConverted(fmt.Sprintf("lead %s is already converted", id))
		}

		account := &models.Account{
			AccountName:    current.OutletName,
			AccountType:    accountTypeForPlatform(current.Platform),
			AccountTier:    models.AccountTierBronze,
			Status:         models.AccountStatusProspect,
			Website:        current.Website,
			Phone:          current.ContactPhone,
			CurrentStage:   models.StageOnboarding,
			StageStatus:    models.StageStatusNotStarted,
			RiskLevel:      models.RiskLevelLow,
			SentimentScore: current.SentimentScore,
		}
		account.HealthScore = scoring.AccountHealth(accountInput(account))
		if err := txRepos.Account.Create(account); err != nil {
			return apperrors.DatabaseError("failed to create account", err)
		}
		result.AccountID = account.ID.String()

		if current.ContactName != "" || current.ContactEmail != "" {
			first, last := splitName(current.ContactName)
			contact := &models.Contact{
				AccountID: account.ID,
				FirstName: first,
				LastName:  last,
				Email:     current.ContactEmail,
				Phone:     current.ContactPhone,
			}
			if err := txRepos.Contact.Create(contact); err != nil {
				return apperrors.DatabaseError("failed to create contact", err)
			}
			contactID := contact.ID.String()
			result.ContactID = &contactID
		}

		current.Converted = true
		current.Status = models.LeadStatusConverted
		current.ConvertedTo = &account.ID
		if err := txRepos.Lead.Update(current); err != nil {
			return leadError(id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("lead converted", "lead_id", id, "account_id", result.AccountID)
	return result, nil
}

// Enrich fetches the lead's website and fills in missing contact fields from
// the parsed profile. Fields already set on the lead are never overwritten.
func (s *leadServiceImpl) Enrich(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if lead.Website == "" {
		return nil, apperrors.ValidationError("lead has no website to enrich from", nil)
	}

	profile, err := s.fetcher.Fetch(ctx, lead.Website)
	if err != nil {
		return nil, apperrors.InternalError("failed to enrich lead from website", err).
			WithOperation("enrich")
	}

	changed := false
	if lead.ContactEmail == "" && profile.Email != "" {
		lead.ContactEmail = profile.Email
		changed = true
	}
	if lead.ContactPhone == "" && profile.Phone != "" {
		lead.ContactPhone = profile.Phone
		changed = true
	}
	if lead.Notes == "" && profile.Description != "" {
		lead.Notes = profile.Description
		changed = true
	}

	if !changed {
		return lead, nil
	}

	s.applyScores(lead)
	if err := s.repos.Lead.Update(lead); err != nil {
		return nil, leadError(id, err)
	}

	s.log.Info("lead enriched", "lead_id", id)
	return lead, nil
}

// applyScores refreshes the derived score fields on a lead in place
func (s *leadServiceImpl) applyScores(lead *models.Lead) {
	lead.AIScore = scoring.LeadScore(scoring.LeadInput{
		Quality:        lead.LeadQuality,
		Status:         lead.Status,
		Source:         lead.Source,
		EstimatedValue: lead.EstimatedValue,
		ContactName:    lead.ContactName,
		ContactEmail:   lead.ContactEmail,
		ContactPhone:   lead.ContactPhone,
	})
	lead.SentimentScore, lead.SentimentLabel = scoring.Sentiment(lead.Notes, scoring.DefaultNegativeWeight)
}

// accountTypeForPlatform maps a lead's platform field onto an account type
func accountTypeForPlatform(platform string) models.AccountType {
	switch strings.ToLower(platform) {
	case "salon":
		return models.AccountTypeSalon
	case "spa":
		return models.AccountTypeSpa
	case "barbershop", "barber":
		return models.AccountTypeBarbershop
	case "distributor":
		return models.AccountTypeDistributor
	default:
		return models.AccountTypeOther
	}
}

// splitName splits a full name into first name and remainder
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func accountInput(a *models.Account) scoring.AccountInput {
	return scoring.AccountInput{
		Status:        a.Status,
		Tier:          a.AccountTier,
		AnnualRevenue: a.AnnualRevenue,
		Website:       a.Website,
		Phone:         a.Phone,
		Address:       a.Address,
	}
}

// leadError maps a repository error for a lead to an AppError
func leadError(id string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound(fmt.Sprintf("lead %s not found", id), err)
	}
	return apperrors.DatabaseError("lead operation failed", err)
}
