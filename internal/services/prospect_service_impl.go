package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/scoring"
)

// prospectServiceImpl implements ProspectService
type prospectServiceImpl struct {
	repos *repository.Repositories
	log   logger.Logger
}

// newProspectService creates a new prospect service implementation
func newProspectService(repos *repository.Repositories, log logger.Logger) ProspectService {
	return &prospectServiceImpl{
		repos: repos,
		log:   log,
	}
}

// GetByID retrieves a prospect by ID
func (s *prospectServiceImpl) GetByID(id string) (*models.Prospect, error) {
	prospectID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid prospect ID", err)
	}

	prospect, err := s.repos.Prospect.GetByID(prospectID)
	if err != nil {
		return nil, prospectError(id, err)
	}

	return prospect, nil
}

// GetAll retrieves prospects with pagination
func (s *prospectServiceImpl) GetAll(limit, offset int) ([]models.Prospect, error) {
	prospects, err := s.repos.Prospect.GetAll(limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get prospects", err)
	}
	return prospects, nil
}

// Create creates a new prospect
func (s *prospectServiceImpl) Create(prospect *models.Prospect) error {
	if prospect.ProspectName == "" {
		return apperrors.ValidationError("prospect_name is required", nil)
	}
	if prospect.Status == "" {
		prospect.Status = models.ProspectStatusNew
	}

	if err := s.repos.Prospect.Create(prospect); err != nil {
		return apperrors.DatabaseError("failed to create prospect", err)
	}

	return nil
}

// Update updates an existing prospect
func (s *prospectServiceImpl) Update(prospect *models.Prospect) error {
	if err := s.repos.Prospect.Update(prospect); err != nil {
		return prospectError(prospect.ID.String(), err)
	}
	return nil
}

// ConvertToAccount converts a prospect into an account, contact and
// opportunity in one transaction. Validation failures reject the conversion
// before anything is written; a failure mid-transaction rolls everything back
// and leaves the prospect unconverted.
func (s *prospectServiceImpl) ConvertToAccount(id string, form *ProspectConversionForm) (*ConversionResult, error) {
	prospect, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if prospect.Status == models.ProspectStatusConverted {
		return nil, apperrors.AlreadyConverted(fmt.Sprintf("prospect %s is already converted", id))
	}

	var missing []string
	if form.AccountName == "" {
		missing = append(missing, "account_name")
	}
	if form.OpportunityName == "" {
		missing = append(missing, "opportunity_name")
	}
	if form.CloseDate == nil {
		missing = append(missing, "close_date")
	}
	if len(missing) > 0 {
		return nil, apperrors.ValidationError(
			"missing required fields: "+strings.Join(missing, ", "), nil)
	}

	result := &ConversionResult{}

	err = s.repos.Tx.WithTransaction(func(txRepos *repository.Repositories) error {
		current, err := txRepos.Prospect.GetByID(prospect.ID)
		if err != nil {
			return prospectError(id, err)
		}
		if current.Status == models.ProspectStatusConverted {
			return apperrors.AlreadyConverted(fmt.Sprintf("prospect %s is already converted", id))
		}

		accountType := accountTypeForPlatform(form.AccountType)
		if form.AccountType == "" {
			accountType = accountTypeForPlatform(current.BusinessType)
		}

		// The form owns the contact. Only when it names no contact at all
		// does the prospect's stored contact fill in.
		contactName := form.ContactName
		contactEmail := form.ContactEmail
		contactPhone := form.ContactPhone
		if contactName == "" && contactEmail == "" {
			contactName = current.ContactName
			contactEmail = current.ContactEmail
		}
		if contactPhone == "" {
			contactPhone = current.ContactPhone
		}

		account := &models.Account{
			AccountName:  form.AccountName,
			AccountType:  accountType,
			AccountTier:  models.AccountTierBronze,
			Status:       models.AccountStatusProspect,
			Phone:        contactPhone,
			CurrentStage: models.StageOnboarding,
			StageStatus:  models.StageStatusNotStarted,
			RiskLevel:    models.RiskLevelLow,
		}
		account.HealthScore = scoring.AccountHealth(accountInput(account))
		if err := txRepos.Account.Create(account); err != nil {
			return apperrors.DatabaseError("failed to create account", err)
		}
		result.AccountID = account.ID.String()

		if contactName != "" || contactEmail != "" {
			first, last := splitName(contactName)
			contact := &models.Contact{
				AccountID: account.ID,
				FirstName: first,
				LastName:  last,
				Email:     contactEmail,
				Phone:     contactPhone,
				Role:      form.ContactRole,
			}
			if err := txRepos.Contact.Create(contact); err != nil {
				return apperrors.DatabaseError("failed to create contact", err)
			}
			contactID := contact.ID.String()
			result.ContactID = &contactID
		}

		opp := &models.Opportunity{
			AccountID:       account.ID,
			OpportunityName: form.OpportunityName,
			Stage:           models.OppStageProspecting,
			Probability:     conversionProbability(form, current),
			CloseDate:       form.CloseDate,
			Notes:           current.Notes,
		}
		opp.Amount = current.EstimatedValue
		if form.Amount != nil {
			opp.Amount = *form.Amount
		}
		opp.RecalculateExpectedRevenue()
		opp.AIWinScore = scoring.WinProbability(scoring.OpportunityInput{
			Stage:       opp.Stage,
			Amount:      opp.Amount,
			Probability: opp.Probability,
			Notes:       opp.Notes,
		})
		if err := txRepos.Opportunity.Create(opp); err != nil {
			return apperrors.DatabaseError("failed to create opportunity", err)
		}
		oppID := opp.ID.String()
		result.OpportunityID = &oppID

		current.Status = models.ProspectStatusConverted
		if err := txRepos.Prospect.Update(current); err != nil {
			return prospectError(id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("prospect converted", "prospect_id", id, "account_id", result.AccountID)
	return result, nil
}

// conversionProbability picks the opportunity probability: the form value
// wins, then the prospect score, then 50.
func conversionProbability(form *ProspectConversionForm, prospect *models.Prospect) int {
	if form.Probability != nil {
		return *form.Probability
	}
	if prospect.ProspectScore > 0 {
		return prospect.ProspectScore
	}
	return 50
}

// prospectError maps a repository error for a prospect to an AppError
func prospectError(id string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound(fmt.Sprintf("prospect %s not found", id), err)
	}
	return apperrors.DatabaseError("prospect operation failed", err)
}
