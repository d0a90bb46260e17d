package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/scoring"
)

// opportunityServiceImpl implements OpportunityService
type opportunityServiceImpl struct {
	repos *repository.Repositories
	log   logger.Logger
}

// newOpportunityService creates a new opportunity service implementation
func newOpportunityService(repos *repository.Repositories, log logger.Logger) OpportunityService {
	return &opportunityServiceImpl{
		repos: repos,
		log:   log,
	}
}

// GetByID retrieves an opportunity by ID
func (s *opportunityServiceImpl) GetByID(id string) (*models.Opportunity, error) {
	oppID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid opportunity ID", err)
	}

	opp, err := s.repos.Opportunity.GetByID(oppID)
	if err != nil {
		return nil, opportunityError(id, err)
	}

	return opp, nil
}

// GetByAccount retrieves all opportunities for an account
func (s *opportunityServiceImpl) GetByAccount(accountID string) ([]models.Opportunity, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid account ID", err)
	}

	opps, err := s.repos.Opportunity.GetByAccount(id)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get opportunities", err)
	}

	return opps, nil
}

// Create creates a new opportunity with derived fields computed
func (s *opportunityServiceImpl) Create(opp *models.Opportunity) error {
	if opp.OpportunityName == "" {
		return apperrors.ValidationError("opportunity_name is required", nil)
	}
	if opp.Stage == "" {
		opp.Stage = models.OppStageProspecting
	}
	if _, ok := models.StageDefaultProbability[opp.Stage]; !ok {
		return apperrors.InvalidStage(fmt.Sprintf("unknown opportunity stage %q", opp.Stage))
	}
	if opp.Probability == 0 {
		opp.Probability = models.StageDefaultProbability[opp.Stage]
	}

	s.applyDerived(opp)

	if err := s.repos.Opportunity.Create(opp); err != nil {
		return apperrors.DatabaseError("failed to create opportunity", err)
	}

	return nil
}

// Update updates an opportunity, keeping the derived fields consistent
func (s *opportunityServiceImpl) Update(opp *models.Opportunity) error {
	s.applyDerived(opp)

	if err := s.repos.Opportunity.Update(opp); err != nil {
		return opportunityError(opp.ID.String(), err)
	}

	return nil
}

// MoveToStage moves an opportunity to a new pipeline stage, resetting the
// probability to the stage default and recomputing the derived fields.
func (s *opportunityServiceImpl) MoveToStage(id string, stage string) (*models.Opportunity, error) {
	opp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStage := models.OpportunityStage(stage)
	probability, ok := models.StageDefaultProbability[newStage]
	if !ok {
		return nil, apperrors.InvalidStage(fmt.Sprintf("unknown opportunity stage %q", stage))
	}

	if opp.IsClosed() {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("opportunity %s is already closed (%s)", id, opp.Stage))
	}

	opp.Stage = newStage
	opp.Probability = probability
	s.applyDerived(opp)

	if err := s.repos.Opportunity.Update(opp); err != nil {
		return nil, opportunityError(id, err)
	}

	s.log.Info("opportunity moved", "opportunity_id", id, "stage", stage)
	return opp, nil
}

// MarkAsWon closes the opportunity as won. Refused while a discount approval
// is still open against it.
func (s *opportunityServiceImpl) MarkAsWon(id string, reason string) (*models.Opportunity, error) {
	return s.close(id, models.OppStageClosedWon, reason)
}

// MarkAsLost closes the opportunity as lost. Refused while a discount
// approval is still open against it.
func (s *opportunityServiceImpl) MarkAsLost(id string, reason string) (*models.Opportunity, error) {
	return s.close(id, models.OppStageClosedLost, reason)
}

func (s *opportunityServiceImpl) close(id string, stage models.OpportunityStage, reason string) (*models.Opportunity, error) {
	opp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if opp.IsClosed() {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("opportunity %s is already closed (%s)", id, opp.Stage))
	}

	pending, err := s.repos.Approval.HasPendingForOpportunity(opp.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to check approvals", err)
	}
	if pending {
		return nil, apperrors.ApprovalPending(
			fmt.Sprintf("opportunity %s has an open discount approval", id))
	}

	now := time.Now()
	opp.Stage = stage
	opp.Probability = models.StageDefaultProbability[stage]
	opp.CloseDate = &now
	opp.CloseReason = reason
	s.applyDerived(opp)

	if err := s.repos.Opportunity.Update(opp); err != nil {
		return nil, opportunityError(id, err)
	}

	s.log.Info("opportunity closed", "opportunity_id", id, "stage", stage)
	return opp, nil
}

// applyDerived recomputes expected revenue and the AI win score in place
func (s *opportunityServiceImpl) applyDerived(opp *models.Opportunity) {
	opp.RecalculateExpectedRevenue()
	opp.AIWinScore = scoring.WinProbability(scoring.OpportunityInput{
		Stage:           opp.Stage,
		Amount:          opp.Amount,
		Probability:     opp.Probability,
		DiscountPercent: opp.DiscountPercent,
		Notes:           opp.Notes,
	})
}

// opportunityError maps a repository error for an opportunity to an AppError
func opportunityError(id string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound(fmt.Sprintf("opportunity %s not found", id), err)
	}
	return apperrors.DatabaseError("opportunity operation failed", err)
}
