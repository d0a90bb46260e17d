package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
)

// escalationWindow is how long an approval should wait before escalation is
// expected. Escalating earlier works but returns a warning.
const escalationWindow = 72 * time.Hour

// approvalServiceImpl implements ApprovalService
type approvalServiceImpl struct {
	repos *repository.Repositories
	log   logger.Logger
}

// newApprovalService creates a new approval service implementation
func newApprovalService(repos *repository.Repositories, log logger.Logger) ApprovalService {
	return &approvalServiceImpl{
		repos: repos,
		log:   log,
	}
}

// Request creates a discount approval request against an opportunity. The
// discount cap is enforced before any row is written; requests enter the
// workflow directly in Pending.
func (s *approvalServiceImpl) Request(opportunityID string, form *ApprovalRequestForm) (*models.Approval, error) {
	if form.RequestedDiscount > models.MaxDiscountPercent {
		return nil, apperrors.ValidationError(
			fmt.Sprintf("requested discount %.1f%% exceeds the %.0f%% cap",
				form.RequestedDiscount, models.MaxDiscountPercent), nil)
	}
	if form.RequestedDiscount < 0 {
		return nil, apperrors.ValidationError("requested discount cannot be negative", nil)
	}

	oppID, err := uuid.Parse(opportunityID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid opportunity ID", err)
	}

	if _, err := s.repos.Opportunity.GetByID(oppID); err != nil {
		return nil, opportunityError(opportunityID, err)
	}

	approval := &models.Approval{
		OpportunityID:     oppID,
		RequestedBy:       form.RequestedBy,
		Approver:          form.Approver,
		Status:            models.ApprovalStatusPending,
		RequestedDiscount: form.RequestedDiscount,
		Reason:            form.Reason,
		Priority:          models.ApprovalPriorityNormal,
		RequestedAt:       time.Now(),
	}

	if err := s.repos.Approval.Create(approval); err != nil {
		return nil, apperrors.DatabaseError("failed to create approval", err)
	}

	s.log.Info("approval requested", "approval_id", approval.ID.String(),
		"opportunity_id", opportunityID, "discount", form.RequestedDiscount)
	return approval, nil
}

// GetByOpportunity retrieves the approval history for an opportunity
func (s *approvalServiceImpl) GetByOpportunity(opportunityID string) ([]models.Approval, error) {
	oppID, err := uuid.Parse(opportunityID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid opportunity ID", err)
	}

	approvals, err := s.repos.Approval.GetByOpportunity(oppID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get approvals", err)
	}

	return approvals, nil
}

// Submit moves a Draft approval to Pending
func (s *approvalServiceImpl) Submit(id string) (*models.Approval, error) {
	approval, err := s.getApproval(id)
	if err != nil {
		return nil, err
	}

	if approval.Status != models.ApprovalStatusDraft {
		return nil, transitionError(approval)
	}

	approval.Status = models.ApprovalStatusPending
	approval.RequestedAt = time.Now()

	if err := s.repos.Approval.Update(approval); err != nil {
		return nil, approvalError(id, err)
	}

	return approval, nil
}

// Approve moves a Pending approval to Approved. Approved is terminal.
func (s *approvalServiceImpl) Approve(id string, comments string) (*models.Approval, error) {
	return s.decide(id, models.ApprovalStatusApproved, comments)
}

// Reject moves a Pending approval to Rejected. Rejected is terminal.
func (s *approvalServiceImpl) Reject(id string, comments string) (*models.Approval, error) {
	return s.decide(id, models.ApprovalStatusRejected, comments)
}

func (s *approvalServiceImpl) decide(id string, status models.ApprovalStatus, comments string) (*models.Approval, error) {
	approval, err := s.getApproval(id)
	if err != nil {
		return nil, err
	}

	if approval.Status != models.ApprovalStatusPending {
		return nil, transitionError(approval)
	}

	now := time.Now()
	approval.Status = status
	approval.Comments = comments
	approval.DecidedAt = &now

	if err := s.repos.Approval.Update(approval); err != nil {
		return nil, approvalError(id, err)
	}

	s.log.Info("approval decided", "approval_id", id, "status", status)
	return approval, nil
}

// Withdraw ends a Draft or Pending approval
func (s *approvalServiceImpl) Withdraw(id string) (*models.Approval, error) {
	approval, err := s.getApproval(id)
	if err != nil {
		return nil, err
	}

	if approval.Status != models.ApprovalStatusDraft && approval.Status != models.ApprovalStatusPending {
		return nil, transitionError(approval)
	}

	now := time.Now()
	approval.Status = models.ApprovalStatusWithdrawn
	approval.DecidedAt = &now

	if err := s.repos.Approval.Update(approval); err != nil {
		return nil, approvalError(id, err)
	}

	return approval, nil
}

// Escalate reassigns a Pending approval to a new approver at Urgent priority.
// Escalating before the 72h window has elapsed succeeds with a warning.
func (s *approvalServiceImpl) Escalate(id string, newApprover string) (*models.Approval, []string, error) {
	approval, err := s.getApproval(id)
	if err != nil {
		return nil, nil, err
	}

	if approval.Status != models.ApprovalStatusPending {
		return nil, nil, transitionError(approval)
	}
	if newApprover == "" {
		return nil, nil, apperrors.ValidationError("new approver is required", nil)
	}

	var warnings []string
	if waited := time.Since(approval.RequestedAt); waited < escalationWindow {
		warnings = append(warnings, fmt.Sprintf(
			"escalated after %.0fh, before the %.0fh window elapsed",
			waited.Hours(), escalationWindow.Hours()))
	}

	approval.PreviousApprover = approval.Approver
	approval.Approver = newApprover
	approval.Priority = models.ApprovalPriorityUrgent

	if err := s.repos.Approval.Update(approval); err != nil {
		return nil, nil, approvalError(id, err)
	}

	s.log.Info("approval escalated", "approval_id", id, "approver", newApprover)
	return approval, warnings, nil
}

func (s *approvalServiceImpl) getApproval(id string) (*models.Approval, error) {
	approvalID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid approval ID", err)
	}

	approval, err := s.repos.Approval.GetByID(approvalID)
	if err != nil {
		return nil, approvalError(id, err)
	}

	return approval, nil
}

// transitionError reports the blocked transition in terms of the current state
func transitionError(approval *models.Approval) error {
	return apperrors.InvalidTransition(
		fmt.Sprintf("approval %s is already %s", approval.ID, approval.Status))
}

// approvalError maps a repository error for an approval to an AppError
func approvalError(id string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound(fmt.Sprintf("approval %s not found", id), err)
	}
	return apperrors.DatabaseError("approval operation failed", err)
}
