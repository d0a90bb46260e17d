package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const approvalColumns = `id, opportunity_id, requested_by, approver, previous_approver,
	status, requested_discount, reason, comments, priority, requested_at,
	decided_at, created_at, updated_at`

// approvalRepository implements ApprovalRepository
type approvalRepository struct {
	db dbExecutor
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db dbExecutor) ApprovalRepository {
	return &approvalRepository{db: db}
}

func scanApproval(row interface{ Scan(...interface{}) error }) (*models.Approval, error) {
	a := &models.Approval{}
	err := row.Scan(
		&a.ID, &a.OpportunityID, &a.RequestedBy, &a.Approver, &a.PreviousApprover,
		&a.Status, &a.RequestedDiscount, &a.Reason, &a.Comments, &a.Priority,
		&a.RequestedAt, &a.DecidedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an approval by ID
func (r *approvalRepository) GetByID(id uuid.UUID) (*models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE id = $1`

	approval, err := scanApproval(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("approval %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}

	return approval, nil
}

// GetByOpportunity retrieves all approvals for an opportunity, newest first
func (r *approvalRepository) GetByOpportunity(opportunityID uuid.UUID) ([]models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE opportunity_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	var approvals []models.Approval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, *approval)
	}

	return approvals, rows.Err()
}

// HasPendingForOpportunity reports whether the opportunity has any approval
// still in Draft or Pending
func (r *approvalRepository) HasPendingForOpportunity(opportunityID uuid.UUID) (bool, error) {
	query := `SELECT COUNT(*) FROM approvals WHERE opportunity_id = $1 AND status IN ($2, $3)`

	var count int
	err := r.db.QueryRow(query, opportunityID, models.ApprovalStatusDraft, models.ApprovalStatusPending).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count pending approvals: %w", err)
	}

	return count > 0, nil
}

// Create creates a new approval request
func (r *approvalRepository) Create(approval *models.Approval) error {
	if approval.ID == uuid.Nil {
		approval.ID = uuid.New()
	}

	now := time.Now()
	approval.CreatedAt = now
	approval.UpdatedAt = now

	query := `
		INSERT INTO approvals (` + approvalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(query,
		approval.ID, approval.OpportunityID, approval.RequestedBy, approval.Approver,
		approval.PreviousApprover, approval.Status, approval.RequestedDiscount,
		approval.Reason, approval.Comments, approval.Priority, approval.RequestedAt,
		approval.DecidedAt, approval.CreatedAt, approval.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create approval: %w", err)
	}

	return nil
}

// Update updates an existing approval
func (r *approvalRepository) Update(approval *models.Approval) error {
	approval.UpdatedAt = time.Now()

	query := `
		UPDATE approvals SET
			opportunity_id = $2, requested_by = $3, approver = $4,
			previous_approver = $5, status = $6, requested_discount = $7,
			reason = $8, comments = $9, priority = $10, requested_at = $11,
			decided_at = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		approval.ID, approval.OpportunityID, approval.RequestedBy, approval.Approver,
		approval.PreviousApprover, approval.Status, approval.RequestedDiscount,
		approval.Reason, approval.Comments, approval.Priority, approval.RequestedAt,
		approval.DecidedAt, approval.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("approval %s: %w", approval.ID, ErrNotFound)
	}

	return nil
}
