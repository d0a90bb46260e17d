package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const opportunityColumns = `id, account_id, opportunity_name, stage, amount,
	probability, expected_revenue, ai_win_score, discount_percent, close_date,
	close_reason, notes, created_at, updated_at`

// opportunityRepository implements OpportunityRepository
type opportunityRepository struct {
	db dbExecutor
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db dbExecutor) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func scanOpportunity(row interface{ Scan(...interface{}) error }) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	err := row.Scan(
		&o.ID, &o.AccountID, &o.OpportunityName, &o.Stage, &o.Amount,
		&o.Probability, &o.ExpectedRevenue, &o.AIWinScore, &o.DiscountPercent,
		&o.CloseDate, &o.CloseReason, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID retrieves an opportunity by ID
func (r *opportunityRepository) GetByID(id uuid.UUID) (*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	opp, err := scanOpportunity(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	return opp, nil
}

// GetByAccount retrieves all opportunities for an account
func (r *opportunityRepository) GetByAccount(accountID uuid.UUID) ([]models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE account_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opps = append(opps, *opp)
	}

	return opps, rows.Err()
}

// Create creates a new opportunity
func (r *opportunityRepository) Create(opp *models.Opportunity) error {
	if opp.ID == uuid.Nil {
		opp.ID = uuid.New()
	}

	now := time.Now()
	opp.CreatedAt = now
	opp.UpdatedAt = now

	query := `
		INSERT INTO opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(query,
		opp.ID, opp.AccountID, opp.OpportunityName, opp.Stage, opp.Amount,
		opp.Probability, opp.ExpectedRevenue, opp.AIWinScore, opp.DiscountPercent,
		opp.CloseDate, opp.CloseReason, opp.Notes, opp.CreatedAt, opp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	return nil
}

// Update updates an existing opportunity
func (r *opportunityRepository) Update(opp *models.Opportunity) error {
	opp.UpdatedAt = time.Now()

	query := `
		UPDATE opportunities SET
			account_id = $2, opportunity_name = $3, stage = $4, amount = $5,
			probability = $6, expected_revenue = $7, ai_win_score = $8,
			discount_percent = $9, close_date = $10, close_reason = $11,
			notes = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		opp.ID, opp.AccountID, opp.OpportunityName, opp.Stage, opp.Amount,
		opp.Probability, opp.ExpectedRevenue, opp.AIWinScore, opp.DiscountPercent,
		opp.CloseDate, opp.CloseReason, opp.Notes, opp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("opportunity %s: %w", opp.ID, ErrNotFound)
	}

	return nil
}
