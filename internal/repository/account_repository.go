package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const accountColumns = `id, account_name, account_type, account_tier, status,
	annual_revenue, estimated_monthly_gmv, website, phone, address,
	health_score, sentiment_score, risk_level, current_timeline_stage,
	timeline_stage_status, timeline_notes, priority_score, priority_rating,
	created_at, updated_at`

// accountRepository implements AccountRepository
type accountRepository struct {
	db dbExecutor
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db dbExecutor) AccountRepository {
	return &accountRepository{db: db}
}

func scanAccount(row interface{ Scan(...interface{}) error }) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.AccountName, &account.AccountType, &account.AccountTier,
		&account.Status, &account.AnnualRevenue, &account.EstimatedMonthlyGMV,
		&account.Website, &account.Phone, &account.Address, &account.HealthScore,
		&account.SentimentScore, &account.RiskLevel, &account.CurrentStage,
		&account.StageStatus, &account.TimelineNotes, &account.PriorityScore,
		&account.PriorityRating, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetAll retrieves accounts with filters
func (r *accountRepository) GetAll(filters AccountFilters) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	addInFilter := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, v)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ",")))
	}

	addInFilter("status", filters.Status)
	addInFilter("account_tier", filters.Tier)
	addInFilter("account_type", filters.Type)
	addInFilter("risk_level", filters.RiskLevel)

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(query,
		account.ID, account.AccountName, account.AccountType, account.AccountTier,
		account.Status, account.AnnualRevenue, account.EstimatedMonthlyGMV,
		account.Website, account.Phone, account.Address, account.HealthScore,
		account.SentimentScore, account.RiskLevel, account.CurrentStage,
		account.StageStatus, account.TimelineNotes, account.PriorityScore,
		account.PriorityRating, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Update updates an existing account
func (r *accountRepository) Update(account *models.Account) error {
	account.UpdatedAt = time.Now()

	query := `
		UPDATE accounts SET
			account_name = $2, account_type = $3, account_tier = $4, status = $5,
			annual_revenue = $6, estimated_monthly_gmv = $7, website = $8, phone = $9,
			address = $10, health_score = $11, sentiment_score = $12, risk_level = $13,
			current_timeline_stage = $14, timeline_stage_status = $15,
			timeline_notes = $16, priority_score = $17, priority_rating = $18,
			updated_at = $19
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		account.ID, account.AccountName, account.AccountType, account.AccountTier,
		account.Status, account.AnnualRevenue, account.EstimatedMonthlyGMV,
		account.Website, account.Phone, account.Address, account.HealthScore,
		account.SentimentScore, account.RiskLevel, account.CurrentStage,
		account.StageStatus, account.TimelineNotes, account.PriorityScore,
		account.PriorityRating, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %s: %w", account.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes an account
func (r *accountRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}

	return nil
}
