package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const leadColumns = `id, outlet_name, contact_name, contact_email, contact_phone, website,
	source, platform, lead_quality, status, estimated_value, ai_score,
	sentiment_score, sentiment_label, trend_score, notes, converted, converted_to,
	created_at, updated_at`

// leadRepository implements LeadRepository
type leadRepository struct {
	db dbExecutor
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db dbExecutor) LeadRepository {
	return &leadRepository{db: db}
}

func scanLead(row interface{ Scan(...interface{}) error }) (*models.Lead, error) {
	lead := &models.Lead{}
	err := row.Scan(
		&lead.ID, &lead.OutletName, &lead.ContactName, &lead.ContactEmail,
		&lead.ContactPhone, &lead.Website, &lead.Source, &lead.Platform,
		&lead.LeadQuality, &lead.Status, &lead.EstimatedValue, &lead.AIScore,
		&lead.SentimentScore, &lead.SentimentLabel, &lead.TrendScore, &lead.Notes,
		&lead.Converted, &lead.ConvertedTo, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *leadRepository) GetByID(id uuid.UUID) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lead %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// GetAll retrieves leads with filters
func (r *leadRepository) GetAll(filters LeadFilters) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if len(filters.Status) > 0 {
		placeholders := make([]string, len(filters.Status))
		for i, status := range filters.Status {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, status)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.Quality) > 0 {
		placeholders := make([]string, len(filters.Quality))
		for i, quality := range filters.Quality {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, quality)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("lead_quality IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.Source) > 0 {
		placeholders := make([]string, len(filters.Source))
		for i, source := range filters.Source {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, source)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("source IN (%s)", strings.Join(placeholders, ",")))
	}

	if filters.Converted != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("converted = $%d", argIndex))
		args = append(args, *filters.Converted)
		argIndex++
	}

	if filters.MinAIScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ai_score >= $%d", argIndex))
		args = append(args, *filters.MinAIScore)
		argIndex++
	}

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
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}

// Create creates a new lead
func (r *leadRepository) Create(lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}

	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(query,
		lead.ID, lead.OutletName, lead.ContactName, lead.ContactEmail,
		lead.ContactPhone, lead.Website, lead.Source, lead.Platform,
		lead.LeadQuality, lead.Status, lead.EstimatedValue, lead.AIScore,
		lead.SentimentScore, lead.SentimentLabel, lead.TrendScore, lead.Notes,
		lead.Converted, lead.ConvertedTo, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// Update updates an existing lead
func (r *leadRepository) Update(lead *models.Lead) error {
	lead.UpdatedAt = time.Now()

	query := `
		UPDATE leads SET
			outlet_name = $2, contact_name = $3, contact_email = $4, contact_phone = $5,
			website = $6, source = $7, platform = $8, lead_quality = $9, status = $10,
			estimated_value = $11, ai_score = $12, sentiment_score = $13,
			sentiment_label = $14, trend_score = $15, notes = $16, converted = $17,
			converted_to = $18, updated_at = $19
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		lead.ID, lead.OutletName, lead.ContactName, lead.ContactEmail,
		lead.ContactPhone, lead.Website, lead.Source, lead.Platform,
		lead.LeadQuality, lead.Status, lead.EstimatedValue, lead.AIScore,
		lead.SentimentScore, lead.SentimentLabel, lead.TrendScore, lead.Notes,
		lead.Converted, lead.ConvertedTo, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lead %s: %w", lead.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a lead
func (r *leadRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}

	return nil
}
