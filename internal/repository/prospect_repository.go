package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const prospectColumns = `id, prospect_name, business_type, discovery_source,
	contact_name, contact_email, contact_phone, estimated_value, prospect_score,
	notes, status, created_at, updated_at`

// prospectRepository implements ProspectRepository
type prospectRepository struct {
	db dbExecutor
}

// NewProspectRepository creates a new prospect repository
func NewProspectRepository(db dbExecutor) ProspectRepository {
	return &prospectRepository{db: db}
}

func scanProspect(row interface{ Scan(...interface{}) error }) (*models.Prospect, error) {
	p := &models.Prospect{}
	err := row.Scan(
		&p.ID, &p.ProspectName, &p.BusinessType, &p.DiscoverySource,
		&p.ContactName, &p.ContactEmail, &p.ContactPhone, &p.EstimatedValue,
		&p.ProspectScore, &p.Notes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a prospect by ID
func (r *prospectRepository) GetByID(id uuid.UUID) (*models.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = $1`

	prospect, err := scanProspect(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("prospect %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get prospect: %w", err)
	}

	return prospect, nil
}

// GetAll retrieves prospects ordered by last update
func (r *prospectRepository) GetAll(limit, offset int) ([]models.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects ORDER BY updated_at DESC`

	var args []interface{}
	argIndex := 1
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prospects: %w", err)
	}
	defer rows.Close()

	var prospects []models.Prospect
	for rows.Next() {
		prospect, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prospect: %w", err)
		}
		prospects = append(prospects, *prospect)
	}

	return prospects, rows.Err()
}

// Create creates a new prospect
func (r *prospectRepository) Create(prospect *models.Prospect) error {
	if prospect.ID == uuid.Nil {
		prospect.ID = uuid.New()
	}

	now := time.Now()
	prospect.CreatedAt = now
	prospect.UpdatedAt = now

	query := `
		INSERT INTO prospects (` + prospectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(query,
		prospect.ID, prospect.ProspectName, prospect.BusinessType,
		prospect.DiscoverySource, prospect.ContactName, prospect.ContactEmail,
		prospect.ContactPhone, prospect.EstimatedValue, prospect.ProspectScore,
		prospect.Notes, prospect.Status, prospect.CreatedAt, prospect.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prospect: %w", err)
	}

	return nil
}

// Update updates an existing prospect
func (r *prospectRepository) Update(prospect *models.Prospect) error {
	prospect.UpdatedAt = time.Now()

	query := `
		UPDATE prospects SET
			prospect_name = $2, business_type = $3, discovery_source = $4,
			contact_name = $5, contact_email = $6, contact_phone = $7,
			estimated_value = $8, prospect_score = $9, notes = $10, status = $11,
			updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		prospect.ID, prospect.ProspectName, prospect.BusinessType,
		prospect.DiscoverySource, prospect.ContactName, prospect.ContactEmail,
		prospect.ContactPhone, prospect.EstimatedValue, prospect.ProspectScore,
		prospect.Notes, prospect.Status, prospect.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update prospect: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("prospect %s: %w", prospect.ID, ErrNotFound)
	}

	return nil
}
