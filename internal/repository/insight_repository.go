package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const alertColumns = `id, account_id, alert_type, severity, description, is_resolved, created_at, updated_at`

const recommendationColumns = `id, account_id, rec_type, text, priority, status, created_at, updated_at`

// insightRepository implements InsightRepository
type insightRepository struct {
	db dbExecutor
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(db dbExecutor) InsightRepository {
	return &insightRepository{db: db}
}

func scanAlert(row interface{ Scan(...interface{}) error }) (*models.RiskAlert, error) {
	a := &models.RiskAlert{}
	err := row.Scan(
		&a.ID, &a.AccountID, &a.AlertType, &a.Severity, &a.Description,
		&a.IsResolved, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanRecommendation(row interface{ Scan(...interface{}) error }) (*models.Recommendation, error) {
	rec := &models.Recommendation{}
	err := row.Scan(
		&rec.ID, &rec.AccountID, &rec.RecType, &rec.Text, &rec.Priority,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateAlert inserts a new risk alert. Alerts are never deduplicated or
// deleted; each scoring run appends its detections.
func (r *insightRepository) CreateAlert(alert *models.RiskAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}

	now := time.Now()
	alert.CreatedAt = now
	alert.UpdatedAt = now

	query := `
		INSERT INTO risk_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		alert.ID, alert.AccountID, alert.AlertType, alert.Severity,
		alert.Description, alert.IsResolved, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create risk alert: %w", err)
	}

	return nil
}

// GetAlertsByAccount retrieves risk alerts for an account, newest first
func (r *insightRepository) GetAlertsByAccount(accountID uuid.UUID, unresolvedOnly bool) ([]models.RiskAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM risk_alerts WHERE account_id = $1`
	if unresolvedOnly {
		query += ` AND is_resolved = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.RiskAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan risk alert: %w", err)
		}
		alerts = append(alerts, *alert)
	}

	return alerts, rows.Err()
}

// ResolveAlert marks a risk alert as resolved
func (r *insightRepository) ResolveAlert(id uuid.UUID) error {
	query := `UPDATE risk_alerts SET is_resolved = TRUE, updated_at = $2 WHERE id = $1`

	result, err := r.db.Exec(query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to resolve risk alert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("risk alert %s: %w", id, ErrNotFound)
	}

	return nil
}

// CreateRecommendation inserts a new recommendation
func (r *insightRepository) CreateRecommendation(rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = models.RecStatusNew
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `
		INSERT INTO recommendations (` + recommendationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		rec.ID, rec.AccountID, rec.RecType, rec.Text, rec.Priority,
		rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	return nil
}

// GetRecommendationsByAccount retrieves recommendations for an account, newest first
func (r *insightRepository) GetRecommendationsByAccount(accountID uuid.UUID) ([]models.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, *rec)
	}

	return recs, rows.Err()
}

// UpdateRecommendationStatus updates the status of a recommendation
func (r *insightRepository) UpdateRecommendationStatus(id uuid.UUID, status models.RecommendationStatus) error {
	query := `UPDATE recommendations SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
	}

	return nil
}
