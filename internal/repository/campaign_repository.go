package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

const campaignColumns = `id, account_id, campaign_name, channel, status, budget,
	spend, revenue, leads_generated, start_date, end_date, created_at, updated_at`

// campaignRepository implements CampaignRepository
type campaignRepository struct {
	db dbExecutor
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db dbExecutor) CampaignRepository {
	return &campaignRepository{db: db}
}

func scanCampaign(row interface{ Scan(...interface{}) error }) (*models.Campaign, error) {
	c := &models.Campaign{}
	err := row.Scan(
		&c.ID, &c.AccountID, &c.CampaignName, &c.Channel, &c.Status, &c.Budget,
		&c.Spend, &c.Revenue, &c.LeadsGenerated, &c.StartDate, &c.EndDate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a campaign by ID
func (r *campaignRepository) GetByID(id uuid.UUID) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	campaign, err := scanCampaign(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaign, nil
}

// GetByAccount retrieves all campaigns for an account
func (r *campaignRepository) GetByAccount(accountID uuid.UUID) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE account_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, *campaign)
	}

	return campaigns, rows.Err()
}

// CountActiveByAccount counts the active campaigns tied to an account
func (r *campaignRepository) CountActiveByAccount(accountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM campaigns WHERE account_id = $1 AND status = $2`

	var count int
	if err := r.db.QueryRow(query, accountID, models.CampaignStatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active campaigns: %w", err)
	}

	return count, nil
}

// Create creates a new campaign
func (r *campaignRepository) Create(campaign *models.Campaign) error {
	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}

	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(query,
		campaign.ID, campaign.AccountID, campaign.CampaignName, campaign.Channel,
		campaign.Status, campaign.Budget, campaign.Spend, campaign.Revenue,
		campaign.LeadsGenerated, campaign.StartDate, campaign.EndDate,
		campaign.CreatedAt, campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// Update updates an existing campaign
func (r *campaignRepository) Update(campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()

	query := `
		UPDATE campaigns SET
			account_id = $2, campaign_name = $3, channel = $4, status = $5,
			budget = $6, spend = $7, revenue = $8, leads_generated = $9,
			start_date = $10, end_date = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		campaign.ID, campaign.AccountID, campaign.CampaignName, campaign.Channel,
		campaign.Status, campaign.Budget, campaign.Spend, campaign.Revenue,
		campaign.LeadsGenerated, campaign.StartDate, campaign.EndDate,
		campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("campaign %s: %w", campaign.ID, ErrNotFound)
	}

	return nil
}
