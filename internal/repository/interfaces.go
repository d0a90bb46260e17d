package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	GetByID(id uuid.UUID) (*models.Lead, error)
	GetAll(filters LeadFilters) ([]models.Lead, error)
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	Delete(id uuid.UUID) error
}

// ProspectRepository defines the interface for prospect data access
type ProspectRepository interface {
	GetByID(id uuid.UUID) (*models.Prospect, error)
	GetAll(limit, offset int) ([]models.Prospect, error)
	Create(prospect *models.Prospect) error
	Update(prospect *models.Prospect) error
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	GetByID(id uuid.UUID) (*models.Account, error)
	GetAll(filters AccountFilters) ([]models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	GetByID(id uuid.UUID) (*models.Contact, error)
	GetByAccount(accountID uuid.UUID) ([]models.Contact, error)
	Create(contact *models.Contact) error
}

// OpportunityRepository defines the interface for opportunity data access
type OpportunityRepository interface {
	GetByID(id uuid.UUID) (*models.Opportunity, error)
	GetByAccount(accountID uuid.UUID) ([]models.Opportunity, error)
	Create(opp *models.Opportunity) error
	Update(opp *models.Opportunity) error
}

// CampaignRepository defines the interface for campaign data access
type CampaignRepository interface {
	GetByID(id uuid.UUID) (*models.Campaign, error)
	GetByAccount(accountID uuid.UUID) ([]models.Campaign, error)
	CountActiveByAccount(accountID uuid.UUID) (int, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
}

// InsightRepository defines the interface for risk alert and recommendation
// data access. Alerts are insert-only; resolution flips a flag.
type InsightRepository interface {
	CreateAlert(alert *models.RiskAlert) error
	GetAlertsByAccount(accountID uuid.UUID, unresolvedOnly bool) ([]models.RiskAlert, error)
	ResolveAlert(id uuid.UUID) error

	CreateRecommendation(rec *models.Recommendation) error
	GetRecommendationsByAccount(accountID uuid.UUID) ([]models.Recommendation, error)
	UpdateRecommendationStatus(id uuid.UUID, status models.RecommendationStatus) error
}

// ApprovalRepository defines the interface for approval data access
type ApprovalRepository interface {
	GetByID(id uuid.UUID) (*models.Approval, error)
	GetByOpportunity(opportunityID uuid.UUID) ([]models.Approval, error)
	HasPendingForOpportunity(opportunityID uuid.UUID) (bool, error)
	Create(approval *models.Approval) error
	Update(approval *models.Approval) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Lead        LeadRepository
	Prospect    ProspectRepository
	Account     AccountRepository
	Contact     ContactRepository
	Opportunity OpportunityRepository
	Campaign    CampaignRepository
	Insight     InsightRepository
	Approval    ApprovalRepository
	User        UserRepository
	Tx          TransactionManager
}

// LeadFilters defines filters for querying leads
type LeadFilters struct {
	Status     []string
	Quality    []string
	Source     []string
	Converted  *bool
	MinAIScore *int
	Limit      int
	Offset     int
}

// AccountFilters defines filters for querying accounts
type AccountFilters struct {
	Status    []string
	Tier      []string
	Type      []string
	RiskLevel []string
	Limit     int
	Offset    int
}
