package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/glowdesk/crm-api/internal/enrichment"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Lead        LeadService
	Prospect    ProspectService
	Account     AccountService
	Opportunity OpportunityService
	Approval    ApprovalService
	Auth        AuthService
}

// ConversionResult reports what a conversion materialized. ContactID and
// OpportunityID are nil when the conversion did not create one. Warnings are
// advisory and never fail the conversion.
type ConversionResult struct {
	AccountID     string   `json:"account_id"`
	ContactID     *string  `json:"contact_id,omitempty"`
	OpportunityID *string  `json:"opportunity_id,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ProspectConversionForm carries the caller-supplied fields for a prospect
// conversion. AccountName, OpportunityName and CloseDate are required. The
// contact fields are authoritative; the prospect's stored contact is used only
// when the form names no contact at all.
type ProspectConversionForm struct {
	AccountName     string     `json:"account_name"`
	OpportunityName string     `json:"opportunity_name"`
	CloseDate       *time.Time `json:"close_date"`
	Amount          *float64   `json:"amount"`
	Probability     *int       `json:"probability"`
	AccountType     string     `json:"account_type"`
	ContactName     string     `json:"contact_name"`
	ContactEmail    string     `json:"contact_email"`
	ContactPhone    string     `json:"contact_phone"`
	ContactRole     string     `json:"contact_role"`
}

// ApprovalRequestForm carries the fields for a new discount approval request
type ApprovalRequestForm struct {
	RequestedBy       string  `json:"requested_by"`
	Approver          string  `json:"approver"`
	RequestedDiscount float64 `json:"requested_discount"`
	Reason            string  `json:"reason"`
}

// AccountScoreResult bundles the rescored account with the alerts the run
// detected
type AccountScoreResult struct {
	Account   *models.Account    `json:"account"`
	NewAlerts []models.RiskAlert `json:"new_alerts"`
}

// LoginResponse is returned after a successful login or token refresh
type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// LeadService defines the interface for lead business logic
type LeadService interface {
	GetByID(id string) (*models.Lead, error)
	GetAll(filters repository.LeadFilters) ([]models.Lead, error)
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	UpdateAIScore(id string) (*models.Lead, error)
	Qualify(id string) (*models.Lead, error)
	ConvertToAccount(id string) (*ConversionResult, error)
	Enrich(ctx context.Context, id string) (*models.Lead, error)
}

// ProspectService defines the interface for prospect business logic
type ProspectService interface {
	GetByID(id string) (*models.Prospect, error)
	GetAll(limit, offset int) ([]models.Prospect, error)
	Create(prospect *models.Prospect) error
	Update(prospect *models.Prospect) error
	ConvertToAccount(id string, form *ProspectConversionForm) (*ConversionResult, error)
}

// AccountService defines the interface for account business logic
type AccountService interface {
	GetByID(id string) (*models.Account, error)
	GetAll(filters repository.AccountFilters) ([]models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	UpdateAIScore(id string) (*AccountScoreResult, error)
	GetRecommendations(id string) ([]models.Recommendation, error)
	UpdateRecommendationStatus(recID string, status string) error
	GetAlerts(id string, unresolvedOnly bool) ([]models.RiskAlert, error)
	ResolveAlert(alertID string) error
	UpdateTimelineStage(id string, stage, status, notes string) (*models.Account, error)
}

// OpportunityService defines the interface for opportunity business logic
type OpportunityService interface {
	GetByID(id string) (*models.Opportunity, error)
	GetByAccount(accountID string) ([]models.Opportunity, error)
	Create(opp *models.Opportunity) error
	Update(opp *models.Opportunity) error
	MoveToStage(id string, stage string) (*models.Opportunity, error)
	MarkAsWon(id string, reason string) (*models.Opportunity, error)
	MarkAsLost(id string, reason string) (*models.Opportunity, error)
}

// ApprovalService defines the interface for the discount approval workflow
type ApprovalService interface {
	Request(opportunityID string, form *ApprovalRequestForm) (*models.Approval, error)
	GetByOpportunity(opportunityID string) ([]models.Approval, error)
	Submit(id string) (*models.Approval, error)
	Approve(id string, comments string) (*models.Approval, error)
	Reject(id string, comments string) (*models.Approval, error)
	Withdraw(id string) (*models.Approval, error)
	Escalate(id string, newApprover string) (*models.Approval, []string, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Register(req *models.CreateUserRequest) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*LoginResponse, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger) *Services {
	repos := repository.NewRepositories(db)

	return &Services{
		Lead:        newLeadService(repos, enrichment.NewClient(), log),
		Prospect:    newProspectService(repos, log),
		Account:     newAccountService(repos, log),
		Opportunity: newOpportunityService(repos, log),
		Approval:    newApprovalService(repos, log),
		Auth:        newAuthService(repos, cfg),
	}
}
