package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/auth"
	"github.com/glowdesk/crm-api/internal/database"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/services"
	"github.com/glowdesk/crm-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *database.DB, cfg *config.Config, log logger.Logger) error {
	svcs := services.NewServices(db.DB, cfg, log)

	authHandler := NewAuthHandler(svcs.Auth)
	leadHandler := NewLeadHandler(svcs.Lead)
	prospectHandler := NewProspectHandler(svcs.Prospect)
	accountHandler := NewAccountHandler(svcs.Account)
	opportunityHandler := NewOpportunityHandler(svcs.Opportunity)
	approvalHandler := NewApprovalHandler(svcs.Approval)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.RefreshToken)

		public.GET("/health", healthHandler(db))
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	{
		// Leads
		protected.GET("/leads", leadHandler.GetLeads)
		protected.GET("/leads/:id", leadHandler.GetLead)
		protected.POST("/leads", leadHandler.CreateLead)
		protected.PUT("/leads/:id", leadHandler.UpdateLead)
		protected.POST("/leads/:id/score", leadHandler.ScoreLead)
		protected.POST("/leads/:id/qualify", leadHandler.QualifyLead)
		protected.POST("/leads/:id/convert", leadHandler.ConvertLead)
		protected.POST("/leads/:id/enrich", leadHandler.EnrichLead)

		// Prospects
		protected.GET("/prospects", prospectHandler.GetProspects)
		protected.GET("/prospects/:id", prospectHandler.GetProspect)
		protected.POST("/prospects", prospectHandler.CreateProspect)
		protected.PUT("/prospects/:id", prospectHandler.UpdateProspect)
		protected.POST("/prospects/:id/convert", prospectHandler.ConvertProspect)

		// Accounts
		protected.GET("/accounts", accountHandler.GetAccounts)
		protected.GET("/accounts/:id", accountHandler.GetAccount)
		protected.POST("/accounts", accountHandler.CreateAccount)
		protected.PUT("/accounts/:id", accountHandler.UpdateAccount)
		protected.POST("/accounts/:id/score", accountHandler.ScoreAccount)
		protected.GET("/accounts/:id/recommendations", accountHandler.GetRecommendations)
		protected.GET("/accounts/:id/alerts", accountHandler.GetAccountAlerts)
		protected.POST("/accounts/:id/timeline", accountHandler.UpdateTimeline)
		protected.GET("/accounts/:id/opportunities", opportunityHandler.GetAccountOpportunities)

		// Insights
		protected.POST("/alerts/:id/resolve", accountHandler.ResolveAlert)
		protected.POST("/recommendations/:id/status", accountHandler.UpdateRecommendationStatus)

		// Opportunities
		protected.GET("/opportunities/:id", opportunityHandler.GetOpportunity)
		protected.POST("/opportunities", opportunityHandler.CreateOpportunity)
		protected.PUT("/opportunities/:id", opportunityHandler.UpdateOpportunity)
		protected.POST("/opportunities/:id/stage", opportunityHandler.MoveStage)
		protected.POST("/opportunities/:id/won", opportunityHandler.MarkWon)
		protected.POST("/opportunities/:id/lost", opportunityHandler.MarkLost)
		protected.POST("/opportunities/:id/approvals", approvalHandler.RequestApproval)
		protected.GET("/opportunities/:id/approvals", approvalHandler.GetOpportunityApprovals)

		// Approval workflow
		protected.POST("/approvals/:id/submit", approvalHandler.SubmitApproval)
		protected.POST("/approvals/:id/approve", approvalHandler.ApproveApproval)
		protected.POST("/approvals/:id/reject", approvalHandler.RejectApproval)
		protected.POST("/approvals/:id/withdraw", approvalHandler.WithdrawApproval)
		protected.POST("/approvals/:id/escalate", approvalHandler.EscalateApproval)
	}

	return nil
}

// healthHandler reports service and database health
func healthHandler(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		httpStatus := http.StatusOK
		if err := db.HealthCheck(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
		})
	}
}
