package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/services"
)

// AccountHandler handles account operations
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetAccounts returns accounts matching the query filters
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	filters := repository.AccountFilters{
		Status:    c.QueryArray("status"),
		Tier:      c.QueryArray("tier"),
		Type:      c.QueryArray("type"),
		RiskLevel: c.QueryArray("risk_level"),
		Limit:     intQuery(c, "limit", 100),
		Offset:    intQuery(c, "offset", 0),
	}

	accounts, err := h.accountService.GetAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// GetAccount returns a single account with health recomputed
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// CreateAccount creates a new account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.accountService.Create(&account); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// UpdateAccount updates an existing account
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	account, err := h.accountService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.accountService.Update(account); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// ScoreAccount recomputes health, sentiment, risk and priority, and records
// any risk alerts detected by the run
func (h *AccountHandler) ScoreAccount(c *gin.Context) {
	result, err := h.accountService.UpdateAIScore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":    result.Account,
		"new_alerts": result.NewAlerts,
	})
}

// GetRecommendations runs the recommendation rules and returns the account's
// recommendation list
func (h *AccountHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.accountService.GetRecommendations(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// GetAccountAlerts returns the risk alerts recorded for an account. Pass
// unresolved=true to hide resolved alerts.
func (h *AccountHandler) GetAccountAlerts(c *gin.Context) {
	unresolvedOnly := c.Query("unresolved") == "true"

	alerts, err := h.accountService.GetAlerts(c.Param("id"), unresolvedOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// ResolveAlert marks a risk alert as resolved
func (h *AccountHandler) ResolveAlert(c *gin.Context) {
	if err := h.accountService.ResolveAlert(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved": true})
}

type recommendationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRecommendationStatus moves a recommendation to a new workflow status
func (h *AccountHandler) UpdateRecommendationStatus(c *gin.Context) {
	var req recommendationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.accountService.UpdateRecommendationStatus(c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

type timelineRequest struct {
	Stage  string `json:"stage" binding:"required"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateTimeline moves the account to a new onboarding stage
func (h *AccountHandler) UpdateTimeline(c *gin.Context) {
	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateTimelineStage(c.Param("id"), req.Stage, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}
