package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/services"
)

// OpportunityHandler handles opportunity operations
type OpportunityHandler struct {
	opportunityService services.OpportunityService
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// GetOpportunity returns a single opportunity
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	opp, err := h.opportunityService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// GetAccountOpportunities returns all opportunities for an account
func (h *OpportunityHandler) GetAccountOpportunities(c *gin.Context) {
	opps, err := h.opportunityService.GetByAccount(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"opportunities": opps,
		"count":         len(opps),
	})
}

// CreateOpportunity creates a new opportunity
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
	var opp models.Opportunity
	if err := c.ShouldBindJSON(&opp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.opportunityService.Create(&opp); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"opportunity": opp})
}

// UpdateOpportunity updates an existing opportunity
func (h *OpportunityHandler) UpdateOpportunity(c *gin.Context) {
	opp, err := h.opportunityService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(opp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.opportunityService.Update(opp); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

type stageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// MoveStage moves the opportunity to a new pipeline stage
func (h *OpportunityHandler) MoveStage(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	opp, err := h.opportunityService.MoveToStage(c.Param("id"), req.Stage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

type closeRequest struct {
	Reason string `json:"reason"`
}

// MarkWon closes the opportunity as won
func (h *OpportunityHandler) MarkWon(c *gin.Context) {
	var req closeRequest
	_ = c.ShouldBindJSON(&req)

	opp, err := h.opportunityService.MarkAsWon(c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// MarkLost closes the opportunity as lost
func (h *OpportunityHandler) MarkLost(c *gin.Context) {
	var req closeRequest
	_ = c.ShouldBindJSON(&req)

	opp, err := h.opportunityService.MarkAsLost(c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}
