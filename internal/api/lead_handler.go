package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/services"
)

// LeadHandler handles lead operations
type LeadHandler struct {
	leadService services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// GetLeads returns leads matching the query filters
func (h *LeadHandler) GetLeads(c *gin.Context) {
	filters := repository.LeadFilters{
		Status:  c.QueryArray("status"),
		Quality: c.QueryArray("quality"),
		Source:  c.QueryArray("source"),
		Limit:   intQuery(c, "limit", 100),
		Offset:  intQuery(c, "offset", 0),
	}

	if converted := c.Query("converted"); converted != "" {
		value := converted == "true"
		filters.Converted = &value
	}
	if minScore := c.Query("min_ai_score"); minScore != "" {
		if value, err := strconv.Atoi(minScore); err == nil {
			filters.MinAIScore = &value
		}
	}

	leads, err := h.leadService.GetAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

// GetLead returns a single lead
func (h *LeadHandler) GetLead(c *gin.Context) {
	lead, err := h.leadService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// CreateLead creates a new lead
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.leadService.Create(&lead); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

// UpdateLead updates an existing lead
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	lead, err := h.leadService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.leadService.Update(lead); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// ScoreLead recomputes the lead's AI score and sentiment
func (h *LeadHandler) ScoreLead(c *gin.Context) {
	lead, err := h.leadService.UpdateAIScore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lead":            lead,
		"ai_score":        lead.AIScore,
		"sentiment_score": lead.SentimentScore,
		"sentiment_label": lead.SentimentLabel,
	})
}

// QualifyLead transitions the lead to Qualified
func (h *LeadHandler) QualifyLead(c *gin.Context) {
	lead, err := h.leadService.Qualify(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// ConvertLead converts the lead into an account
func (h *LeadHandler) ConvertLead(c *gin.Context) {
	result, err := h.leadService.ConvertToAccount(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversion": result})
}

// EnrichLead fills missing lead contact fields from its website
func (h *LeadHandler) EnrichLead(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, 20*time.Second)
	defer cancel()

	lead, err := h.leadService.Enrich(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// intQuery reads an integer query parameter with a default
func intQuery(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return fallback
}
