package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/services"
)

// ProspectHandler handles prospect operations
type ProspectHandler struct {
	prospectService services.ProspectService
}

// NewProspectHandler creates a new prospect handler
func NewProspectHandler(prospectService services.ProspectService) *ProspectHandler {
	return &ProspectHandler{prospectService: prospectService}
}

// GetProspects returns prospects with pagination
func (h *ProspectHandler) GetProspects(c *gin.Context) {
	prospects, err := h.prospectService.GetAll(intQuery(c, "limit", 100), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prospects": prospects,
		"count":     len(prospects),
	})
}

// GetProspect returns a single prospect
func (h *ProspectHandler) GetProspect(c *gin.Context) {
	prospect, err := h.prospectService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prospect": prospect})
}

// CreateProspect creates a new prospect
func (h *ProspectHandler) CreateProspect(c *gin.Context) {
	var prospect models.Prospect
	if err := c.ShouldBindJSON(&prospect); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.prospectService.Create(&prospect); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prospect": prospect})
}

// UpdateProspect updates an existing prospect
func (h *ProspectHandler) UpdateProspect(c *gin.Context) {
	prospect, err := h.prospectService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(prospect); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.prospectService.Update(prospect); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prospect": prospect})
}

// ConvertProspect converts a prospect into an account, contact and opportunity
func (h *ProspectHandler) ConvertProspect(c *gin.Context) {
	var form services.ProspectConversionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.prospectService.ConvertToAccount(c.Param("id"), &form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversion": result})
}
