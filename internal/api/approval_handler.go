package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/crm-api/internal/services"
)

// ApprovalHandler handles the discount approval workflow
type ApprovalHandler struct {
	approvalService services.ApprovalService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// RequestApproval opens a discount approval request against an opportunity
func (h *ApprovalHandler) RequestApproval(c *gin.Context) {
	var form services.ApprovalRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	approval, err := h.approvalService.Request(c.Param("id"), &form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"approval": approval})
}

// GetOpportunityApprovals returns the approval history for an opportunity
func (h *ApprovalHandler) GetOpportunityApprovals(c *gin.Context) {
	approvals, err := h.approvalService.GetByOpportunity(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"approvals": approvals,
		"count":     len(approvals),
	})
}

// SubmitApproval moves a draft approval to pending
func (h *ApprovalHandler) SubmitApproval(c *gin.Context) {
	approval, err := h.approvalService.Submit(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approval": approval})
}

type decisionRequest struct {
	Comments string `json:"comments"`
}

// ApproveApproval approves a pending request
func (h *ApprovalHandler) ApproveApproval(c *gin.Context) {
	var req decisionRequest
	_ = c.ShouldBindJSON(&req)

	approval, err := h.approvalService.Approve(c.Param("id"), req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approval": approval})
}

// RejectApproval rejects a pending request
func (h *ApprovalHandler) RejectApproval(c *gin.Context) {
	var req decisionRequest
	_ = c.ShouldBindJSON(&req)

	approval, err := h.approvalService.Reject(c.Param("id"), req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approval": approval})
}

// WithdrawApproval withdraws a draft or pending request
func (h *ApprovalHandler) WithdrawApproval(c *gin.Context) {
	approval, err := h.approvalService.Withdraw(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approval": approval})
}

type escalateRequest struct {
	Approver string `json:"approver" binding:"required"`
}

// EscalateApproval reassigns a pending request to a new approver
func (h *ApprovalHandler) EscalateApproval(c *gin.Context) {
	var req escalateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	approval, warnings, err := h.approvalService.Escalate(c.Param("id"), req.Approver)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"approval": approval,
		"warnings": warnings,
	})
}
