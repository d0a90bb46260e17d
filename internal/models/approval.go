package models

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus represents the discount approval workflow state
type ApprovalStatus string

const (
	ApprovalStatusDraft     ApprovalStatus = "Draft"
	ApprovalStatusPending   ApprovalStatus = "Pending"
	ApprovalStatusApproved  ApprovalStatus = "Approved"
	ApprovalStatusRejected  ApprovalStatus = "Rejected"
	ApprovalStatusWithdrawn ApprovalStatus = "Withdrawn"
)

// IsTerminal reports whether the status permits no further transitions.
// Approved and Rejected are immutable once reached; Withdrawn ends the
// workflow as well.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected || s == ApprovalStatusWithdrawn
}

// ApprovalPriority represents request urgency
type ApprovalPriority string

const (
	ApprovalPriorityNormal ApprovalPriority = "Normal"
	ApprovalPriorityUrgent ApprovalPriority = "Urgent"
)

// MaxDiscountPercent is the largest discount that may be requested at all.
const MaxDiscountPercent = 25.0

// Approval represents a discount approval request against an opportunity
type Approval struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	OpportunityID     uuid.UUID        `json:"opportunity_id" db:"opportunity_id"`
	RequestedBy       string           `json:"requested_by" db:"requested_by"`
	Approver          string           `json:"approver" db:"approver"`
	PreviousApprover  string           `json:"previous_approver" db:"previous_approver"`
	Status            ApprovalStatus   `json:"status" db:"status"`
	RequestedDiscount float64          `json:"requested_discount" db:"requested_discount"`
	Reason            string           `json:"reason" db:"reason"`
	Comments          string           `json:"comments" db:"comments"`
	Priority          ApprovalPriority `json:"priority" db:"priority"`
	RequestedAt       time.Time        `json:"requested_at" db:"requested_at"`
	DecidedAt         *time.Time       `json:"decided_at" db:"decided_at"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}
