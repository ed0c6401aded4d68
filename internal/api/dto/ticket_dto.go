package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	IssueID     string `json:"issue_id"`
	SubIssueID  string `json:"sub_issue_id"`
	Description string `json:"description"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status          domain.TicketStatus `json:"status"`
	AssignedStaffID *string             `json:"assigned_staff_id,omitempty"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID              string              `json:"id"`
	TicketNumber    string              `json:"ticket_number"`
	ClientID        string              `json:"client_id"`
	IssueID         string              `json:"issue_id"`
	SubIssueID      string              `json:"sub_issue_id"`
	AssignedStaffID *string             `json:"assigned_staff_id"`
	Description     string              `json:"description"`
	Status          domain.TicketStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	AssignedAt      *time.Time          `json:"assigned_at"`
	StartedAt       *time.Time          `json:"started_at"`
	ResolvedAt      *time.Time          `json:"resolved_at"`
	ClosedAt        *time.Time          `json:"closed_at"`
}

// TicketListResponse wraps a page of tickets.
type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// AllowedTransitionsResponse lists the statuses the actor may move the
// ticket into from its current status.
type AllowedTransitionsResponse struct {
	Current domain.TicketStatus   `json:"current"`
	Allowed []domain.TicketStatus `json:"allowed"`
}

// TicketActivityResponse is one audit ledger entry.
type TicketActivityResponse struct {
	ID              string              `json:"id"`
	TicketID        string              `json:"ticket_id"`
	ChangedByUserID *string             `json:"changed_by_user_id"`
	OldStatus       domain.TicketStatus `json:"old_status"`
	NewStatus       domain.TicketStatus `json:"new_status"`
	CreatedAt       time.Time           `json:"created_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              ticket.ID,
		TicketNumber:    ticket.TicketNumber,
		ClientID:        ticket.ClientID,
		IssueID:         ticket.IssueID,
		SubIssueID:      ticket.SubIssueID,
		AssignedStaffID: ticket.AssignedStaffID,
		Description:     ticket.Description,
		Status:          ticket.Status,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
		AssignedAt:      ticket.AssignedAt,
		StartedAt:       ticket.StartedAt,
		ResolvedAt:      ticket.ResolvedAt,
		ClosedAt:        ticket.ClosedAt,
	}
}

// NewTicketActivityResponse maps a ledger entry.
func NewTicketActivityResponse(activity domain.TicketActivity) TicketActivityResponse {
	return TicketActivityResponse{
		ID:              activity.ID,
		TicketID:        activity.TicketID,
		ChangedByUserID: activity.ChangedByUserID,
		OldStatus:       activity.OldStatus,
		NewStatus:       activity.NewStatus,
		CreatedAt:       activity.CreatedAt,
	}
}
