package domain

import "time"

// TicketActivity is an immutable audit entry recording one status
// transition. Exactly one row is appended per successful transition; rows
// are never updated or deleted. ChangedByUserID goes nil when the acting
// account is later removed.
type TicketActivity struct {
	ID              string
	TicketID        string
	ChangedByUserID *string
	OldStatus       TicketStatus
	NewStatus       TicketStatus
	CreatedAt       time.Time
}
