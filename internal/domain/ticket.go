package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The lifecycle is a
// linear chain: CREATED → ASSIGNED → STARTED → RESOLVED → CLOSED.
type TicketStatus string

const (
	TicketStatusCreated  TicketStatus = "CREATED"
	TicketStatusAssigned TicketStatus = "ASSIGNED"
	TicketStatusStarted  TicketStatus = "STARTED"
	TicketStatusResolved TicketStatus = "RESOLVED"
	TicketStatusClosed   TicketStatus = "CLOSED"
)

// AllStatuses lists every status in chain order. Reports rely on this to
// zero-fill counts.
var AllStatuses = []TicketStatus{
	TicketStatusCreated,
	TicketStatusAssigned,
	TicketStatusStarted,
	TicketStatusResolved,
	TicketStatusClosed,
}

// statusChain is the single source of truth for legal transitions,
// independent of role. No skipping, no reverse transitions.
var statusChain = map[TicketStatus][]TicketStatus{
	TicketStatusCreated:  {TicketStatusAssigned},
	TicketStatusAssigned: {TicketStatusStarted},
	TicketStatusStarted:  {TicketStatusResolved},
	TicketStatusResolved: {TicketStatusClosed},
	TicketStatusClosed:   {},
}

// IsValid checks membership in the status set.
func (s TicketStatus) IsValid() bool {
	_, ok := statusChain[s]
	return ok
}

// IsTerminal reports whether the status admits no further transitions.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed
}

// NextStatuses returns the base-table allowed set for the given status.
func NextStatuses(current TicketStatus) []TicketStatus {
	next := statusChain[current]
	out := make([]TicketStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the base table permits current → next.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range statusChain[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for client issue reports.
type Ticket struct {
	ID              string
	TicketNumber    string
	ClientID        string
	IssueID         string
	SubIssueID      string
	AssignedStaffID *string
	Description     string
	Status          TicketStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AssignedAt      *time.Time
	StartedAt       *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
}

// AllowedTransitions returns the role-filtered allowed set for the ticket's
// current status. Clients may never transition; staff may do everything but
// close; admins get the full base table.
func (t *Ticket) AllowedTransitions(role Role) []TicketStatus {
	switch role {
	case RoleAdmin:
		return NextStatuses(t.Status)
	case RoleStaff:
		allowed := make([]TicketStatus, 0, 1)
		for _, status := range NextStatuses(t.Status) {
			if status == TicketStatusClosed {
				continue
			}
			allowed = append(allowed, status)
		}
		return allowed
	default:
		return []TicketStatus{}
	}
}

// StampStatusTime sets the timestamp field matching the entered status.
func (t *Ticket) StampStatusTime(status TicketStatus, now time.Time) {
	switch status {
	case TicketStatusAssigned:
		t.AssignedAt = &now
	case TicketStatusStarted:
		t.StartedAt = &now
	case TicketStatusResolved:
		t.ResolvedAt = &now
	case TicketStatusClosed:
		t.ClosedAt = &now
	}
}
