package repository

import "fmt"

// Scope is the actor-dependent slice of the ticket universe. It is computed
// once per request and threaded into every ticket query; a zero Scope matches
// nothing (fail-closed).
type Scope struct {
	All      bool
	ClientID *string
	StaffID  *string
}

// ScopeAll matches every ticket (admins).
func ScopeAll() Scope { return Scope{All: true} }

// ScopeClient matches tickets owned by the given client.
func ScopeClient(clientID string) Scope { return Scope{ClientID: &clientID} }

// ScopeStaff matches tickets assigned to the given staff member.
func ScopeStaff(staffID string) Scope { return Scope{StaffID: &staffID} }

// ScopeNone matches nothing.
func ScopeNone() Scope { return Scope{} }

// Empty reports whether the scope matches nothing.
func (s Scope) Empty() bool {
	return !s.All && s.ClientID == nil && s.StaffID == nil
}

// Contains evaluates scope membership for a ticket's owner/assignee pair.
func (s Scope) Contains(clientID string, assignedStaffID *string) bool {
	if s.All {
		return true
	}
	if s.ClientID != nil {
		return *s.ClientID == clientID
	}
	if s.StaffID != nil {
		return assignedStaffID != nil && *s.StaffID == *assignedStaffID
	}
	return false
}

// clause renders the scope as a SQL predicate over the tickets table,
// appending bind values to args. The alias prefixes column references.
func (s Scope) clause(alias string, args *[]any) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	switch {
	case s.All:
		return "1=1"
	case s.ClientID != nil:
		*args = append(*args, *s.ClientID)
		return fmt.Sprintf("%sclient_id=$%d", prefix, len(*args))
	case s.StaffID != nil:
		*args = append(*args, *s.StaffID)
		return fmt.Sprintf("%sassigned_staff_id=$%d", prefix, len(*args))
	default:
		return "1=0"
	}
}
