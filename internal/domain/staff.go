package domain

import "time"

// Staff is the specialist profile owned 1:1 by a STAFF user. SpecialtyID
// names the single issue this member is eligible to work on.
type Staff struct {
	ID          string
	UserID      string
	SpecialtyID string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
