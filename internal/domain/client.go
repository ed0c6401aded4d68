package domain

import "time"

// Client is the company profile owned 1:1 by a CLIENT user.
type Client struct {
	ID               string
	UserID           string
	CompanyName      string
	CompanyTypeID    string
	ContractDuration *string
	ContactEmail     string
	ContactPhone     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
