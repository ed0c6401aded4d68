package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// StatusSummaryResponse holds a zero-filled count per lifecycle status.
type StatusSummaryResponse struct {
	Counts map[domain.TicketStatus]int `json:"counts"`
	Total  int                         `json:"total"`
}

// MonthlyCountResponse is one month bucket, oldest first in the list.
type MonthlyCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ClientCountResponse is a per-client ticket count.
type ClientCountResponse struct {
	ClientID    string `json:"client_id"`
	CompanyName string `json:"company_name"`
	Username    string `json:"username"`
	Count       int    `json:"count"`
}

// StaffCountResponse is a per-staff assigned ticket count.
type StaffCountResponse struct {
	StaffID  string `json:"staff_id"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}
