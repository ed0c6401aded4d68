package domain

import "time"

// Issue is a top-level problem category. Staff specialties map 1:1 to issues.
type Issue struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubIssue is a child category; every sub-issue belongs to exactly one issue.
type SubIssue struct {
	ID        string
	IssueID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyType classifies client companies.
type CompanyType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
