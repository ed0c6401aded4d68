package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Name string `json:"name"`
}

// CreateSubIssueRequest payload.
type CreateSubIssueRequest struct {
	IssueID string `json:"issue_id"`
	Name    string `json:"name"`
}

// CreateCompanyTypeRequest payload.
type CreateCompanyTypeRequest struct {
	Name string `json:"name"`
}

// IssueResponse view.
type IssueResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubIssueResponse view.
type SubIssueResponse struct {
	ID      string `json:"id"`
	IssueID string `json:"issue_id"`
	Name    string `json:"name"`
}

// CompanyTypeResponse view.
type CompanyTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewIssueResponse maps an issue.
func NewIssueResponse(issue domain.Issue) IssueResponse {
	return IssueResponse{ID: issue.ID, Name: issue.Name}
}

// NewSubIssueResponse maps a sub-issue.
func NewSubIssueResponse(subIssue domain.SubIssue) SubIssueResponse {
	return SubIssueResponse{ID: subIssue.ID, IssueID: subIssue.IssueID, Name: subIssue.Name}
}

// NewCompanyTypeResponse maps a company type.
func NewCompanyTypeResponse(companyType domain.CompanyType) CompanyTypeResponse {
	return CompanyTypeResponse{ID: companyType.ID, Name: companyType.Name}
}
