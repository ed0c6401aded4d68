package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CatalogService exposes the issue/sub-issue/company-type reference data.
// Reads are open to any authenticated user; writes are admin only.
type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	issues, err := s.catalog.ListIssues(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return issues, nil
}

func (s *CatalogService) ListSubIssues(ctx context.Context, issueID *string) ([]domain.SubIssue, error) {
	subIssues, err := s.catalog.ListSubIssues(ctx, issueID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subIssues, nil
}

func (s *CatalogService) ListCompanyTypes(ctx context.Context) ([]domain.CompanyType, error) {
	types, err := s.catalog.ListCompanyTypes(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return types, nil
}

func (s *CatalogService) CreateIssue(ctx context.Context, actor *domain.User, name string) (*domain.Issue, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	issue := &domain.Issue{Name: name}
	if err := s.catalog.CreateIssue(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return issue, nil
}

func (s *CatalogService) CreateSubIssue(ctx context.Context, actor *domain.User, issueID, name string) (*domain.SubIssue, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if _, err := s.catalog.GetIssue(ctx, issueID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return nil, apperrors.MapError(err)
	}
	subIssue := &domain.SubIssue{IssueID: issueID, Name: name}
	if err := s.catalog.CreateSubIssue(ctx, subIssue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return subIssue, nil
}

func (s *CatalogService) CreateCompanyType(ctx context.Context, actor *domain.User, name string) (*domain.CompanyType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	companyType := &domain.CompanyType{Name: name}
	if err := s.catalog.CreateCompanyType(ctx, companyType); err != nil {
		return nil, apperrors.MapError(err)
	}
	return companyType, nil
}
