package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CatalogRepository handles the static issue/sub-issue/company-type
// reference data.
type CatalogRepository interface {
	CreateIssue(ctx context.Context, issue *domain.Issue) error
	GetIssue(ctx context.Context, id string) (*domain.Issue, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	CreateSubIssue(ctx context.Context, subIssue *domain.SubIssue) error
	GetSubIssue(ctx context.Context, id string) (*domain.SubIssue, error)
	ListSubIssues(ctx context.Context, issueID *string) ([]domain.SubIssue, error)
	CreateCompanyType(ctx context.Context, companyType *domain.CompanyType) error
	GetCompanyType(ctx context.Context, id string) (*domain.CompanyType, error)
	ListCompanyTypes(ctx context.Context) ([]domain.CompanyType, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository instantiates the repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) CreateIssue(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (name) VALUES ($1)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, issue.Name).
		Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
}

func (r *catalogRepository) GetIssue(ctx context.Context, id string) (*domain.Issue, error) {
	const query = `SELECT id, name, created_at, updated_at FROM issues WHERE id=$1`
	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID, &issue.Name, &issue.CreatedAt, &issue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *catalogRepository) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	const query = `SELECT id, name, created_at, updated_at FROM issues ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		if err := rows.Scan(&issue.ID, &issue.Name, &issue.CreatedAt, &issue.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}

func (r *catalogRepository) CreateSubIssue(ctx context.Context, subIssue *domain.SubIssue) error {
	const query = `
        INSERT INTO sub_issues (issue_id, name) VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, subIssue.IssueID, subIssue.Name).
		Scan(&subIssue.ID, &subIssue.CreatedAt, &subIssue.UpdatedAt)
}

func (r *catalogRepository) GetSubIssue(ctx context.Context, id string) (*domain.SubIssue, error) {
	const query = `SELECT id, issue_id, name, created_at, updated_at FROM sub_issues WHERE id=$1`
	var subIssue domain.SubIssue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&subIssue.ID, &subIssue.IssueID, &subIssue.Name, &subIssue.CreatedAt, &subIssue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &subIssue, nil
}

func (r *catalogRepository) ListSubIssues(ctx context.Context, issueID *string) ([]domain.SubIssue, error) {
	query := `SELECT id, issue_id, name, created_at, updated_at FROM sub_issues`
	args := []any{}
	if issueID != nil {
		query += ` WHERE issue_id=$1`
		args = append(args, *issueID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubIssues(rows)
}

func (r *catalogRepository) CreateCompanyType(ctx context.Context, companyType *domain.CompanyType) error {
	const query = `
        INSERT INTO company_types (name) VALUES ($1)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, companyType.Name).
		Scan(&companyType.ID, &companyType.CreatedAt, &companyType.UpdatedAt)
}

func (r *catalogRepository) GetCompanyType(ctx context.Context, id string) (*domain.CompanyType, error) {
	const query = `SELECT id, name, created_at, updated_at FROM company_types WHERE id=$1`
	var companyType domain.CompanyType
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&companyType.ID, &companyType.Name, &companyType.CreatedAt, &companyType.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &companyType, nil
}

func (r *catalogRepository) ListCompanyTypes(ctx context.Context) ([]domain.CompanyType, error) {
	const query = `SELECT id, name, created_at, updated_at FROM company_types ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CompanyType
	for rows.Next() {
		var companyType domain.CompanyType
		if err := rows.Scan(&companyType.ID, &companyType.Name, &companyType.CreatedAt, &companyType.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, companyType)
	}
	return result, rows.Err()
}

func scanSubIssues(rows pgx.Rows) ([]domain.SubIssue, error) {
	var result []domain.SubIssue
	for rows.Next() {
		var subIssue domain.SubIssue
		if err := rows.Scan(&subIssue.ID, &subIssue.IssueID, &subIssue.Name, &subIssue.CreatedAt, &subIssue.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, subIssue)
	}
	return result, rows.Err()
}
