package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// MonthlyCount is one bucket of the monthly trend.
type MonthlyCount struct {
	Month time.Time
	Count int
}

// ClientCount is one row of the per-client breakdown.
type ClientCount struct {
	ClientID    string
	CompanyName string
	Username    string
	Count       int
}

// StaffCount is one row of the per-staff breakdown. Unassigned tickets are
// excluded.
type StaffCount struct {
	StaffID  string
	Username string
	Count    int
}

// ReportRepository derives aggregate counts from the scoped ticket set.
type ReportRepository interface {
	StatusCounts(ctx context.Context, scope Scope) (map[domain.TicketStatus]int, error)
	MonthlyCounts(ctx context.Context, scope Scope) ([]MonthlyCount, error)
	ClientCounts(ctx context.Context, scope Scope) ([]ClientCount, error)
	StaffCounts(ctx context.Context, scope Scope) ([]StaffCount, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) StatusCounts(ctx context.Context, scope Scope) (map[domain.TicketStatus]int, error) {
	args := []any{}
	query := fmt.Sprintf(`
        SELECT status, COUNT(*) FROM tickets WHERE %s GROUP BY status`,
		scope.clause("", &args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *reportRepository) MonthlyCounts(ctx context.Context, scope Scope) ([]MonthlyCount, error) {
	args := []any{}
	query := fmt.Sprintf(`
        SELECT date_trunc('month', created_at) AS month, COUNT(*)
        FROM tickets WHERE %s
        GROUP BY month ORDER BY month ASC`,
		scope.clause("", &args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyCount
	for rows.Next() {
		var bucket MonthlyCount
		if err := rows.Scan(&bucket.Month, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func (r *reportRepository) ClientCounts(ctx context.Context, scope Scope) ([]ClientCount, error) {
	args := []any{}
	query := fmt.Sprintf(`
        SELECT c.id, c.company_name, u.username, COUNT(t.id)
        FROM tickets t
        JOIN clients c ON c.id = t.client_id
        JOIN users u ON u.id = c.user_id
        WHERE %s
        GROUP BY c.id, c.company_name, u.username
        ORDER BY u.username ASC`,
		scope.clause("t", &args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ClientCount
	for rows.Next() {
		var row ClientCount
		if err := rows.Scan(&row.ClientID, &row.CompanyName, &row.Username, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) StaffCounts(ctx context.Context, scope Scope) ([]StaffCount, error) {
	args := []any{}
	query := fmt.Sprintf(`
        SELECT s.id, u.username, COUNT(t.id)
        FROM tickets t
        JOIN staff_members s ON s.id = t.assigned_staff_id
        JOIN users u ON u.id = s.user_id
        WHERE %s
        GROUP BY s.id, u.username
        ORDER BY u.username ASC`,
		scope.clause("t", &args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffCount
	for rows.Next() {
		var row StaffCount
		if err := rows.Scan(&row.StaffID, &row.Username, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
