package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketFilter captures listing parameters. Scope is mandatory; the other
// fields mirror the query filters the list endpoint accepts.
type TicketFilter struct {
	Scope           Scope
	Statuses        []domain.TicketStatus
	IssueID         *string
	AssignedStaffID *string
	SearchTerm      *string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	Limit           int
	Offset          int
}

// TicketRepository encapsulates ticket persistence. Every read is
// scope-restricted; a ticket outside the scope behaves as if absent.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, scope Scope, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// TransitionStatus applies a validated transition atomically: the status
	// swap (compare-and-swap on the expected prior status), the timestamp
	// stamps and the activity row commit together or not at all. A lost race
	// surfaces as CONCURRENT_MODIFICATION.
	TransitionStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus, activity *domain.TicketActivity) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, client_id, issue_id, sub_issue_id, assigned_staff_id,
               description, status, created_at, updated_at, assigned_at, started_at, resolved_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, client_id, issue_id, sub_issue_id, description, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.ClientID,
		ticket.IssueID,
		ticket.SubIssueID,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, scope Scope, id string) (*domain.Ticket, error) {
	args := []any{id}
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1 AND %s`,
		ticketColumns, scope.clause("", &args))

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.ClientID,
		&ticket.IssueID,
		&ticket.SubIssueID,
		&ticket.AssignedStaffID,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.AssignedAt,
		&ticket.StartedAt,
		&ticket.ResolvedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	args := []any{}
	clauses := []string{filter.Scope.clause("", &args)}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.IssueID != nil {
		args = append(args, *filter.IssueID)
		clauses = append(clauses, fmt.Sprintf("issue_id=$%d", len(args)))
	}
	if filter.AssignedStaffID != nil {
		args = append(args, *filter.AssignedStaffID)
		clauses = append(clauses, fmt.Sprintf("assigned_staff_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(description) LIKE %s OR ticket_number::text LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) TransitionStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus, activity *domain.TicketActivity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const update = `
        UPDATE tickets
        SET status=$1, assigned_staff_id=$2, assigned_at=$3, started_at=$4, resolved_at=$5, closed_at=$6, updated_at=NOW()
        WHERE id=$7 AND status=$8`
	cmd, err := tx.Exec(ctx, update,
		ticket.Status,
		ticket.AssignedStaffID,
		ticket.AssignedAt,
		ticket.StartedAt,
		ticket.ResolvedAt,
		ticket.ClosedAt,
		ticket.ID,
		expected,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConcurrentModification(ticket.ID)
	}

	const insert = `
        INSERT INTO ticket_activities (ticket_id, changed_by_user_id, old_status, new_status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		activity.TicketID,
		activity.ChangedByUserID,
		activity.OldStatus,
		activity.NewStatus,
	).Scan(&activity.ID, &activity.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.ClientID,
			&ticket.IssueID,
			&ticket.SubIssueID,
			&ticket.AssignedStaffID,
			&ticket.Description,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.AssignedAt,
			&ticket.StartedAt,
			&ticket.ResolvedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
