package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ActivityRepository reads the append-only audit ledger. Rows are written
// only by TicketRepository.TransitionStatus, inside the transition
// transaction; no update or delete operation exists.
type ActivityRepository interface {
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketActivity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

// ListByTicket returns activity rows newest-first.
func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketActivity, error) {
	const query = `
        SELECT id, ticket_id, changed_by_user_id, old_status, new_status, created_at
        FROM ticket_activities WHERE ticket_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketActivity
	for rows.Next() {
		var activity domain.TicketActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.TicketID,
			&activity.ChangedByUserID,
			&activity.OldStatus,
			&activity.NewStatus,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
