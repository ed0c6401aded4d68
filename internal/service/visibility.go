package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// visibility resolves an actor into a ticket Scope. It is the single place
// the role → visible-set rules live; every ticket read and every report goes
// through it.
type visibility struct {
	clients repository.ClientRepository
	staff   repository.StaffRepository
}

// scopeFor computes the visible ticket set for the actor. Admins see all,
// staff see their assigned tickets, clients their own; anything else gets
// the empty scope.
func (v *visibility) scopeFor(ctx context.Context, actor *domain.User) (repository.Scope, error) {
	if actor == nil {
		return repository.ScopeNone(), nil
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return repository.ScopeAll(), nil
	case domain.RoleStaff:
		staff, err := v.staff.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ScopeNone(), nil
			}
			return repository.ScopeNone(), err
		}
		return repository.ScopeStaff(staff.ID), nil
	case domain.RoleClient:
		client, err := v.clients.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ScopeNone(), nil
			}
			return repository.ScopeNone(), err
		}
		return repository.ScopeClient(client.ID), nil
	default:
		return repository.ScopeNone(), nil
	}
}
