package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// StaffService manages staff specialist profiles and eligibility queries.
type StaffService struct {
	users      repository.UserRepository
	staff      repository.StaffRepository
	tickets    repository.TicketRepository
	catalog    repository.CatalogRepository
	clients    repository.ClientRepository
	bcryptCost int
	visibility *visibility
}

// StaffDependencies bundles repositories for the staff service.
type StaffDependencies struct {
	UserRepo    repository.UserRepository
	StaffRepo   repository.StaffRepository
	TicketRepo  repository.TicketRepository
	CatalogRepo repository.CatalogRepository
	ClientRepo  repository.ClientRepository
}

// StaffMember pairs a staff profile with its user account for responses.
type StaffMember struct {
	Staff domain.Staff
	User  domain.User
}

// CreateStaffInput describes admin staff provisioning payload.
type CreateStaffInput struct {
	Username    string
	Email       string
	Password    string
	SpecialtyID string
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, deps StaffDependencies) *StaffService {
	return &StaffService{
		users:      deps.UserRepo,
		staff:      deps.StaffRepo,
		tickets:    deps.TicketRepo,
		catalog:    deps.CatalogRepo,
		clients:    deps.ClientRepo,
		bcryptCost: cfg.Auth.BcryptCost,
		visibility: &visibility{clients: deps.ClientRepo, staff: deps.StaffRepo},
	}
}

func requireAdmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// EligibleStaff lists active staff whose specialty matches the ticket's
// issue. Clients are refused outright; a ticket outside the actor's
// visibility reads as missing.
func (s *StaffService) EligibleStaff(ctx context.Context, actor *domain.User, ticketID string) ([]StaffMember, error) {
	if actor == nil || actor.Role == domain.RoleClient {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}

	scope, err := s.visibility.scopeFor(ctx, actor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket, err := s.tickets.GetByID(ctx, scope, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	active := true
	candidates, err := s.staff.List(ctx, repository.StaffFilter{
		SpecialtyID: &ticket.IssueID,
		Active:      &active,
		Limit:       1000,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.withUsers(ctx, candidates)
}

// CreateStaffMember provisions a STAFF account with its specialist profile.
func (s *StaffService) CreateStaffMember(ctx context.Context, actor *domain.User, input CreateStaffInput) (*StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetIssue(ctx, input.SpecialtyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": input.SpecialtyID})
		}
		return nil, apperrors.MapError(err)
	}
	if existing, err := s.users.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": input.Username})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if existing, err := s.users.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": input.Email})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	staff := &domain.Staff{
		UserID:      user.ID,
		SpecialtyID: input.SpecialtyID,
		IsActive:    true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &StaffMember{Staff: *staff, User: *user}, nil
}

// UpdateStaffMember updates a staff member's specialty and active flag.
func (s *StaffService) UpdateStaffMember(ctx context.Context, actor *domain.User, staffID, specialtyID string, isActive bool) (*StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.catalog.GetIssue(ctx, specialtyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": specialtyID})
		}
		return nil, apperrors.MapError(err)
	}

	staff.SpecialtyID = specialtyID
	staff.IsActive = isActive
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, staff.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &StaffMember{Staff: *staff, User: *user}, nil
}

// ListStaffMembers lists staff with filters (admin only).
func (s *StaffService) ListStaffMembers(ctx context.Context, actor *domain.User, filter repository.StaffFilter) ([]StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	staffList, err := s.staff.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.withUsers(ctx, staffList)
}

func (s *StaffService) withUsers(ctx context.Context, staffList []domain.Staff) ([]StaffMember, error) {
	members := make([]StaffMember, 0, len(staffList))
	for _, staff := range staffList {
		user, err := s.users.GetByID(ctx, staff.UserID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		members = append(members, StaffMember{Staff: staff, User: *user})
	}
	return members, nil
}
