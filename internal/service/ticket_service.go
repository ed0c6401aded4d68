package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketService coordinates the ticket lifecycle: creation, the status state
// machine, visibility-scoped reads and the activity ledger.
type TicketService struct {
	tickets    repository.TicketRepository
	activities repository.ActivityRepository
	clients    repository.ClientRepository
	staff      repository.StaffRepository
	catalog    repository.CatalogRepository
	dispatcher events.Dispatcher
	visibility *visibility
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ActivityRepo repository.ActivityRepository
	ClientRepo   repository.ClientRepository
	StaffRepo    repository.StaffRepository
	CatalogRepo  repository.CatalogRepository
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	IssueID     string
	SubIssueID  string
	Description string
}

// TicketListFilter describes listing filters; visibility scoping is applied
// on top of these.
type TicketListFilter struct {
	Statuses        []domain.TicketStatus
	IssueID         *string
	AssignedStaffID *string
	SearchTerm      *string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	Limit           int
	Offset          int
}

// AllowedTransitionsResult pairs the current status with the role-filtered
// allowed set.
type AllowedTransitionsResult struct {
	Current domain.TicketStatus
	Allowed []domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		activities: deps.ActivityRepo,
		clients:    deps.ClientRepo,
		staff:      deps.StaffRepo,
		catalog:    deps.CatalogRepo,
		dispatcher: deps.Dispatcher,
		visibility: &visibility{clients: deps.ClientRepo, staff: deps.StaffRepo},
	}
}

// CreateTicket opens a new ticket for a client actor.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil || actor.Role != domain.RoleClient {
		return nil, apperrors.NewForbidden("only clients can create tickets")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	subIssue, err := s.catalog.GetSubIssue(ctx, input.SubIssueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sub-issue", map[string]any{"sub_issue_id": input.SubIssueID})
		}
		return nil, apperrors.MapError(err)
	}
	if subIssue.IssueID != input.IssueID {
		return nil, apperrors.NewCatalogMismatch()
	}

	client, err := s.clients.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client profile", nil)
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		TicketNumber: uuid.NewString(),
		ClientID:     client.ID,
		IssueID:      input.IssueID,
		SubIssueID:   input.SubIssueID,
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.TicketStatusCreated,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			IssueID:      ticket.IssueID,
			SubIssueID:   ticket.SubIssueID,
			ClientID:     ticket.ClientID,
		},
	})
	return ticket, nil
}

// ListTickets returns the actor's visible tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	scope, err := s.visibility.scopeFor(ctx, actor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Scope:           scope,
		Statuses:        filter.Statuses,
		IssueID:         filter.IssueID,
		AssignedStaffID: filter.AssignedStaffID,
		SearchTerm:      filter.SearchTerm,
		CreatedFrom:     filter.CreatedFrom,
		CreatedTo:       filter.CreatedTo,
		Limit:           filter.Limit,
		Offset:          filter.Offset,
	})
}

// GetTicket fetches one visible ticket. A ticket outside the actor's scope
// is indistinguishable from a missing one.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
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
	return ticket, nil
}

// UpdateStatus performs one lifecycle transition. Validation order: visibility,
// terminal state, base transition table, role policy, assignee rules. On
// success the status swap, timestamp stamp and ledger row commit atomically;
// a race against a stale status snapshot fails with CONCURRENT_MODIFICATION.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus, assigneeStaffID *string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleStaff {
		return nil, apperrors.NewForbidden("clients cannot update ticket status")
	}
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}

	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewTerminalState(ticket.TicketNumber)
	}
	if !domain.CanTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewIllegalTransition(string(ticket.Status), string(newStatus))
	}
	if actor.Role == domain.RoleStaff && newStatus == domain.TicketStatusClosed {
		return nil, apperrors.NewForbidden("staff cannot close tickets")
	}

	if assigneeStaffID != nil {
		assignee, err := s.staff.GetByID(ctx, *assigneeStaffID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": *assigneeStaffID})
			}
			return nil, apperrors.MapError(err)
		}
		if assignee.SpecialtyID != ticket.IssueID {
			return nil, apperrors.NewAssignmentMismatch(assignee.ID)
		}
		if !assignee.IsActive {
			return nil, apperrors.NewInactiveAssignee(assignee.ID)
		}
		ticket.AssignedStaffID = &assignee.ID
	}

	expected := ticket.Status
	ticket.Status = newStatus
	ticket.StampStatusTime(newStatus, time.Now())

	activity := &domain.TicketActivity{
		TicketID:        ticket.ID,
		ChangedByUserID: &actor.ID,
		OldStatus:       expected,
		NewStatus:       newStatus,
	}
	if err := s.tickets.TransitionStatus(ctx, ticket, expected, activity); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: expected,
			NewStatus: newStatus,
		},
	})
	if assigneeStaffID != nil && ticket.AssignedStaffID != nil {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			Actor:    eventActor(actor),
			Payload: events.TicketAssignedPayload{
				AssignedStaffID: *ticket.AssignedStaffID,
			},
		})
	}
	return ticket, nil
}

// AllowedTransitions returns the role-filtered allowed set for the ticket's
// current status. Pure query; never mutates.
func (s *TicketService) AllowedTransitions(ctx context.Context, actor *domain.User, ticketID string) (*AllowedTransitionsResult, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	return &AllowedTransitionsResult{
		Current: ticket.Status,
		Allowed: ticket.AllowedTransitions(actor.Role),
	}, nil
}

// ListActivity returns the ticket's audit trail newest-first, gated by the
// same visibility rule as the ticket itself.
func (s *TicketService) ListActivity(ctx context.Context, actor *domain.User, ticketID string) ([]domain.TicketActivity, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	entries, err := s.activities.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor *domain.User) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}
