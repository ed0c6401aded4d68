package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

type TicketServiceSuite struct {
	suite.Suite

	ctx        context.Context
	store      *fakeStore
	dispatcher events.Dispatcher
	published  []events.Event
	service    *TicketService
	staffSvc   *StaffService

	admin      *domain.User
	staffUser  *domain.User
	staffUser2 *domain.User
	clientUser *domain.User
	otherUser  *domain.User

	staffNet      *domain.Staff
	staffBilling  *domain.Staff
	staffInactive *domain.Staff
	client        *domain.Client
	otherClient   *domain.Client

	issueNet     *domain.Issue
	issueBilling *domain.Issue
	subNet       *domain.SubIssue
	subBilling   *domain.SubIssue
}

func TestTicketServiceSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceSuite))
}

func (s *TicketServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newFakeStore()
	s.published = nil

	s.dispatcher = events.NewInMemoryDispatcher()
	record := func(ctx context.Context, event events.Event) error {
		s.published = append(s.published, event)
		return nil
	}
	s.dispatcher.Subscribe(events.EventTicketCreated, record)
	s.dispatcher.Subscribe(events.EventTicketStatusChanged, record)
	s.dispatcher.Subscribe(events.EventTicketAssigned, record)

	users := fakeUserRepo{store: s.store}
	clients := fakeClientRepo{store: s.store}
	staff := fakeStaffRepo{store: s.store}
	catalog := fakeCatalogRepo{store: s.store}

	s.service = NewTicketService(TicketDependencies{
		TicketRepo:   s.store,
		ActivityRepo: s.store,
		ClientRepo:   clients,
		StaffRepo:    staff,
		CatalogRepo:  catalog,
		Dispatcher:   s.dispatcher,
	})
	s.staffSvc = &StaffService{
		users:      users,
		staff:      staff,
		tickets:    s.store,
		catalog:    catalog,
		clients:    clients,
		visibility: &visibility{clients: clients, staff: staff},
	}

	s.issueNet = &domain.Issue{Name: "Network"}
	s.Require().NoError(catalog.CreateIssue(s.ctx, s.issueNet))
	s.issueBilling = &domain.Issue{Name: "Billing"}
	s.Require().NoError(catalog.CreateIssue(s.ctx, s.issueBilling))
	s.subNet = &domain.SubIssue{IssueID: s.issueNet.ID, Name: "VPN"}
	s.Require().NoError(catalog.CreateSubIssue(s.ctx, s.subNet))
	s.subBilling = &domain.SubIssue{IssueID: s.issueBilling.ID, Name: "Invoice"}
	s.Require().NoError(catalog.CreateSubIssue(s.ctx, s.subBilling))

	s.admin = s.newUser("admin", domain.RoleAdmin)
	s.staffUser = s.newUser("staff-net", domain.RoleStaff)
	s.staffUser2 = s.newUser("staff-billing", domain.RoleStaff)
	s.clientUser = s.newUser("acme", domain.RoleClient)
	s.otherUser = s.newUser("globex", domain.RoleClient)

	s.staffNet = &domain.Staff{UserID: s.staffUser.ID, SpecialtyID: s.issueNet.ID, IsActive: true}
	s.Require().NoError(staff.Create(s.ctx, s.staffNet))
	s.staffBilling = &domain.Staff{UserID: s.staffUser2.ID, SpecialtyID: s.issueBilling.ID, IsActive: true}
	s.Require().NoError(staff.Create(s.ctx, s.staffBilling))
	inactiveUser := s.newUser("staff-idle", domain.RoleStaff)
	s.staffInactive = &domain.Staff{UserID: inactiveUser.ID, SpecialtyID: s.issueNet.ID, IsActive: false}
	s.Require().NoError(staff.Create(s.ctx, s.staffInactive))

	s.client = &domain.Client{UserID: s.clientUser.ID, CompanyName: "Acme"}
	s.Require().NoError(clients.Create(s.ctx, s.client))
	s.otherClient = &domain.Client{UserID: s.otherUser.ID, CompanyName: "Globex"}
	s.Require().NoError(clients.Create(s.ctx, s.otherClient))
}

func (s *TicketServiceSuite) newUser(username string, role domain.Role) *domain.User {
	user := &domain.User{Username: username, Email: username + "@example.com", Role: role}
	s.Require().NoError(fakeUserRepo{store: s.store}.Create(s.ctx, user))
	return user
}

func (s *TicketServiceSuite) createTicket() *domain.Ticket {
	ticket, err := s.service.CreateTicket(s.ctx, s.clientUser, TicketCreateInput{
		IssueID:     s.issueNet.ID,
		SubIssueID:  s.subNet.ID,
		Description: "VPN tunnel keeps dropping",
	})
	s.Require().NoError(err)
	return ticket
}

func (s *TicketServiceSuite) assertCode(err error, code string) {
	s.Require().Error(err)
	var domainErr *apperrors.DomainError
	s.Require().ErrorAs(err, &domainErr)
	s.Equal(code, domainErr.Code)
}

func (s *TicketServiceSuite) TestCreateTicket() {
	ticket := s.createTicket()

	s.NotEmpty(ticket.ID)
	s.NotEmpty(ticket.TicketNumber)
	s.Equal(domain.TicketStatusCreated, ticket.Status)
	s.Equal(s.client.ID, ticket.ClientID)
	s.Nil(ticket.AssignedStaffID)

	s.Require().Len(s.published, 1)
	s.Equal(events.EventTicketCreated, s.published[0].Type)
}

func (s *TicketServiceSuite) TestCreateTicketForbiddenForNonClients() {
	for _, actor := range []*domain.User{s.admin, s.staffUser} {
		_, err := s.service.CreateTicket(s.ctx, actor, TicketCreateInput{
			IssueID:     s.issueNet.ID,
			SubIssueID:  s.subNet.ID,
			Description: "whatever",
		})
		s.assertCode(err, apperrors.CodeForbidden)
	}
}

func (s *TicketServiceSuite) TestCreateTicketCatalogMismatch() {
	_, err := s.service.CreateTicket(s.ctx, s.clientUser, TicketCreateInput{
		IssueID:     s.issueNet.ID,
		SubIssueID:  s.subBilling.ID,
		Description: "invoice is wrong",
	})
	s.assertCode(err, apperrors.CodeCatalogMismatch)
}

func (s *TicketServiceSuite) TestCreateTicketUnknownSubIssue() {
	_, err := s.service.CreateTicket(s.ctx, s.clientUser, TicketCreateInput{
		IssueID:     s.issueNet.ID,
		SubIssueID:  "missing",
		Description: "??",
	})
	s.assertCode(err, apperrors.CodeNotFound)
}

func (s *TicketServiceSuite) TestGetTicketVisibility() {
	ticket := s.createTicket()

	got, err := s.service.GetTicket(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	s.Equal(ticket.ID, got.ID)

	got, err = s.service.GetTicket(s.ctx, s.clientUser, ticket.ID)
	s.Require().NoError(err)
	s.Equal(ticket.ID, got.ID)

	// another client's ticket reads as missing, not forbidden
	_, err = s.service.GetTicket(s.ctx, s.otherUser, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)

	// staff see nothing until assigned
	_, err = s.service.GetTicket(s.ctx, s.staffUser, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)

	_, err = s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.Require().NoError(err)

	got, err = s.service.GetTicket(s.ctx, s.staffUser, ticket.ID)
	s.Require().NoError(err)
	s.Equal(ticket.ID, got.ID)

	// still invisible to a staff member assigned elsewhere
	_, err = s.service.GetTicket(s.ctx, s.staffUser2, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)
}

func (s *TicketServiceSuite) TestFullLifecycle() {
	ticket := s.createTicket()

	assigned, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusAssigned, assigned.Status)
	s.Require().NotNil(assigned.AssignedStaffID)
	s.Equal(s.staffNet.ID, *assigned.AssignedStaffID)
	s.NotNil(assigned.AssignedAt)

	started, err := s.service.UpdateStatus(s.ctx, s.staffUser, ticket.ID, domain.TicketStatusStarted, nil)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusStarted, started.Status)
	s.NotNil(started.StartedAt)

	resolved, err := s.service.UpdateStatus(s.ctx, s.staffUser, ticket.ID, domain.TicketStatusResolved, nil)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusResolved, resolved.Status)
	s.NotNil(resolved.ResolvedAt)

	// staff cannot close
	_, err = s.service.UpdateStatus(s.ctx, s.staffUser, ticket.ID, domain.TicketStatusClosed, nil)
	s.assertCode(err, apperrors.CodeForbidden)

	closed, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusClosed, nil)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusClosed, closed.Status)
	s.NotNil(closed.ClosedAt)

	activity, err := s.service.ListActivity(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	s.Require().Len(activity, 4)
	// newest first
	s.Equal(domain.TicketStatusClosed, activity[0].NewStatus)
	s.Equal(domain.TicketStatusResolved, activity[0].OldStatus)
	s.Equal(domain.TicketStatusAssigned, activity[3].NewStatus)
	s.Equal(domain.TicketStatusCreated, activity[3].OldStatus)
}

func (s *TicketServiceSuite) TestUpdateStatusForbiddenForClients() {
	ticket := s.createTicket()
	_, err := s.service.UpdateStatus(s.ctx, s.clientUser, ticket.ID, domain.TicketStatusAssigned, nil)
	s.assertCode(err, apperrors.CodeForbidden)
}

func (s *TicketServiceSuite) TestUpdateStatusSkipIsIllegal() {
	ticket := s.createTicket()
	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusStarted, nil)
	s.assertCode(err, apperrors.CodeIllegalTransition)
}

func (s *TicketServiceSuite) TestUpdateStatusReverseIsIllegal() {
	ticket := s.createTicket()
	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusCreated, nil)
	s.assertCode(err, apperrors.CodeIllegalTransition)
}

func (s *TicketServiceSuite) TestUpdateStatusTerminal() {
	ticket := s.createTicket()
	for _, step := range []struct {
		actor  *domain.User
		status domain.TicketStatus
		staff  *string
	}{
		{s.admin, domain.TicketStatusAssigned, &s.staffNet.ID},
		{s.staffUser, domain.TicketStatusStarted, nil},
		{s.staffUser, domain.TicketStatusResolved, nil},
		{s.admin, domain.TicketStatusClosed, nil},
	} {
		_, err := s.service.UpdateStatus(s.ctx, step.actor, ticket.ID, step.status, step.staff)
		s.Require().NoError(err)
	}

	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, nil)
	s.assertCode(err, apperrors.CodeTerminalState)
}

func (s *TicketServiceSuite) TestAssigneeRules() {
	ticket := s.createTicket()

	// wrong specialty
	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffBilling.ID)
	s.assertCode(err, apperrors.CodeAssignmentMismatch)

	// inactive
	_, err = s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffInactive.ID)
	s.assertCode(err, apperrors.CodeInactiveAssignee)

	// unknown
	missing := "staff-missing"
	_, err = s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &missing)
	s.assertCode(err, apperrors.CodeNotFound)
}

func (s *TicketServiceSuite) TestConcurrentModification() {
	ticket := s.createTicket()

	// a competing transition lands between the read and the write
	s.store.beforeTransition = func() {
		hook := s.store.beforeTransition
		s.store.beforeTransition = nil
		defer func() { s.store.beforeTransition = hook }()

		_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
		s.Require().NoError(err)
	}

	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.assertCode(err, apperrors.CodeConcurrentModification)

	// exactly one ledger entry for the winning write
	s.store.beforeTransition = nil
	activity, err := s.service.ListActivity(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	s.Len(activity, 1)
}

func (s *TicketServiceSuite) TestAllowedTransitions() {
	ticket := s.createTicket()

	result, err := s.service.AllowedTransitions(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusCreated, result.Current)
	s.Equal([]domain.TicketStatus{domain.TicketStatusAssigned}, result.Allowed)

	_, err = s.service.AllowedTransitions(s.ctx, s.otherUser, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)

	_, err = s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateStatus(s.ctx, s.staffUser, ticket.ID, domain.TicketStatusStarted, nil)
	s.Require().NoError(err)
	_, err = s.service.UpdateStatus(s.ctx, s.staffUser, ticket.ID, domain.TicketStatusResolved, nil)
	s.Require().NoError(err)

	result, err = s.service.AllowedTransitions(s.ctx, s.staffUser, ticket.ID)
	s.Require().NoError(err)
	s.Equal(domain.TicketStatusResolved, result.Current)
	s.Empty(result.Allowed)

	result, err = s.service.AllowedTransitions(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	s.Equal([]domain.TicketStatus{domain.TicketStatusClosed}, result.Allowed)
}

func (s *TicketServiceSuite) TestListTicketsScoping() {
	mine := s.createTicket()

	theirs, err := s.service.CreateTicket(s.ctx, s.otherUser, TicketCreateInput{
		IssueID:     s.issueNet.ID,
		SubIssueID:  s.subNet.ID,
		Description: "cannot reach intranet",
	})
	s.Require().NoError(err)

	all, err := s.service.ListTickets(s.ctx, s.admin, TicketListFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	own, err := s.service.ListTickets(s.ctx, s.clientUser, TicketListFilter{})
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(mine.ID, own[0].ID)

	assignedOnly, err := s.service.ListTickets(s.ctx, s.staffUser, TicketListFilter{})
	s.Require().NoError(err)
	s.Empty(assignedOnly)

	_, err = s.service.UpdateStatus(s.ctx, s.admin, theirs.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	s.Require().NoError(err)

	assignedOnly, err = s.service.ListTickets(s.ctx, s.staffUser, TicketListFilter{})
	s.Require().NoError(err)
	s.Require().Len(assignedOnly, 1)
	s.Equal(theirs.ID, assignedOnly[0].ID)
}

func (s *TicketServiceSuite) TestListTicketsStaffWithoutProfileSeesNothing() {
	s.createTicket()

	orphan := s.newUser("staff-orphan", domain.RoleStaff)
	tickets, err := s.service.ListTickets(s.ctx, orphan, TicketListFilter{})
	s.Require().NoError(err)
	s.Empty(tickets)
}

func (s *TicketServiceSuite) TestListActivityVisibility() {
	ticket := s.createTicket()
	_, err := s.service.ListActivity(s.ctx, s.otherUser, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)
}

func (s *TicketServiceSuite) TestEligibleStaff() {
	ticket := s.createTicket()

	members, err := s.staffSvc.EligibleStaff(s.ctx, s.admin, ticket.ID)
	s.Require().NoError(err)
	// active specialists on the ticket's issue only
	s.Require().Len(members, 1)
	s.Equal(s.staffNet.ID, members[0].Staff.ID)

	_, err = s.staffSvc.EligibleStaff(s.ctx, s.clientUser, ticket.ID)
	s.assertCode(err, apperrors.CodeForbidden)

	// invisible ticket reads as missing for unassigned staff
	_, err = s.staffSvc.EligibleStaff(s.ctx, s.staffUser2, ticket.ID)
	s.assertCode(err, apperrors.CodeNotFound)
}

func (s *TicketServiceSuite) TestTransitionEvents() {
	ticket := s.createTicket()
	s.published = nil

	_, err := s.service.UpdateStatus(s.ctx, s.admin, ticket.ID, domain.TicketStatusAssigned, &s.staffNet.ID)
	require.NoError(s.T(), err)

	s.Require().Len(s.published, 2)
	s.Equal(events.EventTicketStatusChanged, s.published[0].Type)
	s.Equal(events.EventTicketAssigned, s.published[1].Type)
}
