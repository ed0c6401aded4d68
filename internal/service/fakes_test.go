package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// enforces the same contracts the SQL layer does: scope-restricted reads,
// compare-and-swap transitions and an append-only activity ledger.
type fakeStore struct {
	seq        int
	tickets    map[string]*domain.Ticket
	activities []domain.TicketActivity
	clients    map[string]*domain.Client
	staff      map[string]*domain.Staff
	users      map[string]*domain.User
	issues     map[string]*domain.Issue
	subIssues  map[string]*domain.SubIssue
	companies  map[string]*domain.CompanyType

	// invoked inside TransitionStatus before the CAS check, to let tests
	// interleave a competing write.
	beforeTransition func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:   map[string]*domain.Ticket{},
		clients:   map[string]*domain.Client{},
		staff:     map[string]*domain.Staff{},
		users:     map[string]*domain.User{},
		issues:    map[string]*domain.Issue{},
		subIssues: map[string]*domain.SubIssue{},
		companies: map[string]*domain.CompanyType{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// --- TicketRepository ---

func (f *fakeStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	ticket.ID = f.nextID("ticket")
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, scope repository.Scope, id string) (*domain.Ticket, error) {
	stored, ok := f.tickets[id]
	if !ok || !scope.Contains(stored.ClientID, stored.AssignedStaffID) {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeStore) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, stored := range f.tickets {
		if !filter.Scope.Contains(stored.ClientID, stored.AssignedStaffID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, stored.Status) {
			continue
		}
		if filter.IssueID != nil && stored.IssueID != *filter.IssueID {
			continue
		}
		if filter.SearchTerm != nil &&
			!strings.Contains(strings.ToLower(stored.Description), strings.ToLower(*filter.SearchTerm)) {
			continue
		}
		result = append(result, *stored)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeStore) TransitionStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus, activity *domain.TicketActivity) error {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	stored, ok := f.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Status != expected {
		return apperrors.NewConcurrentModification(ticket.ID)
	}
	updated := *ticket
	updated.UpdatedAt = time.Now()
	f.tickets[ticket.ID] = &updated

	entry := *activity
	entry.ID = f.nextID("activity")
	entry.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	f.activities = append(f.activities, entry)
	return nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// --- ActivityRepository ---

func (f *fakeStore) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketActivity, error) {
	var result []domain.TicketActivity
	for _, entry := range f.activities {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- ClientRepository ---

type fakeClientRepo struct{ store *fakeStore }

func (r fakeClientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = r.store.nextID("client")
	r.store.clients[client.ID] = client
	return nil
}

func (r fakeClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if client, ok := r.store.clients[id]; ok {
		return client, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeClientRepo) GetByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	for _, client := range r.store.clients {
		if client.UserID == userID {
			return client, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// --- StaffRepository ---

type fakeStaffRepo struct{ store *fakeStore }

func (r fakeStaffRepo) Create(ctx context.Context, staff *domain.Staff) error {
	staff.ID = r.store.nextID("staff")
	r.store.staff[staff.ID] = staff
	return nil
}

func (r fakeStaffRepo) Update(ctx context.Context, staff *domain.Staff) error {
	if _, ok := r.store.staff[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.staff[staff.ID] = staff
	return nil
}

func (r fakeStaffRepo) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	if staff, ok := r.store.staff[id]; ok {
		return staff, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeStaffRepo) GetByUserID(ctx context.Context, userID string) (*domain.Staff, error) {
	for _, staff := range r.store.staff {
		if staff.UserID == userID {
			return staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r fakeStaffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]domain.Staff, error) {
	var result []domain.Staff
	for _, staff := range r.store.staff {
		if filter.SpecialtyID != nil && staff.SpecialtyID != *filter.SpecialtyID {
			continue
		}
		if filter.Active != nil && staff.IsActive != *filter.Active {
			continue
		}
		result = append(result, *staff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// --- UserRepository ---

type fakeUserRepo struct{ store *fakeStore }

func (r fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.store.nextID("user")
	user.CreatedAt = time.Now()
	r.store.users[user.ID] = user
	return nil
}

func (r fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := r.store.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// --- CatalogRepository ---

type fakeCatalogRepo struct{ store *fakeStore }

func (r fakeCatalogRepo) CreateIssue(ctx context.Context, issue *domain.Issue) error {
	issue.ID = r.store.nextID("issue")
	r.store.issues[issue.ID] = issue
	return nil
}

func (r fakeCatalogRepo) GetIssue(ctx context.Context, id string) (*domain.Issue, error) {
	if issue, ok := r.store.issues[id]; ok {
		return issue, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeCatalogRepo) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	var result []domain.Issue
	for _, issue := range r.store.issues {
		result = append(result, *issue)
	}
	return result, nil
}

func (r fakeCatalogRepo) CreateSubIssue(ctx context.Context, subIssue *domain.SubIssue) error {
	subIssue.ID = r.store.nextID("sub-issue")
	r.store.subIssues[subIssue.ID] = subIssue
	return nil
}

func (r fakeCatalogRepo) GetSubIssue(ctx context.Context, id string) (*domain.SubIssue, error) {
	if subIssue, ok := r.store.subIssues[id]; ok {
		return subIssue, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeCatalogRepo) ListSubIssues(ctx context.Context, issueID *string) ([]domain.SubIssue, error) {
	var result []domain.SubIssue
	for _, subIssue := range r.store.subIssues {
		if issueID != nil && subIssue.IssueID != *issueID {
			continue
		}
		result = append(result, *subIssue)
	}
	return result, nil
}

func (r fakeCatalogRepo) CreateCompanyType(ctx context.Context, companyType *domain.CompanyType) error {
	companyType.ID = r.store.nextID("company-type")
	r.store.companies[companyType.ID] = companyType
	return nil
}

func (r fakeCatalogRepo) GetCompanyType(ctx context.Context, id string) (*domain.CompanyType, error) {
	if companyType, ok := r.store.companies[id]; ok {
		return companyType, nil
	}
	return nil, pgx.ErrNoRows
}

func (r fakeCatalogRepo) ListCompanyTypes(ctx context.Context) ([]domain.CompanyType, error) {
	var result []domain.CompanyType
	for _, companyType := range r.store.companies {
		result = append(result, *companyType)
	}
	return result, nil
}
