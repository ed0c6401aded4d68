package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ReportService produces aggregate ticket counts. Every report runs over
// the actor's visible ticket set, so a staff member's dashboard only
// counts their assigned work and a client only sees their own tickets.
type ReportService struct {
	reports    repository.ReportRepository
	visibility *visibility
}

// StatusSummary carries per-status counts with every status present.
type StatusSummary struct {
	Counts map[domain.TicketStatus]int
	Total  int
}

func NewReportService(reports repository.ReportRepository, clients repository.ClientRepository, staff repository.StaffRepository) *ReportService {
	return &ReportService{
		reports:    reports,
		visibility: &visibility{clients: clients, staff: staff},
	}
}

// StatusCounts returns a zero-filled count for every lifecycle status
// plus the total.
func (s *ReportService) StatusCounts(ctx context.Context, actor *domain.User) (*StatusSummary, error) {
	scope, err := s.visibility.scopeFor(ctx, actor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.reports.StatusCounts(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary := &StatusSummary{Counts: make(map[domain.TicketStatus]int, len(domain.AllStatuses))}
	for _, status := range domain.AllStatuses {
		summary.Counts[status] = counts[status]
		summary.Total += counts[status]
	}
	return summary, nil
}

// MonthlyCounts returns creation counts bucketed by calendar month,
// oldest month first.
func (s *ReportService) MonthlyCounts(ctx context.Context, actor *domain.User) ([]repository.MonthlyCount, error) {
	scope, err := s.visibility.scopeFor(ctx, actor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.reports.MonthlyCounts(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// ClientCounts groups visible tickets per client. Clients have no use
// for it and are refused.
func (s *ReportService) ClientCounts(ctx context.Context, actor *domain.User) ([]repository.ClientCount, error) {
	if actor == nil || actor.Role == domain.RoleClient {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	scope, err := s.visibility.scopeFor(ctx, actor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.reports.ClientCounts(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// StaffCounts groups tickets per assigned staff member, admin only.
// Unassigned tickets are not represented.
func (s *ReportService) StaffCounts(ctx context.Context, actor *domain.User) ([]repository.StaffCount, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	counts, err := s.reports.StaffCounts(ctx, repository.ScopeAll())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}
