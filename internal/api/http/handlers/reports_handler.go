package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ReportsHandler serves dashboard aggregation endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// StatusCounts GET /reports/status.
func (h *ReportsHandler) StatusCounts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	summary, err := h.service.StatusCounts(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatusSummaryResponse{
		Counts: summary.Counts,
		Total:  summary.Total,
	}})
}

// MonthlyCounts GET /reports/monthly.
func (h *ReportsHandler) MonthlyCounts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	counts, err := h.service.MonthlyCounts(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.MonthlyCountResponse, 0, len(counts))
	for _, bucket := range counts {
		items = append(items, dto.MonthlyCountResponse{
			Month: bucket.Month.Format("2006-01"),
			Count: bucket.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ClientCounts GET /reports/clients.
func (h *ReportsHandler) ClientCounts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	counts, err := h.service.ClientCounts(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ClientCountResponse, 0, len(counts))
	for _, row := range counts {
		items = append(items, dto.ClientCountResponse{
			ClientID:    row.ClientID,
			CompanyName: row.CompanyName,
			Username:    row.Username,
			Count:       row.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// StaffCounts GET /reports/staff.
func (h *ReportsHandler) StaffCounts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	counts, err := h.service.StaffCounts(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.StaffCountResponse, 0, len(counts))
	for _, row := range counts {
		items = append(items, dto.StaffCountResponse{
			StaffID:  row.StaffID,
			Username: row.Username,
			Count:    row.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
