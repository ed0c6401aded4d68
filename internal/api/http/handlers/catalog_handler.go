package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CatalogHandler serves issue, sub-issue and company-type endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// ListIssues GET /catalog/issues.
func (h *CatalogHandler) ListIssues(c *fiber.Ctx) error {
	issues, err := h.service.ListIssues(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		items = append(items, dto.NewIssueResponse(issue))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListSubIssues GET /catalog/sub-issues.
func (h *CatalogHandler) ListSubIssues(c *fiber.Ctx) error {
	var issueID *string
	if val := c.Query("issue_id"); val != "" {
		issueID = &val
	}
	subIssues, err := h.service.ListSubIssues(c.Context(), issueID)
	if err != nil {
		return err
	}
	items := make([]dto.SubIssueResponse, 0, len(subIssues))
	for _, subIssue := range subIssues {
		items = append(items, dto.NewSubIssueResponse(subIssue))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListCompanyTypes GET /catalog/company-types.
func (h *CatalogHandler) ListCompanyTypes(c *fiber.Ctx) error {
	types, err := h.service.ListCompanyTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyTypeResponse, 0, len(types))
	for _, companyType := range types {
		items = append(items, dto.NewCompanyTypeResponse(companyType))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateIssue POST /catalog/issues.
func (h *CatalogHandler) CreateIssue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	issue, err := h.service.CreateIssue(c.Context(), principal.User, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewIssueResponse(*issue)})
}

// CreateSubIssue POST /catalog/sub-issues.
func (h *CatalogHandler) CreateSubIssue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateSubIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IssueID == "" {
		return apperrors.NewValidationError("issue_id required", nil)
	}
	subIssue, err := h.service.CreateSubIssue(c.Context(), principal.User, req.IssueID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewSubIssueResponse(*subIssue)})
}

// CreateCompanyType POST /catalog/company-types.
func (h *CatalogHandler) CreateCompanyType(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateCompanyTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	companyType, err := h.service.CreateCompanyType(c.Context(), principal.User, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyTypeResponse(*companyType)})
}
