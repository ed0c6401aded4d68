package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// StaffHandler serves admin staff provisioning endpoints.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// CreateStaff POST /staff.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.SpecialtyID == "" {
		return apperrors.NewValidationError("username, email, password, specialty_id required", nil)
	}

	member, err := h.service.CreateStaffMember(c.Context(), principal.User, service.CreateStaffInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		SpecialtyID: req.SpecialtyID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": staffMemberResponse(*member)})
}

// UpdateStaff PATCH /staff/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SpecialtyID == "" {
		return apperrors.NewValidationError("specialty_id required", nil)
	}

	member, err := h.service.UpdateStaffMember(c.Context(), principal.User, c.Params("id"), req.SpecialtyID, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffMemberResponse(*member)})
}

// ListStaff GET /staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	filter := repository.StaffFilter{}
	if specialtyID := c.Query("specialty_id"); specialtyID != "" {
		filter.SpecialtyID = &specialtyID
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.Active = &active
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	members, err := h.service.ListStaffMembers(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffMemberResponses(members)})
}

func staffMemberResponse(member service.StaffMember) dto.StaffMemberResponse {
	return dto.StaffMemberResponse{
		ID:          member.Staff.ID,
		UserID:      member.User.ID,
		Username:    member.User.Username,
		Email:       member.User.Email,
		SpecialtyID: member.Staff.SpecialtyID,
		IsActive:    member.Staff.IsActive,
	}
}

func staffMemberResponses(members []service.StaffMember) []dto.StaffMemberResponse {
	items := make([]dto.StaffMemberResponse, 0, len(members))
	for _, member := range members {
		items = append(items, staffMemberResponse(member))
	}
	return items
}
