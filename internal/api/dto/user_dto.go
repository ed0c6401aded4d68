package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RegisterClientRequest payload for client signup.
type RegisterClientRequest struct {
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	CompanyName      string  `json:"company_name"`
	CompanyTypeID    string  `json:"company_type_id"`
	ContractDuration *string `json:"contract_duration"`
	ContactEmail     string  `json:"contact_email"`
	ContactPhone     string  `json:"contact_phone"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// ProfileResponse is the /me payload.
type ProfileResponse struct {
	User   UserResponse           `json:"user"`
	Client *ClientProfileResponse `json:"client,omitempty"`
	Staff  *StaffProfileResponse  `json:"staff,omitempty"`
}

// ClientProfileResponse is the client-side half of a profile.
type ClientProfileResponse struct {
	ID               string  `json:"id"`
	CompanyName      string  `json:"company_name"`
	CompanyTypeID    string  `json:"company_type_id"`
	ContractDuration *string `json:"contract_duration"`
	ContactEmail     string  `json:"contact_email"`
	ContactPhone     string  `json:"contact_phone"`
}

// StaffProfileResponse is the staff-side half of a profile.
type StaffProfileResponse struct {
	ID          string `json:"id"`
	SpecialtyID string `json:"specialty_id"`
	IsActive    bool   `json:"is_active"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewClientProfileResponse maps a client record.
func NewClientProfileResponse(client *domain.Client) *ClientProfileResponse {
	if client == nil {
		return nil
	}
	return &ClientProfileResponse{
		ID:               client.ID,
		CompanyName:      client.CompanyName,
		CompanyTypeID:    client.CompanyTypeID,
		ContractDuration: client.ContractDuration,
		ContactEmail:     client.ContactEmail,
		ContactPhone:     client.ContactPhone,
	}
}

// NewStaffProfileResponse maps a staff record.
func NewStaffProfileResponse(staff *domain.Staff) *StaffProfileResponse {
	if staff == nil {
		return nil
	}
	return &StaffProfileResponse{
		ID:          staff.ID,
		SpecialtyID: staff.SpecialtyID,
		IsActive:    staff.IsActive,
	}
}
