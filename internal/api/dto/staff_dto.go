package dto

// CreateStaffRequest payload for admin staff provisioning.
type CreateStaffRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	SpecialtyID string `json:"specialty_id"`
}

// UpdateStaffRequest payload.
type UpdateStaffRequest struct {
	SpecialtyID string `json:"specialty_id"`
	IsActive    bool   `json:"is_active"`
}

// StaffMemberResponse pairs account and specialist profile.
type StaffMemberResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	SpecialtyID string `json:"specialty_id"`
	IsActive    bool   `json:"is_active"`
}
