package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AuthService handles client registration, login and token revocation.
type AuthService struct {
	users      repository.UserRepository
	clients    repository.ClientRepository
	staff      repository.StaffRepository
	catalog    repository.CatalogRepository
	tokens     *auth.TokenManager
	denylist   *auth.TokenDenylist
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ClientRepo  repository.ClientRepository
	StaffRepo   repository.StaffRepository
	CatalogRepo repository.CatalogRepository
	Tokens      *auth.TokenManager
	Denylist    *auth.TokenDenylist
}

// RegisterClientInput is the self-service client signup payload.
type RegisterClientInput struct {
	Username         string
	Email            string
	Password         string
	CompanyName      string
	CompanyTypeID    string
	ContractDuration *string
	ContactEmail     string
	ContactPhone     string
}

// LoginResult carries a signed access token and its expiry.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Profile is the authenticated user's account plus whichever
// role-specific record exists for them.
type Profile struct {
	User   domain.User
	Client *domain.Client
	Staff  *domain.Staff
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		clients:    deps.ClientRepo,
		staff:      deps.StaffRepo,
		catalog:    deps.CatalogRepo,
		tokens:     deps.Tokens,
		denylist:   deps.Denylist,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterClient creates a CLIENT account with its company profile.
func (s *AuthService) RegisterClient(ctx context.Context, input RegisterClientInput) (*Profile, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required", nil)
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewValidationError("company_name is required", nil)
	}

	if _, err := s.catalog.GetCompanyType(ctx, input.CompanyTypeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company type", map[string]any{"company_type_id": input.CompanyTypeID})
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
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	client := &domain.Client{
		UserID:           user.ID,
		CompanyName:      input.CompanyName,
		CompanyTypeID:    input.CompanyTypeID,
		ContractDuration: input.ContractDuration,
		ContactEmail:     input.ContactEmail,
		ContactPhone:     input.ContactPhone,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Profile{User: *user, Client: client}, nil
}

// Login verifies credentials and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.NewUnauthorized("missing token")
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	} else {
		expiresAt = time.Now().Add(time.Hour)
	}
	if err := s.denylist.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// GetProfile returns the actor's account with the matching client or
// staff record when one exists.
func (s *AuthService) GetProfile(ctx context.Context, actor *domain.User) (*Profile, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	profile := &Profile{User: *actor}
	switch actor.Role {
	case domain.RoleClient:
		client, err := s.clients.GetByUserID(ctx, actor.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		profile.Client = client
	case domain.RoleStaff:
		staff, err := s.staff.GetByUserID(ctx, actor.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		profile.Staff = staff
	}
	return profile, nil
}
