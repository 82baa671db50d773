package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/identity"
	"github.com/stitchdesk/backend/internal/domain/shared"
)

const (
	maxLoginAttempts = 5
	lockDuration     = 15 * time.Minute
)

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *identity.User) (token string, expiresAt time.Time, err error)
}

// AuthService handles business registration, login and account
// management. Login failures are counted per account; too many in a
// row lock the account for a cooldown period.
type AuthService struct {
	userRepo       identity.UserRepository
	tenantRepo     identity.TenantRepository
	tokens         TokenIssuer
	eventPublisher shared.EventPublisher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tenantRepo identity.TenantRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		tokens:     tokens,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a new tailoring business together with its owner
// account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	tenant, err := identity.NewTenant(req.BusinessName)
	if err != nil {
		return nil, err
	}
	tenant.UpdateContact(req.Mobile, req.Address)

	owner, err := identity.NewUser(tenant.ID, req.Username, req.Password, identity.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, owner)

	return &RegisterResponse{
		Tenant: ToTenantResponse(tenant),
		Owner:  ToUserResponse(owner),
	}, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.TenantID, req.Username)
	if err == shared.ErrNotFound {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked or deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordLoginFailure(maxLoginAttempts, lockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// CreateUser adds a staff account to the caller's business
func (s *AuthService) CreateUser(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	existing, err := s.userRepo.FindByUsername(ctx, tenantID, req.Username)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	user, err := identity.NewUser(tenantID, req.Username, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Mobile != "" {
		if err := user.SetMobile(req.Mobile); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// ListUsers lists the business's staff accounts
func (s *AuthService) ListUsers(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]UserResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(result.Items))
	for _, user := range result.Items {
		responses = append(responses, ToUserResponse(user))
	}
	return responses, result.Total, nil
}

// ChangePassword rotates a user's password after verifying the current
// one
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TenantID != tenantID {
		return shared.ErrNotFound
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// DeactivateUser suspends a staff account
func (s *AuthService) DeactivateUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, user.GetDomainEvents()...); err == nil {
		user.ClearDomainEvents()
	}
}
