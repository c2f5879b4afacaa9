package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-shop/internal/data/entity"
	"campus-shop/internal/data/repository"
	"campus-shop/internal/dto/request"
	"campus-shop/internal/dto/response"
	"campus-shop/pkg/token"
	"campus-shop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Manager
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	// 3. Split the submitted name into first/last at the first space
	firstName, lastName := splitName(req.Name)

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		IsAdmin:      false,
	}

	// 4. Save user. The unique index on email decides duplicates, not a
	// prior existence check, so concurrent registrations race safely.
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Email already registered", zap.String("email", user.Email))
			return nil, fmt.Errorf("email %w", ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Unknown email and wrong password fail identically, so login
	// responses cannot be used to enumerate accounts.
	if user == nil {
		s.log.Warn("Login with unknown email", zap.String("email", req.Email))
		return nil, ErrUnauthorized
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrUnauthorized
	}

	// 4. Deactivated accounts cannot log in
	if !user.IsActive {
		s.log.Warn("Deactivated user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrForbidden
	}

	// 5. Issue access token
	accessToken, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.Expiry().Seconds()),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile applies the caller's own name and password changes.
// Email is not changeable here; it identifies the account.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	updated := false

	if req.Name != nil {
		user.FirstName, user.LastName = splitName(*req.Name)
		updated = true
	}

	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password, s.config.Auth.BcryptCost)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("process password: %w", err)
		}
		user.PasswordHash = hashedPassword
		updated = true
	}

	if updated {
		user.UpdatedAt = time.Now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to update user",
				zap.Error(err),
				zap.String("user_id", userID.String()))
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	s.log.Info("Profile updated",
		zap.String("user_id", userID.String()),
		zap.Bool("was_updated", updated))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// splitName separates a display name into first and last name. Everything
// after the first space is the last name.
func splitName(name string) (*string, *string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return nil, nil
	}

	first := parts[0]
	if len(parts) == 1 {
		return &first, nil
	}

	last := strings.Join(parts[1:], " ")
	return &first, &last
}
