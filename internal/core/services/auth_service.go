package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/config"
	"autopro-rental/internal/core/sessiongate"
	"autopro-rental/internal/pkg/jwt"
	"autopro-rental/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	resetRepo   repositories.PasswordResetRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	resetRepo repositories.PasswordResetRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

// Login authenticates a user and opens a session with a fixed validity
// window. A wrong email and a wrong password produce the same error on
// purpose.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate access token
	accessToken, expiresAt, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.SessionHours,
	)
	if err != nil {
		return nil, err
	}

	// 5. Store the session
	session := &models.Session{
		UserID:    user.ID,
		TokenHash: password.HashToken(accessToken),
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	// 6. Record last login
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("⚠️ Failed to record last login for %s: %v", user.Email, err)
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// ResolveSession resolves a stored credential into a session-gate state.
// Missing, invalid or expired credentials all resolve to Anonymous; expired
// session rows are revoked on the way so the cleanup job can drop them.
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (sessiongate.State, error) {
	if accessToken == "" {
		return sessiongate.Anonymous(), nil
	}

	// 1. Validate the JWT itself
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		return sessiongate.Anonymous(), nil
	}

	// 2. Find the stored session
	tokenHash := password.HashToken(accessToken)
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sessiongate.Anonymous(), nil
		}
		return sessiongate.Unknown(), err
	}

	// 3. Expired credential: clear it and resolve to Anonymous
	cred := &sessiongate.Credential{ExpiresAt: session.ExpiresAt}
	if cred.Expired(time.Now()) {
		if err := s.sessionRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
			log.Printf("⚠️ Failed to revoke expired session: %v", err)
		}
		return sessiongate.Anonymous(), nil
	}

	// 4. Match the session to its user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sessiongate.Anonymous(), nil
		}
		return sessiongate.Unknown(), err
	}
	if !user.IsActive {
		return sessiongate.Anonymous(), nil
	}

	gateUser := sessiongate.User{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  sessiongate.Role(user.Role),
	}
	return sessiongate.Resolve(cred, &gateUser, time.Now()), nil
}

// Logout revokes the session for the given access token
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	tokenHash := password.HashToken(accessToken)
	if err := s.sessionRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all sessions for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ListSessions returns the user's live sessions, newest first. Revoked and
// expired rows are filtered out even if the cleanup job has not run yet.
func (s *AuthService) ListSessions(ctx context.Context, userID uint) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]*models.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.IsRevoked() || !now.Before(session.ExpiresAt) {
			continue
		}
		live = append(live, session)
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	return live, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a reset token for the account behind the email.
// The caller gets the same answer whether or not the account exists; the
// plain token is returned so the delivery channel can send it.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // Do not reveal whether the account exists
		}
		return "", err
	}

	// Only the newest token stays valid
	if err := s.resetRepo.InvalidateByUserID(ctx, user.ID); err != nil {
		return "", err
	}

	plainToken := uuid.New().String()
	token := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(plainToken),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Reset.TokenMinutes) * time.Minute),
	}
	if err := s.resetRepo.Create(ctx, token); err != nil {
		return "", err
	}

	log.Printf("✅ Password reset token issued for user ID: %d", user.ID)
	return plainToken, nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
// All sessions of the user are revoked afterwards.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, plainToken, newPassword string) error {
	if !password.Validate(newPassword) {
		return ErrWeakPassword
	}

	token, err := s.resetRepo.GetByTokenHash(ctx, password.HashToken(plainToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if token.IsExpired() {
		return ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.resetRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		return err
	}

	log.Printf("✅ Password reset completed for user ID: %d", user.ID)
	return nil
}

// ChangePassword changes the password of a logged-in user after verifying
// the current one. Other sessions stay open; the caller decides whether to
// reissue its own.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(currentPassword, user.Password) {
		return ErrWrongPassword
	}
	if !password.Validate(newPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user ID: %d", userID)
	return nil
}

// UpdateProfileInput represents a profile update
type UpdateProfileInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// UpdateProfile updates the profile fields of the logged-in user
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}
