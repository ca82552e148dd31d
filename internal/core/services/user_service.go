package services

import (
	"context"
	"errors"
	"log"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/core/sessiongate"
	"autopro-rental/internal/pkg/pagination"
	"autopro-rental/internal/pkg/password"

	"gorm.io/gorm"
)

// User management errors
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidRole      = errors.New("invalid role")
	ErrSelfModification = errors.New("cannot modify own account this way")
	ErrLastAdmin        = errors.New("cannot remove the last active admin")
)

// UserService handles back-office user management
type UserService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) *UserService {
	return &UserService{userRepo: userRepo, sessionRepo: sessionRepo}
}

// List lists users with optional search/role filter
func (s *UserService) List(ctx context.Context, search, role string, params *pagination.Params) ([]*models.User, int64, error) {
	if role != "" && !sessiongate.ValidRole(sessiongate.Role(role)) {
		return nil, 0, ErrInvalidRole
	}
	return s.userRepo.List(ctx, search, role, params.Offset, params.Limit)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUserInput represents user creation input
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	if !sessiongate.ValidRole(sessiongate.Role(input.Role)) {
		return nil, ErrInvalidRole
	}
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: hashed,
		Role:     input.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s [%s]", user.Email, user.Role)
	return user, nil
}

// UpdateUserInput represents user update input. Nil pointers leave the
// field unchanged.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Update updates a user. actorID is the logged-in admin performing the
// change; an admin cannot demote or deactivate themselves, and the last
// active admin cannot lose the role.
func (s *UserService) Update(ctx context.Context, actorID, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	demotion := input.Role != nil && *input.Role != user.Role && user.Role == string(sessiongate.RoleAdmin)
	deactivation := input.IsActive != nil && !*input.IsActive && user.IsActive

	if actorID == id && (demotion || deactivation) {
		return nil, ErrSelfModification
	}

	if input.Role != nil {
		if !sessiongate.ValidRole(sessiongate.Role(*input.Role)) {
			return nil, ErrInvalidRole
		}
	}

	if (demotion || deactivation) && user.Role == string(sessiongate.RoleAdmin) {
		count, err := s.userRepo.CountActiveByRole(ctx, string(sessiongate.RoleAdmin))
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, ErrLastAdmin
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// A deactivated user must not keep a live session
	if deactivation {
		if err := s.sessionRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
			log.Printf("⚠️ Failed to revoke sessions for deactivated user %d: %v", user.ID, err)
		}
	}

	log.Printf("✅ User updated: %s (ID: %d)", user.Email, user.ID)
	return user, nil
}

// Delete soft deletes a user. Self-deletion and deleting the last active
// admin are refused.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfModification
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == string(sessiongate.RoleAdmin) && user.IsActive {
		count, err := s.userRepo.CountActiveByRole(ctx, string(sessiongate.RoleAdmin))
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllByUserID(ctx, id); err != nil {
		log.Printf("⚠️ Failed to revoke sessions for deleted user %d: %v", id, err)
	}

	log.Printf("✅ User deleted: %s (ID: %d)", user.Email, id)
	return nil
}

// RoleStats is the per-role user count summary
type RoleStats struct {
	Total        int64            `json:"total"`
	ByRole       map[string]int64 `json:"by_role"`
	ActiveByRole map[string]int64 `json:"active_by_role"`
}

// Stats returns per-role user counts
func (s *UserService) Stats(ctx context.Context) (*RoleStats, error) {
	stats := &RoleStats{
		ByRole:       make(map[string]int64),
		ActiveByRole: make(map[string]int64),
	}

	roles := []string{
		string(sessiongate.RoleAdmin),
		string(sessiongate.RoleManager),
		string(sessiongate.RoleCustomer),
	}
	for _, role := range roles {
		count, err := s.userRepo.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		stats.ByRole[role] = count
		stats.Total += count

		active, err := s.userRepo.CountActiveByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		stats.ActiveByRole[role] = active
	}

	return stats, nil
}
