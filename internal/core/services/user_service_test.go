package services

import (
	"context"
	"errors"
	"testing"

	"autopro-rental/internal/adapters/persistence/models"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := NewUserService(userRepo, sessionRepo)

	seed := []*models.User{
		{Email: "admin@autopro.ru", Name: "Administrator", Role: "admin", IsActive: true},
		{Email: "manager@autopro.ru", Name: "Manager", Role: "manager", IsActive: true},
	}
	for _, u := range seed {
		u.Password = "hashed"
		if err := userRepo.Create(context.Background(), u); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	return svc, userRepo, sessionRepo
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &CreateUserInput{
		Email: "x@autopro.ru", Name: "X", Password: "secret123", Role: "superuser",
	}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("bad role: got %v", err)
	}

	if _, err := svc.Create(ctx, &CreateUserInput{
		Email: "x@autopro.ru", Name: "X", Password: "123", Role: "manager",
	}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password: got %v", err)
	}

	if _, err := svc.Create(ctx, &CreateUserInput{
		Email: "admin@autopro.ru", Name: "Dup", Password: "secret123", Role: "manager",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v", err)
	}

	user, err := svc.Create(ctx, &CreateUserInput{
		Email: "new@autopro.ru", Name: "New", Password: "secret123", Role: "customer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("new users must start active")
	}
	if user.Password == "secret123" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestAdminCannotDemoteOrDeactivateSelf(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	role := "manager"
	if _, err := svc.Update(ctx, 1, 1, &UpdateUserInput{Role: &role}); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("self demotion: got %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, 1, 1, &UpdateUserInput{IsActive: &inactive}); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("self deactivation: got %v", err)
	}

	// Renaming yourself is fine
	name := "Root Admin"
	updated, err := svc.Update(ctx, 1, 1, &UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name: got %q", updated.Name)
	}
}

func TestLastAdminIsProtected(t *testing.T) {
	svc, userRepo, _ := newUserFixture(t)
	ctx := context.Background()

	// Add a second admin, then deactivate the first through the second
	if err := userRepo.Create(ctx, &models.User{
		Email: "admin2@autopro.ru", Name: "Second", Password: "hashed", Role: "admin", IsActive: true,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, 3, 1, &UpdateUserInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate first admin: %v", err)
	}

	// Now only one active admin remains; it cannot be demoted or deleted
	role := "manager"
	if _, err := svc.Update(ctx, 1, 3, &UpdateUserInput{Role: &role}); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("demote last admin: got %v", err)
	}
	if err := svc.Delete(ctx, 1, 3); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("delete last admin: got %v", err)
	}
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	svc, _, sessionRepo := newUserFixture(t)
	ctx := context.Background()

	if err := sessionRepo.Create(ctx, &models.Session{UserID: 2, TokenHash: "h"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := svc.Delete(ctx, 2, 2); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("self delete: got %v", err)
	}
	if err := svc.Delete(ctx, 1, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sessions, _ := sessionRepo.GetByUserID(ctx, 2)
	if len(sessions) != 0 {
		t.Fatalf("deleted user must have no live sessions, got %d", len(sessions))
	}
}

func TestUserStats(t *testing.T) {
	svc, userRepo, _ := newUserFixture(t)
	ctx := context.Background()

	if err := userRepo.Create(ctx, &models.User{
		Email: "c@autopro.ru", Name: "C", Password: "hashed", Role: "customer", IsActive: false,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total: got %d", stats.Total)
	}
	if stats.ByRole["customer"] != 1 || stats.ActiveByRole["customer"] != 0 {
		t.Fatalf("customer counts: %+v", stats)
	}
	if stats.ActiveByRole["admin"] != 1 {
		t.Fatalf("admin counts: %+v", stats)
	}
}
