package services

import (
	"context"
	"log"

	"autopro-rental/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService purges expired sessions and reset tokens on a schedule
type CleanupService struct {
	sessionRepo repositories.SessionRepository
	resetRepo   repositories.PasswordResetRepository
	cron        *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	sessionRepo repositories.SessionRepository,
	resetRepo repositories.PasswordResetRepository,
) *CleanupService {
	return &CleanupService{
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		cron:        cron.New(),
	}
}

// Start schedules the hourly purge
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc("@hourly", s.RunOnce)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cleanup job scheduled [@hourly]")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cleanup job stopped")
}

// RunOnce purges expired sessions and reset tokens immediately
func (s *CleanupService) RunOnce() {
	ctx := context.Background()

	sessions, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Session cleanup failed: %v", err)
	}

	tokens, err := s.resetRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Reset token cleanup failed: %v", err)
	}

	if sessions > 0 || tokens > 0 {
		log.Printf("🧹 Cleanup removed %d sessions, %d reset tokens", sessions, tokens)
	}
}
