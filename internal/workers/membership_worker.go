package workers

import (
	"context"
	"time"

	"websewa_backend/internal/logger"
	"websewa_backend/internal/repositories"
)

// MembershipWorker sweeps expired memberships in the background. The
// membership gate also checks expires_at on read, so the sweep only keeps
// stored status from drifting, it is not a correctness requirement.
type MembershipWorker struct {
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewMembershipWorker(userRepo repositories.UserRepository) *MembershipWorker {
	return &MembershipWorker{
		userRepo: userRepo,
		interval: 6 * time.Hour,
	}
}

func (w *MembershipWorker) Start(ctx context.Context) {
	go w.expireMemberships(ctx)
}

func (w *MembershipWorker) expireMemberships(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Membership worker stopped")
			return
		case <-ticker.C:
			affected, err := w.userRepo.ExpireMemberships(time.Now())
			if err != nil {
				logger.WithError(err).Error("Failed to expire memberships")
			} else if affected > 0 {
				logger.Info("Marked memberships as expired", "count", affected)
			}
		}
	}
}
