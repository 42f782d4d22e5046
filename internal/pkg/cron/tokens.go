package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
)

// TokenJobs purges refresh tokens past their expiry so the session
// audit table does not grow without bound.
type TokenJobs struct {
	jwtRepo postgresql.JWTRepository
}

func NewTokenJobs(jwtRepo postgresql.JWTRepository) *TokenJobs {
	return &TokenJobs{jwtRepo: jwtRepo}
}

// Register wires the token jobs into the scheduler.
func (j *TokenJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("purge_expired_refresh_tokens", interval, j.purgeExpired)
}

func (j *TokenJobs) purgeExpired(ctx context.Context) error {
	deleted, err := j.jwtRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Purged expired refresh tokens", "count", deleted)
	}
	return nil
}
