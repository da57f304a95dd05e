package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// ExpiredTokenDeleter is the part of the user repository the sweeper needs
type ExpiredTokenDeleter interface {
	DeleteExpiredRefreshTokens(before time.Time) (int64, error)
}

// TokenSweeper periodically purges expired refresh tokens
type TokenSweeper struct {
	repo     ExpiredTokenDeleter
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
	stopChan chan struct{}
	done     chan struct{}
}

// NewTokenSweeper creates a new sweeper
func NewTokenSweeper(repo ExpiredTokenDeleter, interval time.Duration, logger *zap.Logger) *TokenSweeper {
	return &TokenSweeper{
		repo:     repo,
		interval: interval,
		logger:   logger.Named("token-sweeper"),
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the sweep loop. A non-positive interval disables it.
func (s *TokenSweeper) Start() {
	if s.interval <= 0 {
		s.logger.Info("Token sweeper disabled")
		close(s.done)
		return
	}

	s.logger.Info("Starting token sweeper", zap.Duration("interval", s.interval))

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.Sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopChan:
				s.logger.Info("Token sweeper stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight sweep
func (s *TokenSweeper) Stop() {
	close(s.stopChan)
	<-s.done
}

// Sweep deletes every refresh token that has already expired
func (s *TokenSweeper) Sweep() int64 {
	n, err := s.repo.DeleteExpiredRefreshTokens(s.now())
	if err != nil {
		s.logger.Error("Error deleting expired refresh tokens", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.logger.Info("Deleted expired refresh tokens", zap.Int64("count", n))
	}
	return n
}
