package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// DefaultRefreshSpec reloads the catalog at the top of every hour.
const DefaultRefreshSpec = "0 * * * *"

// ChallengeService keeps the challenge catalog and reloads it on a schedule.
type ChallengeService struct {
	mu         sync.RWMutex
	challenges []entities.Challenge

	repo        ChallengeRepository
	refreshSpec string
	logger      *zap.Logger
	now         func() time.Time
}

// NewChallengeService creates a service seeded with the catalog loaded at startup.
func NewChallengeService(
	initial []entities.Challenge,
	repo ChallengeRepository,
	refreshSpec string,
	logger *zap.Logger,
) *ChallengeService {
	if refreshSpec == "" {
		refreshSpec = DefaultRefreshSpec
	}

	return &ChallengeService{
		challenges:  slices.Clone(initial),
		repo:        repo,
		refreshSpec: refreshSpec,
		logger:      logger,
		now:         time.Now,
	}
}

// Available returns the challenges whose window contains now.
func (s *ChallengeService) Available(now time.Time) []entities.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Challenge
	for _, c := range s.challenges {
		if c.ActiveAt(now) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns a challenge that is available right now.
func (s *ChallengeService) Get(id string) (entities.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for _, c := range s.challenges {
		if c.ID == id && c.ActiveAt(now) {
			return c, nil
		}
	}
	return entities.Challenge{}, ErrChallengeNotFound
}

// Refresh replaces the catalog with the repository contents.
// On failure the previous catalog is kept.
func (s *ChallengeService) Refresh(ctx context.Context) error {
	challenges, err := s.repo.Challenges(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.challenges = challenges
	s.mu.Unlock()

	s.logger.Info("challenge catalog refreshed", zap.Int("count", len(challenges)))
	return nil
}

// Start runs the refresh schedule until ctx is done.
func (s *ChallengeService) Start(ctx context.Context) {
	s.logger.Info("challenge service started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.refreshSpec, func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Error("failed to refresh challenges", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.String("spec", s.refreshSpec), zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("cron scheduler started", zap.String("spec", s.refreshSpec))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("challenge service stopped")
}
