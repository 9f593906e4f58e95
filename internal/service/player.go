package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres/repository"
)

// PlayerService identifies players by name and persists their state.
type PlayerService struct {
	repo   PlayerRepository
	logger *zap.Logger
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(repo PlayerRepository, logger *zap.Logger) *PlayerService {
	return &PlayerService{
		repo:   repo,
		logger: logger,
	}
}

// Login loads the player with the given name. An unknown name yields a fresh
// player that is stored on its first save. The bool reports a new player.
func (s *PlayerService) Login(ctx context.Context, name string) (*entities.Player, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrEmptyName
	}

	player, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return player, false, nil
	}
	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, false, fmt.Errorf("%w: %w", ErrPlayerLookup, err)
	}

	s.logger.Info("new player", zap.String("player", name))
	return entities.NewPlayer(name), true, nil
}

// Save persists the full player state.
func (s *PlayerService) Save(ctx context.Context, player *entities.Player) error {
	if err := s.repo.Upsert(ctx, player); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
