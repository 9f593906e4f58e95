package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// LoadGameConfig reads every configuration table concurrently.
// Any failed read fails the whole load.
func LoadGameConfig(ctx context.Context, repo ConfigRepository) (*entities.GameConfig, error) {
	var cfg entities.GameConfig

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rules, err := repo.GameRules(ctx)
		if err != nil {
			return fmt.Errorf("game rules: %w", err)
		}
		cfg.Rules = rules
		return nil
	})

	g.Go(func() error {
		questions, err := repo.QuestionConfigs(ctx)
		if err != nil {
			return fmt.Errorf("questions config: %w", err)
		}
		cfg.Questions = questions
		return nil
	})

	g.Go(func() error {
		tiers, err := repo.LevelTiers(ctx)
		if err != nil {
			return fmt.Errorf("progression: %w", err)
		}
		cfg.Tiers = tiers
		return nil
	})

	g.Go(func() error {
		items, err := repo.StoreItems(ctx)
		if err != nil {
			return fmt.Errorf("store items: %w", err)
		}
		cfg.StoreItems = items
		return nil
	})

	g.Go(func() error {
		challenges, err := repo.Challenges(ctx)
		if err != nil {
			return fmt.Errorf("challenges: %w", err)
		}
		cfg.Challenges = challenges
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}

	if cfg.Rules == nil {
		cfg.Rules = entities.GameRules{}
	}

	return &cfg, nil
}
