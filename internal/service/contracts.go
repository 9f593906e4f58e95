package service

import (
	"context"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

type PlayerRepository interface {
	GetByName(ctx context.Context, name string) (*entities.Player, error)
	Upsert(ctx context.Context, player *entities.Player) error
}

type ConfigRepository interface {
	GameRules(ctx context.Context) (entities.GameRules, error)
	QuestionConfigs(ctx context.Context) ([]entities.QuestionConfig, error)
	LevelTiers(ctx context.Context) ([]entities.LevelTier, error)
	StoreItems(ctx context.Context) ([]entities.StoreItem, error)
	Challenges(ctx context.Context) ([]entities.Challenge, error)
}

type ChallengeRepository interface {
	Challenges(ctx context.Context) ([]entities.Challenge, error)
}

// ContentClient fetches verses from the content API.
type ContentClient interface {
	FetchAyahs(ctx context.Context, scope entities.Scope) ([]entities.Ayah, error)
	AudioURL(narrator string, ayahNumber int) string
}

// AudioLinker builds recitation URLs for a verse.
type AudioLinker interface {
	AudioURL(narrator string, ayahNumber int) string
}

// ContextStorage keeps the per-chat game state.
type ContextStorage interface {
	Get(chatID int64) (*entities.GameContext, bool)
	Store(gc *entities.GameContext)
	Delete(chatID int64)
}
