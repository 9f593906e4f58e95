package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository provides access to player data in the database.
type PlayerRepository struct {
	db postgres.DBTX
}

// NewPlayerRepository creates a new PlayerRepository with the provided database pool.
func NewPlayerRepository(db postgres.DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByName retrieves a player by its unique name.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*entities.Player, error) {
	query := `
		SELECT name, xp, diamonds, owned_items
		FROM players
		WHERE name = $1
	`

	var p entities.Player
	err := r.db.QueryRow(ctx, query, name).Scan(
		&p.Name,
		&p.XP,
		&p.Diamonds,
		&p.OwnedItems,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}

	if p.OwnedItems == nil {
		p.OwnedItems = []string{}
	}

	return &p, nil
}

// Upsert inserts a new player or replaces the stored state of an existing one.
func (r *PlayerRepository) Upsert(ctx context.Context, p *entities.Player) error {
	query := `
		INSERT INTO players (name, xp, diamonds, owned_items, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (name) DO UPDATE SET
			xp = EXCLUDED.xp,
			diamonds = EXCLUDED.diamonds,
			owned_items = EXCLUDED.owned_items,
			updated_at = NOW()
	`

	owned := p.OwnedItems
	if owned == nil {
		owned = []string{}
	}

	_, err := r.db.Exec(ctx, query, p.Name, p.XP, p.Diamonds, owned)
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}
