package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres"
)

// ConfigRepository reads the game configuration tables.
type ConfigRepository struct {
	db postgres.DBTX
}

// NewConfigRepository creates a new ConfigRepository with the provided database pool.
func NewConfigRepository(db postgres.DBTX) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GameRules returns every rule as a name to value map.
func (r *ConfigRepository) GameRules(ctx context.Context) (entities.GameRules, error) {
	query := `SELECT rule_name, rule_value FROM game_rules`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query game rules: %w", err)
	}
	defer rows.Close()

	rules := make(entities.GameRules)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan game rule: %w", err)
		}
		rules[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game rules: %w", err)
	}

	return rules, nil
}

// QuestionConfigs returns the generator toggles.
func (r *ConfigRepository) QuestionConfigs(ctx context.Context) ([]entities.QuestionConfig, error) {
	query := `SELECT id, enabled FROM questions_config ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query questions config: %w", err)
	}
	defer rows.Close()

	var configs []entities.QuestionConfig
	for rows.Next() {
		var c entities.QuestionConfig
		if err := rows.Scan(&c.ID, &c.Enabled); err != nil {
			return nil, fmt.Errorf("scan question config: %w", err)
		}
		configs = append(configs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions config: %w", err)
	}

	return configs, nil
}

// LevelTiers returns the progression table ordered by level.
func (r *ConfigRepository) LevelTiers(ctx context.Context) ([]entities.LevelTier, error) {
	query := `
		SELECT level, title, xp_required, diamonds_reward
		FROM progression
		ORDER BY level ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query progression: %w", err)
	}
	defer rows.Close()

	var tiers []entities.LevelTier
	for rows.Next() {
		var t entities.LevelTier
		if err := rows.Scan(&t.Level, &t.Title, &t.XPRequired, &t.DiamondsReward); err != nil {
			return nil, fmt.Errorf("scan level tier: %w", err)
		}
		tiers = append(tiers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progression: %w", err)
	}

	return tiers, nil
}

// StoreItems returns the store catalog ordered by price.
func (r *ConfigRepository) StoreItems(ctx context.Context) ([]entities.StoreItem, error) {
	query := `
		SELECT item_id, item_name, COALESCE(description, ''), item_type, price, COALESCE(value, '')
		FROM store_items
		ORDER BY price ASC, item_id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query store items: %w", err)
	}
	defer rows.Close()

	var items []entities.StoreItem
	for rows.Next() {
		var it entities.StoreItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Type, &it.Price, &it.Value); err != nil {
			return nil, fmt.Errorf("scan store item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store items: %w", err)
	}

	return items, nil
}

// Challenges returns every configured challenge ordered by start time.
func (r *ConfigRepository) Challenges(ctx context.Context) ([]entities.Challenge, error) {
	query := `
		SELECT challenge_id, title, COALESCE(description, ''), scope_type, scope_value,
		       questions_count, start_time, end_time
		FROM challenges
		ORDER BY start_time ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	var challenges []entities.Challenge
	for rows.Next() {
		var c entities.Challenge
		err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.ScopeType,
			&c.ScopeValue,
			&c.QuestionsCount,
			&c.StartTime,
			&c.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenges: %w", err)
	}

	return challenges, nil
}
