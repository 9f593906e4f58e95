package repository_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres/repository"
)

const initScript = "../../../../migrations/0001_init.sql"

// setupDB starts a seeded Postgres container and returns a pool connected to it.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("hifz"),
		tcpostgres.WithUsername("hifz"),
		tcpostgres.WithPassword("hifz"),
		tcpostgres.WithInitScripts(initScript),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:       4,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func TestRepositories(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	players := repository.NewPlayerRepository(pool)
	configs := repository.NewConfigRepository(pool)

	t.Run("unknown player", func(t *testing.T) {
		_, err := players.GetByName(ctx, "nobody")
		if !errors.Is(err, repository.ErrPlayerNotFound) {
			t.Fatalf("GetByName() error = %v, want ErrPlayerNotFound", err)
		}
	})

	t.Run("upsert round trip", func(t *testing.T) {
		p := entities.NewPlayer("Ahmad")
		p.XP = 30
		p.Diamonds = 7

		if err := players.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert() insert: %v", err)
		}

		got, err := players.GetByName(ctx, "Ahmad")
		if err != nil {
			t.Fatalf("GetByName(): %v", err)
		}
		if got.XP != 30 || got.Diamonds != 7 || len(got.OwnedItems) != 0 {
			t.Errorf("stored player = %+v", got)
		}
		if got.OwnedItems == nil {
			t.Error("OwnedItems = nil, want empty slice")
		}

		p.XP = 120
		p.Diamonds = 2
		p.AddItem("page_3")
		if err := players.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert() update: %v", err)
		}

		got, err = players.GetByName(ctx, "Ahmad")
		if err != nil {
			t.Fatalf("GetByName(): %v", err)
		}
		if got.XP != 120 || got.Diamonds != 2 || !slices.Equal(got.OwnedItems, []string{"page_3"}) {
			t.Errorf("updated player = %+v", got)
		}
	})

	t.Run("game rules", func(t *testing.T) {
		rules, err := configs.GameRules(ctx)
		if err != nil {
			t.Fatalf("GameRules(): %v", err)
		}
		if got := rules.Int(entities.RuleXPPerCorrectAnswer); got != 10 {
			t.Errorf("xpPerCorrectAnswer = %d, want 10", got)
		}
		if got := rules.DefaultPages(); !slices.Equal(got, []int{1, 2}) {
			t.Errorf("DefaultPages() = %v, want [1 2]", got)
		}
	})

	t.Run("question configs", func(t *testing.T) {
		qs, err := configs.QuestionConfigs(ctx)
		if err != nil {
			t.Fatalf("QuestionConfigs(): %v", err)
		}
		if len(qs) != 3 {
			t.Errorf("len = %d, want 3", len(qs))
		}
	})

	t.Run("level tiers ordered", func(t *testing.T) {
		tiers, err := configs.LevelTiers(ctx)
		if err != nil {
			t.Fatalf("LevelTiers(): %v", err)
		}
		if len(tiers) != 5 {
			t.Fatalf("len = %d, want 5", len(tiers))
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i].Level <= tiers[i-1].Level {
				t.Errorf("tiers not ordered by level: %v", tiers)
			}
		}
	})

	t.Run("store items", func(t *testing.T) {
		items, err := configs.StoreItems(ctx)
		if err != nil {
			t.Fatalf("StoreItems(): %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("len = %d, want 4", len(items))
		}
		if items[0].ID != "page_3" {
			t.Errorf("cheapest item = %q, want page_3", items[0].ID)
		}
	})

	t.Run("challenges", func(t *testing.T) {
		challenges, err := configs.Challenges(ctx)
		if err != nil {
			t.Fatalf("Challenges(): %v", err)
		}
		if len(challenges) != 1 {
			t.Fatalf("len = %d, want 1", len(challenges))
		}
		c := challenges[0]
		if c.ScopeType != entities.ScopeSurah || c.ScopeValue != "67" || c.QuestionsCount != 10 {
			t.Errorf("challenge = %+v", c)
		}
		if !c.EndTime.After(c.StartTime) {
			t.Errorf("end %v not after start %v", c.EndTime, c.StartTime)
		}
	})
}
