package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/hifz-quiz-bot/internal/config"
	"github.com/aliskhannn/hifz-quiz-bot/internal/delivery/health"
	"github.com/aliskhannn/hifz-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/alquran"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/cache"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/hifz-quiz-bot/internal/logger"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
	"github.com/aliskhannn/hifz-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
		ConnectTimeout:  cfg.DB.ConnectTimeout,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	playerRepo := repository.NewPlayerRepository(pool)
	configRepo := repository.NewConfigRepository(pool)

	gameCfg, err := service.LoadGameConfig(ctx, configRepo)
	if err != nil {
		lg.Fatal("failed to load game configuration", zap.Error(err))
	}
	lg.Info("game configuration loaded",
		zap.Int("rules", len(gameCfg.Rules)),
		zap.Int("question_types", len(gameCfg.Questions)),
		zap.Int("levels", len(gameCfg.Tiers)),
		zap.Int("store_items", len(gameCfg.StoreItems)),
		zap.Int("challenges", len(gameCfg.Challenges)),
	)

	checks := map[string]health.Check{
		"postgres": pool.Ping,
	}

	// A nil *cache.Cache must not reach the client as a non-nil interface.
	var contentCache alquran.Cache
	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Cache.Prefix)
		if err != nil {
			lg.Warn("content cache disabled", zap.Error(err))
		} else {
			defer c.Close()
			contentCache = c
			checks["redis"] = c.HealthCheck
		}
	}

	content := alquran.New(alquran.Config{
		BaseURL:      cfg.Content.BaseURL,
		AudioBaseURL: cfg.Content.AudioBaseURL,
		Edition:      cfg.Content.Edition,
		Timeout:      cfg.Content.Timeout,
		CacheTTL:     cfg.Cache.TTL,
		MaxParallel:  cfg.Content.MaxParallel,
	}, contentCache, lg)

	generators := service.ActiveGenerators(gameCfg.Questions)
	if len(generators) == 0 {
		lg.Warn("no question types enabled")
	}

	players := service.NewPlayerService(playerRepo, lg)
	quiz := service.NewQuizService(generators, content, service.NewRand(), lg)
	progression := service.NewProgression(gameCfg.Tiers)
	store := service.NewStoreService(gameCfg.StoreItems, gameCfg.Rules, players, lg)
	challenges := service.NewChallengeService(gameCfg.Challenges, configRepo, cfg.Challenges.RefreshSpec, lg)

	game := service.NewGameService(
		storage.NewContextStorage(),
		players,
		progression,
		quiz,
		store,
		challenges,
		content,
		gameCfg.Rules,
		service.GameOptions{
			DefaultNarrator:  cfg.Quiz.DefaultNarrator,
			Narrators:        cfg.Quiz.NarratorIDs(),
			DefaultQuestions: cfg.Quiz.DefaultQuestions,
			QuestionCounts:   cfg.Quiz.QuestionCounts,
		},
		lg,
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "الدخول باسمك"},
		{Command: "menu", Description: "القائمة الرئيسية"},
		{Command: "quiz", Description: "اختبار في صفحة"},
		{Command: "range", Description: "اختبار في نطاق صفحات (مثال: /range 3 7)"},
		{Command: "store", Description: "المتجر"},
		{Command: "challenges", Description: "التحديات"},
		{Command: "profile", Description: "ملفي"},
		{Command: "settings", Description: "الإعدادات"},
		{Command: "help", Description: "مساعدة"},
		{Command: "logout", Description: "تسجيل الخروج"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	narrators := make([]telegram.Narrator, 0, len(cfg.Quiz.Narrators))
	for _, n := range cfg.Quiz.Narrators {
		narrators = append(narrators, telegram.Narrator{ID: n.ID, Name: n.Name})
	}

	handler := telegram.NewHandler(bot, lg, game, storage.NewMessageStorage(), telegram.Options{
		Narrators:      narrators,
		QuestionCounts: cfg.Quiz.QuestionCounts,
		AnswerDelay:    cfg.Quiz.AnswerDelay,
	})

	probes := health.New(cfg.HTTP.Addr, checks, lg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(ctx) })
	g.Go(func() error {
		challenges.Start(ctx)
		return nil
	})
	g.Go(func() error { return probes.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
