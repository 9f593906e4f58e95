// Package health exposes liveness and readiness probes over HTTP.
package health

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const checkTimeout = 3 * time.Second

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

type Server struct {
	app    *fiber.App
	addr   string
	checks map[string]Check
	logger *zap.Logger
}

// New builds the probe server. checks are run on every /readyz request.
func New(addr string, checks map[string]Check, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
	})
	app.Use(recover.New())

	s := &Server{
		app:    app,
		addr:   addr,
		checks: checks,
		logger: logger,
	}

	app.Get("/healthz", s.liveness)
	app.Get("/readyz", s.readiness)

	return s
}

func (s *Server) liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	results := fiber.Map{}
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			s.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := fiber.Map{"status": "ok", "checks": results}
	if status != fiber.StatusOK {
		body["status"] = "unavailable"
	}

	return c.Status(status).JSON(body)
}

// Run serves until ctx is done, then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("health server started", zap.String("addr", s.addr))
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.app.ShutdownWithContext(shutdownCtx)
}
