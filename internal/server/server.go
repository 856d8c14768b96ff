package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/orourkera/rucking/internal/auth"
	"github.com/orourkera/rucking/internal/config"
	"github.com/orourkera/rucking/internal/healthsync"
	"github.com/orourkera/rucking/internal/session"
	"github.com/orourkera/rucking/internal/stats"
	"github.com/orourkera/rucking/internal/user"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	statsTTL := time.Duration(s.Cfg.StatsCacheTTLSeconds) * time.Second

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	user.RegisterRoutes(s.App.Group("/users"), user.NewService(s.DB), jwtMiddleware)
	session.RegisterRoutes(s.App.Group("/sessions"), session.NewService(s.DB), jwtMiddleware)
	stats.RegisterRoutes(s.App.Group("/statistics", jwtMiddleware), stats.NewService(s.DB, s.Redis, statsTTL))
	healthsync.RegisterRoutes(s.App.Group("/apple-health"),
		healthsync.NewService(s.DB, s.Cfg.ImportCommitPerWorkout), jwtMiddleware)
}
