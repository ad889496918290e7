package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"hourcount/docs"
	"hourcount/internal/auth"
	"hourcount/internal/cache"
	"hourcount/internal/config"
	"hourcount/internal/db"
	"hourcount/internal/handler"
	"hourcount/internal/logging"
	"hourcount/internal/repository"
	"hourcount/internal/router"
	"hourcount/internal/service"
)

// @title Hour Count API
// @version 1.0
// @description Volunteering-hour tracking portal: members log activity hours, reviewers approve or reject them, per-category counters accumulate.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	logger := logging.New(slog.LevelInfo)
	slog.SetDefault(logger)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessionStore := auth.NewSessionStore(cacheClient)
	oauthConfig := auth.NewGoogleOAuthConfig(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	deptRepo := repository.NewDepartmentRepository(gormDB)
	hourLogRepo := repository.NewHourLogRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionStore, oauthConfig)
	hourLogService := service.NewHourLogService(hourLogRepo, userRepo, cacheClient)
	memberService := service.NewMemberService(userRepo, cacheClient)
	userService := service.NewUserService(userRepo, deptRepo, hourLogRepo, cacheClient)
	pruningService := service.NewPruningService(hourLogRepo, userRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	memberHandler := handler.NewMemberHandler(hourLogService, memberService)
	moderatorHandler := handler.NewModeratorHandler(hourLogService, memberService, userService)
	adminHandler := handler.NewAdminHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		memberHandler,
		moderatorHandler,
		adminHandler,
	)

	// Retention sweep on a fixed cadence; the cron driver invokes it
	// serially so runs never overlap.
	c := cron.New()
	if _, err := c.AddFunc(cfg.PruneSchedule, func() {
		logger.Info("running scheduled pruning job")
		pruningService.Run(context.Background())
	}); err != nil {
		log.Fatalf("schedule pruning: %v", err)
	}
	c.Start()
	defer c.Stop()

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
