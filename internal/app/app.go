package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/repositories"
	"taskboard/internal/repositories/inmemory"
	"taskboard/internal/routes"
	"taskboard/internal/services"
)

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	// === Store ===
	var (
		taskRepo repositories.TaskRepository
		userRepo repositories.UserRepository
	)
	switch cfg.Repository.Type {
	case "inmemory":
		taskRepo = inmemory.NewTaskStorage()
		userRepo = inmemory.NewUserStorage()
		logger.Info("using in-memory repositories")
	default:
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if err := runMigrations(cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		taskRepo = repositories.NewTaskRepository(db)
		userRepo = repositories.NewUserRepository(db)
	}

	// === Services ===
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL.Std())
	userService := services.NewUserService(userRepo, tokens, cfg.Auth.RefreshTTL.Std())
	taskService := services.NewTaskService(taskRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// === Gin ===
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authHandler, taskHandler, tokens, userService)

	logger.Info("server started", zap.String("addr", cfg.ListenAddr()))
	return router.Run(cfg.ListenAddr())
}

func runMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
