package main

import (
	"os"
	"os/signal"
	"syscall"

	configs "github.com/hexanode/accounts/config"
	"github.com/hexanode/accounts/internal/handler"
	"github.com/hexanode/accounts/internal/middleware"
	"github.com/hexanode/accounts/internal/repository"
	"github.com/hexanode/accounts/internal/router"
	"github.com/hexanode/accounts/internal/service"
	"github.com/hexanode/accounts/pkg/database"
	"github.com/hexanode/accounts/pkg/logger"
	"github.com/hexanode/accounts/pkg/redis"
	"github.com/hexanode/accounts/pkg/tokencache"
	"github.com/hexanode/accounts/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	if err := validation.RegisterRules(); err != nil {
		logger.GetLogger().Fatal("Failed to register validation rules", zap.Error(err))
	}

	db, err := database.NewMySQLDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db); err != nil {
		// Seed data may already exist
		logger.GetLogger().Warn("Failed to seed database", zap.Error(err))
	}

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	denylist := tokencache.NewDenylist(redisClient, config.JWT.RefreshTTL)
	userService := service.NewUserService(userRepo, connRepo, tokenService, denylist, config.JWT.BcryptCost)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	jwtMiddleware := middleware.NewJWTMiddleware(tokenService, denylist)

	r := router.NewRouter(
		userHandler,
		authHandler,
		healthHandler,
		jwtMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
