package container

import (
	"context"
	"fmt"
	"time"

	"merchant-directory-backend/internal/config"
	infraCache "merchant-directory-backend/internal/infrastructure/cache"
	"merchant-directory-backend/internal/infrastructure/database"
	"merchant-directory-backend/internal/infrastructure/storage"
	"merchant-directory-backend/pkg/cache"
	"merchant-directory-backend/pkg/jwt"

	merchantHandler "merchant-directory-backend/internal/domains/merchant/handler"
	merchantRepo "merchant-directory-backend/internal/domains/merchant/repository"
	merchantService "merchant-directory-backend/internal/domains/merchant/service"
	userHandler "merchant-directory-backend/internal/domains/user/handler"
	userRepo "merchant-directory-backend/internal/domains/user/repository"
	userService "merchant-directory-backend/internal/domains/user/service"

	"github.com/rs/zerolog/log"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// Repositories
	UserRepo     userRepo.RepositoryInterface
	MerchantRepo merchantRepo.RepositoryInterface

	// Services
	UserService        userService.ServiceInterface
	MerchantService    merchantService.ServiceInterface
	BatchImportService merchantService.BatchImportServiceInterface

	// Handlers
	UserHandler        *userHandler.UserHandler
	MerchantHandler    *merchantHandler.MerchantHandler
	BatchUploadHandler *merchantHandler.BatchUploadHandler
}

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// 2. Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	// 3. Cache (non-critical: every cached path degrades to the DB)
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		} else {
			log.Info().Msg("Redis connected")
		}
	}
	c.Cache = redisCache

	// 4. Object storage (critical: the importer cannot run without it)
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("Object storage ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// 5. Repositories
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.MerchantRepo = merchantRepo.NewPostgresRepository(db.Pool, c.Cache)

	// 6. Services
	c.UserService = userService.NewUserService(c.UserRepo)
	c.MerchantService = merchantService.NewMerchantService(c.MerchantRepo)
	c.BatchImportService = merchantService.NewBatchImportService(
		c.MerchantRepo,
		c.Storage,
		merchantService.NewHTTPDownloader(),
	)

	// 7. Handlers
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.MerchantHandler = merchantHandler.NewMerchantHandler(c.MerchantService, cfg.Site.BaseURL)
	c.BatchUploadHandler = merchantHandler.NewBatchUploadHandler(c.BatchImportService)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Info().Msg("Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis")
			}
		}
	}
}
