package container

import (
	"context"
	"fmt"
	"time"

	"votepulse/internal/config"
	"votepulse/internal/repository"
	"votepulse/internal/service"
	"votepulse/pkg/database"
	"votepulse/pkg/logger"
	"votepulse/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	Mongo        *database.Mongo
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
}

// New creates a new dependency injection container. The document store is
// required; Redis is optional and its absence only disables caching.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongo, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	log.Info("Document store connected")

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	repos := &repository.Repositories{
		Account: repository.NewAccountRepository(mongo),
		Visit:   repository.NewVisitRepository(mongo),
		Tally:   repository.NewTallyRepository(mongo),
	}

	services := &service.Services{
		Auth:       service.NewAuthService(repos.Account, cfg.JWTSecret, log),
		Engagement: service.NewEngagementService(repos.Tally, repos.Visit, repos.Account, redisClient, log),
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		Mongo:        mongo,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
	}, nil
}

// Close releases every held connection
func (c *Container) Close(ctx context.Context) error {
	var firstErr error

	if err := c.Services.Engagement.Stop(ctx); err != nil {
		c.Logger.WithError(err).Error("Failed to stop engagement service")
		firstErr = err
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis client")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := c.Mongo.Close(ctx); err != nil {
		c.Logger.WithError(err).Error("Failed to close document store connection")
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetEngagementService returns the engagement service
func (c *Container) GetEngagementService() service.EngagementService {
	return c.Services.Engagement
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetMongo returns the document store handle
func (c *Container) GetMongo() *database.Mongo {
	return c.Mongo
}

// GetRedis returns the Redis client (may be nil if not configured)
func (c *Container) GetRedis() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
