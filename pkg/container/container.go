package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookcatalog/internal/config"
	infraCache "bookcatalog/internal/infrastructure/cache"
	"bookcatalog/internal/infrastructure/database"
	"bookcatalog/pkg/cache"
	"bookcatalog/pkg/token"

	"bookcatalog/internal/domains/author"
	authorHandler "bookcatalog/internal/domains/author/handler"
	authorRepo "bookcatalog/internal/domains/author/repository"
	authorService "bookcatalog/internal/domains/author/service"
	"bookcatalog/internal/domains/book"
	bookHandler "bookcatalog/internal/domains/book/handler"
	bookRepo "bookcatalog/internal/domains/book/repository"
	bookService "bookcatalog/internal/domains/book/service"
	"bookcatalog/internal/domains/user"
	userHandler "bookcatalog/internal/domains/user/handler"
	userRepo "bookcatalog/internal/domains/user/repository"
	userService "bookcatalog/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, wired bottom-up: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Tokens *token.Manager

	UserRepo   user.Repository
	AuthorRepo author.Repository
	BookRepo   book.Repository

	UserService   user.Service
	AuthorService author.Service
	BookService   book.Service

	UserHandler   *userHandler.UserHandler
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer builds the whole graph. A database failure is fatal; a
// Redis failure is logged and the app runs without warm caches.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache hits")
	}
	c.Cache = redisCache

	c.Tokens = token.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, c.Cache)

	c.UserService = userService.NewUserService(c.UserRepo, c.Tokens)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	log.Info().Str("env", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis client")
		}
	}
	log.Info().Msg("container cleanup completed")
}
