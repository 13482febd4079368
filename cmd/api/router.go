package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/domains/user"
	"bookcatalog/internal/shared/middleware"
	"bookcatalog/pkg/container"
)

// SetupRouter wires the route table. Every catalogue route sits behind
// the role gate; only login and the health probe are public.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	authors.Use(middleware.Authenticate(c.Tokens, user.RoleAdmin, user.RoleClient))
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PATCH("/:id", c.AuthorHandler.Update)
		authors.PUT("/:id", c.AuthorHandler.Replace)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.Authenticate(c.Tokens, user.RoleAdmin, user.RoleClient))
	{
		// Registered before /:id so "aggregation" is not parsed as an id.
		books.GET("/aggregation", c.BookHandler.Aggregate)

		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PATCH("/:id", c.BookHandler.Update)
		books.PUT("/:id", c.BookHandler.Replace)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.POST("/login", c.UserHandler.Login)
		users.POST("/register", middleware.Authenticate(c.Tokens, user.RoleAdmin), c.UserHandler.Register)

		users.POST("", middleware.Authenticate(c.Tokens, user.RoleAdmin), c.UserHandler.Create)
		users.GET("", middleware.Authenticate(c.Tokens, user.RoleAdmin), c.UserHandler.GetAll)
		users.GET("/:id", middleware.Authenticate(c.Tokens, user.RoleAdmin, user.RoleClient), c.UserHandler.GetByID)
		users.PATCH("/:id", middleware.Authenticate(c.Tokens, user.RoleAdmin, user.RoleClient), c.UserHandler.Update)
		users.PUT("/:id", middleware.Authenticate(c.Tokens, user.RoleAdmin), c.UserHandler.Replace)
		users.DELETE("/:id", middleware.Authenticate(c.Tokens, user.RoleAdmin), c.UserHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		services := gin.H{"database": "ok", "redis": "ok"}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.Ping(ctx); err != nil {
			services["database"] = "error"
			health["status"] = "degraded"
		}
		if err := appCtx.Cache.Ping(ctx); err != nil {
			// Redis is an accelerator here, not a dependency.
			services["redis"] = "error"
		}

		health["services"] = services

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
