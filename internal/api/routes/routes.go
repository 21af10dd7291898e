package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/newsloop/news-api/internal/api/handlers"
	"github.com/newsloop/news-api/internal/assistant"
	"github.com/newsloop/news-api/internal/config"
	"github.com/newsloop/news-api/internal/constants"
	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/store"
)

// Deps holds the constructed collaborators the router wires together.
type Deps struct {
	Store     *store.Postgres
	Redis     *store.Redis
	Search    *search.Client
	Engine    *recommend.Engine
	Assistant *assistant.Service
	Auth      *middlewares.Authenticator
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, deps *Deps) *gin.Engine {
	registerValidations()

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(middlewares.Tracing())

	newsHandler := handlers.NewNewsHandler(deps.Store, deps.Engine, cfg.Recommend.PoolSize)
	likeHandler := handlers.NewLikeHandler(deps.Store)
	commentHandler := handlers.NewCommentHandler(deps.Store)
	authHandler := handlers.NewAuthHandler(deps.Store, deps.Auth)
	searchHandler := handlers.NewSearchHandler(deps.Search, deps.Store, deps.Engine)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Store)
	chatHandler := handlers.NewChatHandler(deps.Assistant, deps.Store)
	trendingHandler := handlers.NewTrendingHandler(deps.Store, deps.Redis)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Redis, deps.Search)

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/news", deps.Auth.OptionalAuth(), newsHandler.List)
		api.GET("/news/:id", deps.Auth.OptionalAuth(), newsHandler.Detail)
		api.GET("/news/:id/comments", commentHandler.List)
		api.GET("/trending", trendingHandler.Trending)
		api.GET("/search", deps.Auth.OptionalAuth(), searchHandler.Search)
		api.GET("/search/autocomplete", searchHandler.Autocomplete)
		api.POST("/chat", deps.Auth.OptionalAuth(), chatHandler.Chat)

		authed := api.Group("", deps.Auth.RequireAuth())
		{
			authed.GET("/news/liked", likeHandler.Liked)
			authed.POST("/news/:id/like", likeHandler.Like)
			authed.DELETE("/news/:id/like", likeHandler.Unlike)
			authed.POST("/news/:id/comments", commentHandler.Create)
			authed.PUT("/comments/:id", commentHandler.Update)
			authed.DELETE("/comments/:id", commentHandler.Delete)
			authed.GET("/analyze", analyzeHandler.Analyze)
		}
	}

	r.GET("/health", healthHandler.Readiness)
	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// registerValidations installs custom binding rules on gin's validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return constants.IsAllCategories(value) || constants.IsValidCategory(value)
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
