package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/highshore/rumi-talk/internal/ai"
	"github.com/highshore/rumi-talk/internal/auth"
	"github.com/highshore/rumi-talk/internal/cache"
	"github.com/highshore/rumi-talk/internal/config"
	"github.com/highshore/rumi-talk/internal/database"
	"github.com/highshore/rumi-talk/internal/handler"
	"github.com/highshore/rumi-talk/internal/relationship"
	"github.com/highshore/rumi-talk/internal/stream"
	"github.com/highshore/rumi-talk/internal/token"

	// Swagger imports
	_ "github.com/highshore/rumi-talk/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           RumiTalk API
// @version         1.0
// @description     Chat backend: token issuance, AI helpers and the friend-relationship subsystem.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	database.Connect(cfg.DatabaseURL)
	cache.Connect(cfg.RedisAddr)

	// Friend-relationship subsystem: gorm store + resolver + orchestrator.
	store := relationship.NewGormStore(database.DB)
	resolver := relationship.NewResolver(store, cache.Rdb)
	friendSvc := relationship.NewService(store, resolver)

	streamSvc := stream.NewTokenService(cfg.StreamAPISecret)
	customSvc := token.NewService(database.DB, cfg.JWTSecret)
	aiClient := ai.NewClient(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel)

	friendHandler := handler.NewFriendHandler(friendSvc)
	tokenHandler := handler.NewTokenHandler(streamSvc, customSvc)
	aiHandler := handler.NewAIHandler(aiClient)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Token routes; the custom-token route is the entry point for
		// clients that have not authenticated yet.
		tokenRoutes := apiV1.Group("/tokens")
		{
			tokenRoutes.POST("/custom", tokenHandler.CreateCustomToken)
			tokenRoutes.POST("/stream", auth.AuthMiddleware(), tokenHandler.GenerateStreamToken)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.FindUserByEmail)
			userRoutes.GET("/me", handler.GetMe)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", friendHandler.GetRelationships)
			friendRoutes.POST("/request", friendHandler.SendRequest)
			friendRoutes.POST("/accept", friendHandler.AcceptRequest)
			friendRoutes.POST("/decline", friendHandler.DeclineRequest)
			friendRoutes.POST("/cancel", friendHandler.CancelRequest)
		}

		// AI helper routes (protected)
		aiRoutes := apiV1.Group("/ai")
		aiRoutes.Use(auth.AuthMiddleware())
		{
			aiRoutes.POST("/suggest-reply", aiHandler.SuggestReply)
			aiRoutes.POST("/translate", aiHandler.Translate)
		}
	}

	logrus.Infof("Server is running on %s", cfg.ServerAddr)
	logrus.Info("Swagger UI is available at /swagger/index.html")
	logrus.Fatal(router.Run(cfg.ServerAddr))
}
