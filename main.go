package main

import (
	"log"

	"surveypro/config"
	"surveypro/handlers"
	"surveypro/logger"
	"surveypro/middleware"
	"surveypro/models"
	"surveypro/routes"
	"surveypro/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.Option{},
		&models.Invitation{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret, zlog)
	surveyService := services.NewSurveyService(db, zlog)
	questionService := services.NewQuestionService(db, zlog)
	invitationService := services.NewInvitationService(db, zlog)
	responseService := services.NewResponseService(db, redisClient, zlog)
	resultsService := services.NewResultsService(db, zlog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	invitationHandler := handlers.NewInvitationHandler(invitationService, cfg.BaseURL)
	responseHandler := handlers.NewResponseHandler(responseService)
	resultsHandler := handlers.NewResultsHandler(resultsService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, surveyHandler, questionHandler,
		invitationHandler, responseHandler, resultsHandler, cfg.JWTSecret)

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(cfg.BindAddress + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
