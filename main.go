package main

import (
	"log"
	"net/http"
	"time"

	"exam-service/internal/config"
	"exam-service/internal/db"
	"exam-service/internal/event"
	"exam-service/internal/handlers"
	"exam-service/internal/identity"
	"exam-service/internal/progress"
	"exam-service/internal/repository"
	"exam-service/internal/service"
	"exam-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.New()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(cfg.MongoURI)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitURL != "" && cfg.EventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitURL, cfg.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, exam events will not be published")
	}

	// Redis progress cache for in-flight sessions
	progressStore := progress.NewStore(cfg.RedisAddr, cfg.RedisPassword)
	if progressStore == nil {
		log.Println("Redis not configured, in-flight sessions will not survive restarts")
	} else {
		defer progressStore.Close()
	}

	// Consul service registration
	if cfg.ConsulAddress != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Service discovery init failed: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Printf("Consul registration failed: %v", err)
		} else {
			defer registry.Deregister()
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.DatabaseName)

	// Categories
	categoryRepo := repository.NewCategoryRepository(database)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Tests
	testRepo := repository.NewTestRepository(database)
	testService := service.NewTestService(testRepo)
	testHandler := handlers.NewTestHandler(testService)

	// Questions
	questionRepo := repository.NewQuestionRepository(database)
	questionService := service.NewQuestionService(questionRepo)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Results
	resultRepo := repository.NewResultRepository(database)
	resultService := service.NewResultService(resultRepo)
	resultHandler := handlers.NewResultHandler(resultService)

	// Notifications
	notificationRepo := repository.NewNotificationRepository(database)
	notificationService := service.NewNotificationService(notificationRepo, publisher)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Exam sessions
	examService := service.NewExamService(testRepo, questionRepo, resultRepo, publisher, progressStore)
	sessionHandler := handlers.NewSessionHandler(examService)

	jwtService := identity.NewJWTService(cfg.JWTSecret)

	// Health check for the consul probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   cfg.ServiceName,
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Public routes - category hierarchy and test catalog
	publicCategory := r.Group("/public/exam/category")
	{
		publicCategory.GET("/", categoryHandler.ListMainSections)
		publicCategory.GET("/:mainSectionId/sub", categoryHandler.ListSubSections)
		publicCategory.GET("/:mainSectionId/sub/:subSectionId", categoryHandler.ListCategories)
	}

	publicTest := r.Group("/public/exam/test")
	{
		publicTest.GET("/", testHandler.ListTests)
		publicTest.GET("/:id", testHandler.GetTest)
	}

	// Protected routes - admin console
	protectedAdmin := r.Group("/protected/exam/admin")
	protectedAdmin.Use(identity.Middleware(jwtService))
	{
		protectedAdmin.POST("/test/", testHandler.CreateTest)
		protectedAdmin.PUT("/test/:id", testHandler.UpdateTest)
		protectedAdmin.DELETE("/test/:id", testHandler.DeleteTest)

		protectedAdmin.GET("/question/", questionHandler.ListQuestions)
		protectedAdmin.GET("/question/:id", questionHandler.GetQuestion)
		protectedAdmin.POST("/question/", questionHandler.CreateQuestion)
		protectedAdmin.PUT("/question/:id", questionHandler.UpdateQuestion)
		protectedAdmin.DELETE("/question/:id", questionHandler.DeleteQuestion)

		protectedAdmin.POST("/category/main", categoryHandler.CreateMainSection)
		protectedAdmin.POST("/category/sub", categoryHandler.CreateSubSection)
		protectedAdmin.POST("/category/", categoryHandler.CreateCategory)
		protectedAdmin.DELETE("/category/:id", categoryHandler.DeleteCategory)

		protectedAdmin.POST("/notification/", notificationHandler.SendNotification)
		protectedAdmin.DELETE("/notification/:id", notificationHandler.DeleteNotification)
	}

	// Protected routes - student console
	protectedStudent := r.Group("/protected/exam/student")
	protectedStudent.Use(identity.Middleware(jwtService))
	{
		protectedStudent.GET("/results", resultHandler.GetMyResults)
		protectedStudent.GET("/results/:id", resultHandler.GetResult)
		protectedStudent.GET("/performance", resultHandler.GetPerformance)
		protectedStudent.GET("/notifications", notificationHandler.ListMyNotifications)
	}

	setupSessionRoutes(r, sessionHandler, jwtService, publisher)

	r.Run(":" + cfg.Port)
}

func setupSessionRoutes(r *gin.Engine, sessionHandler *handlers.SessionHandler, jwtService *identity.JWTService, publisher *event.EventPublisher) {
	protectedSession := r.Group("/protected/exam/session")
	protectedSession.Use(identity.Middleware(jwtService))
	{
		// === SESSION LIFECYCLE ===

		protectedSession.POST("/", func(c *gin.Context) {
			sessionHandler.StartSession(c)
			publisher.Publish("exam.session.start_requested", gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		})

		protectedSession.GET("/:id", sessionHandler.GetSession)
		protectedSession.POST("/:id/restore", sessionHandler.Restore)

		// === EXAM INTERACTION ===

		protectedSession.POST("/:id/answer", sessionHandler.SelectAnswer)
		protectedSession.POST("/:id/advance", sessionHandler.Advance)
		protectedSession.POST("/:id/retreat", sessionHandler.Retreat)
		protectedSession.POST("/:id/mark", sessionHandler.ToggleMark)

		// === SESSION TERMINATION ===

		protectedSession.POST("/:id/submit", sessionHandler.Submit)
		protectedSession.POST("/:id/abort", sessionHandler.Abort)
	}
}
