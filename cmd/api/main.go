// @title LearnLoop API
// @version 1.0
// @description Quiz serving, grading and mastery aggregation for the LearnLoop platform.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"learnloop/internal/adapter"
	"learnloop/internal/adapter/quizgen"
	"learnloop/internal/cache"
	"learnloop/internal/config"
	"learnloop/internal/database"
	"learnloop/internal/handler"
	"learnloop/internal/logger"
	"learnloop/internal/middleware"
	"learnloop/internal/repository"
	"learnloop/internal/service"

	_ "learnloop/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to Oracle database")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis")

	questionGenerator, err := quizgen.NewOllamaQuestionGenerator(cfg.LLM.ServerURL, cfg.LLM.Model, cfg.LLM.Timeout)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}
	appLogger.Info("Question generator initialized",
		zap.String("server_url", cfg.LLM.ServerURL), zap.String("model", cfg.LLM.Model))

	// Repositories
	questionSetRepository := repository.NewSQLXQuestionSetRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	skillStatsRepository := repository.NewSQLXSkillStatsRepository(db)
	syllabusRepository := repository.NewSQLXSyllabusRepository(db)

	// Services
	resolver := service.NewQuestionSetResolver(questionSetRepository, attemptRepository, syllabusRepository, questionGenerator, nil, cfg.Quiz.DefaultNumQuestions)
	grader := service.NewGrader(attemptRepository)
	aggregator := service.NewSkillAggregator(skillStatsRepository)
	quizService := service.NewQuizService(resolver, grader, aggregator, questionSetRepository, cacheAdapter, cfg.Quiz)
	statsService := service.NewStatsService(skillStatsRepository, attemptRepository, aggregator, cacheAdapter, cfg.Quiz)

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService)
	statsHandler := handler.NewStatsHandler(statsService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	protected := middleware.Protected(cfg.Auth.JWTSecret)

	apiGroup := app.Group("/api")
	apiGroup.Post("/quiz/generate", protected, quizHandler.GenerateQuiz)
	apiGroup.Post("/quiz/submit", protected, quizHandler.SubmitQuiz)

	studentGroup := apiGroup.Group("/students", protected)
	studentGroup.Get("/me/skill-stats", statsHandler.GetMyStats)
	studentGroup.Get("/me/attempts", statsHandler.GetMyAttempts)

	apiGroup.Post("/classes/skill-stats", protected, statsHandler.GetClassStats)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
