// Package api assembles the HTTP surface: routing, middleware, error
// mapping, and metrics exposure.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ai-quiz-app/quiz-api/internal/api/handler"
	"github.com/ai-quiz-app/quiz-api/internal/api/middleware"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
	"github.com/ai-quiz-app/quiz-api/internal/core/service"
	mongodb "github.com/ai-quiz-app/quiz-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ai-quiz-app/quiz-api/internal/infrastructure/db/redis"
	"github.com/ai-quiz-app/quiz-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *goredis.Client,
	cfg *config.Config,
	completions ports.CompletionClient,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("quiz"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	quizRepo := mongodb.NewQuizRepository(db)
	questionRepo := mongodb.NewQuestionRepository(db)
	attemptRepo := mongodb.NewAttemptRepository(db)
	counters := redisdb.NewCounterStore(rdb)

	// --- Services ---
	hasher, err := service.NewBcryptHasher()
	if err != nil {
		return nil, err
	}
	tokens := service.NewJWTTokenService(cfg.JWTSecret, service.DefaultTokenTTL)

	userService := service.NewUserService(userRepo, attemptRepo, hasher, tokens, log)
	categoryService := service.NewCategoryService(categoryRepo, quizRepo, log)
	quizService := service.NewQuizService(quizRepo, categoryRepo, questionRepo, log)
	questionService := service.NewQuestionService(questionRepo, quizRepo, log)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, questionRepo, log)
	aiService := service.NewAIService(attemptRepo, completions, log)

	// --- Handlers ---
	cookies := handler.NewCookieManager(cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService, cookies)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	quizHandler := handler.NewQuizHandler(quizService)
	questionHandler := handler.NewQuestionHandler(questionService)
	attemptHandler := handler.NewAttemptHandler(attemptService)
	aiHandler := handler.NewAIHandler(aiService)

	auth := middleware.Auth(tokens, userRepo, log)
	manager := middleware.RBAC(domain.RoleManager)
	loginLimit := middleware.LoginRateLimit(counters, log)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// --- Users ---
	api.POST("/users", userHandler.Register)
	api.POST("/users/login", userHandler.Login, loginLimit)
	api.POST("/users/logout", userHandler.Logout)
	api.POST("/users/invalidate-sessions", userHandler.InvalidateSessions, auth)
	api.GET("/users/:id", userHandler.Get, auth)
	api.GET("/users/:id/stats", userHandler.Stats, auth)
	api.GET("/users/:id/attempts", userHandler.Attempts, auth)

	// --- Categories ---
	api.GET("/categories", categoryHandler.List, auth)
	api.GET("/categories/:id", categoryHandler.Get, auth)
	api.POST("/categories", categoryHandler.Create, auth, manager)
	api.PUT("/categories/:id", categoryHandler.Update, auth, manager)
	api.DELETE("/categories/:id", categoryHandler.Delete, auth, manager)

	// --- Quizzes ---
	api.GET("/quizzes", quizHandler.List, auth)
	api.GET("/quizzes/:id", quizHandler.Get, auth)
	api.GET("/quizzes/:id/questions", quizHandler.Questions, auth)
	api.POST("/quizzes", quizHandler.Create, auth, manager)
	api.PUT("/quizzes/:id", quizHandler.Update, auth, manager)
	api.DELETE("/quizzes/:id", quizHandler.Delete, auth, manager)

	// --- Questions (manager only; responses carry correct answers) ---
	api.GET("/questions/quiz/:quizId", questionHandler.ListByQuiz, auth, manager)
	api.GET("/questions/:id", questionHandler.Get, auth, manager)
	api.POST("/questions", questionHandler.Create, auth, manager)
	api.PUT("/questions/:id", questionHandler.Update, auth, manager)
	api.DELETE("/questions/:id", questionHandler.Delete, auth, manager)

	// --- Attempts ---
	api.POST("/attempts/start", attemptHandler.Start, auth)
	api.POST("/attempts/complete", attemptHandler.Complete, auth)
	api.GET("/attempts/:id", attemptHandler.Get, auth)

	// --- AI ---
	api.POST("/ai/recommendation", aiHandler.Recommend, auth)
	api.POST("/ai/enhance-explanation", aiHandler.EnhanceExplanation, auth)

	return e, nil
}
