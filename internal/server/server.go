// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "formhub/docs" // swagger docs
	"formhub/internal/cache"
	"formhub/internal/config"
	"formhub/internal/database"
	"formhub/internal/middleware"
	"formhub/internal/models"
	"formhub/internal/repository"
	"formhub/internal/search"
	"formhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository

	authService     *service.AuthService
	formService     *service.FormService
	questionService *service.QuestionService
	answerService   *service.AnswerService
	commentService  *service.CommentService
	likeService     *service.LikeService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	formRepo := repository.NewFormRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// Fuzzy search backend: pg_trgm by default, in-process trigrams for
	// stores without the extension.
	var searcher search.Searcher
	if cfg.SearchBackend == "memory" {
		searcher = search.NewMemorySearcher(db)
	} else {
		searcher = search.NewPostgresSearcher(db)
	}

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("formhub-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		formRepo:       formRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
	}

	server.authService = service.NewAuthService(userRepo, cfg)
	server.formService = service.NewFormService(formRepo, userRepo, searcher)
	server.questionService = service.NewQuestionService(questionRepo, formRepo)
	server.answerService = service.NewAnswerService(answerRepo, questionRepo, formRepo, userRepo)
	server.commentService = service.NewCommentService(commentRepo, formRepo, userRepo)
	server.likeService = service.NewLikeService(likeRepo, formRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry span per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application. The endpoint paths
// are the historical ones the clients already use; Fiber's non-strict
// routing accepts them with or without the trailing slash.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	app.Get("/api/swagger/*", swagger.HandlerDefault)

	// Users and auth
	app.Get("/get-users", s.GetUsers)
	app.Post("/get-users", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Put("/get-users", s.AuthRequired(), s.UpdateUserRole)
	app.Post("/create-user", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Post("/token-refresh", s.RefreshToken)

	// Forms
	forms := app.Group("/forms-info", s.AuthRequired())
	forms.Get("/", s.GetForms)
	forms.Post("/", s.CreateForm)
	forms.Put("/", s.UpdateForm)
	forms.Delete("/", s.DeleteForm)
	forms.Get("/:userId", s.GetUserForms)

	// Fuzzy search is public
	app.Get("/search-forms", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchForms)

	app.Get("/unanswered-forms/:userId", s.AuthRequired(), s.GetUnansweredForms)

	// Questions
	questions := app.Group("/get-question", s.AuthRequired())
	questions.Get("/:formId", s.GetQuestions)
	questions.Post("/:formId", s.CreateQuestions)
	questions.Put("/:formId", s.UpsertQuestions)

	// Answers
	answers := app.Group("/get-answer", s.AuthRequired())
	answers.Get("/:formId", s.GetAnswers)
	answers.Post("/:formId", s.CreateAnswers)
	app.Get("/get-answers", s.AuthRequired(), s.GetLatestAnswers)

	// Comments
	comments := app.Group("/comments", s.AuthRequired())
	comments.Get("/:formId", s.GetComments)
	comments.Post("/:formId", s.CreateComment)
	app.Delete("/comment/:commentId", s.AuthRequired(), s.DeleteComment)

	// Likes
	likes := app.Group("/likes", s.AuthRequired())
	likes.Get("/:formId", s.GetLikes)
	likes.Post("/:formId", s.LikeForm)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// the cache is optional; readiness only degrades, it does not fail
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It accepts a Bearer
// access token, validates it and stores the user ID in locals and in the
// request context for the logging layer.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Missing authorization header"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		claims, err := s.authService.ParseToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		if claims.TokenType != "access" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token type"))
		}

		c.Locals("userID", claims.UserID)

		// propagate for the context-aware logger
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Shutdown gracefully stops the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
