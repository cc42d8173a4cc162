package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"photogram/internal/cache"
	"photogram/internal/config"
	"photogram/internal/database"
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/service"
	"photogram/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	logger         *slog.Logger
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	assets         *storage.AssetStore
	authService    *service.AuthService
	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL, middleware.Logger)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	logger := middleware.Logger

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	assets := storage.NewAssetStore(cfg.UploadDir, logger)

	cascade := service.NewCascadeService(userRepo, postRepo, commentRepo, assets, logger)

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		logger:      logger,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		assets:      assets,
	}
	s.authService = service.NewAuthService(userRepo, cfg.JWTSecret)
	s.userService = service.NewUserService(userRepo, postRepo, cascade, assets)
	s.postService = service.NewPostService(postRepo, cascade, assets)
	s.commentService = service.NewCommentService(commentRepo, postRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Prometheus metrics, exposed at /metrics
	prom := fiberprometheus.New("photogram")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
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

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	// Stored assets
	app.Static("/"+storage.CollectionPosts, s.assets.Root()+"/"+storage.CollectionPosts)
	app.Static("/"+storage.CollectionAvatars, s.assets.Root()+"/"+storage.CollectionAvatars)

	authRequired := middleware.AuthRequired(s.config, s.userRepo)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", authRequired, s.Logout)
	auth.Post("/verify", authRequired, s.Verify)

	// User routes
	users := api.Group("/users", authRequired)
	users.Get("/", s.GetUsers)
	// Specific /username/:username route before the generic /:id route
	users.Get("/username/:username", s.GetUserByUsername)
	users.Get("/:id", s.GetUser)
	users.Put("/:id/password", s.ChangePassword)
	users.Put("/:id/avatar", s.UpdateAvatar)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Public post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/count/max", s.GetPostCount)

	// Comment routes, scoped under the parent post
	comments := posts.Group("/:postId/comments", authRequired)
	comments.Post("/", s.CreateComment)
	comments.Get("/", s.GetComments)
	comments.Get("/:id", s.GetComment)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Protected post routes; toggle routes before the generic /:id routes
	posts.Post("/", authRequired, s.CreatePost)
	posts.Put("/likes/:id", authRequired, s.ToggleLike)
	posts.Put("/saved/:id", authRequired, s.ToggleFavorite)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", authRequired, s.UpdatePost)
	posts.Delete("/:id", authRequired, s.DeletePost)
}

// HealthCheck handles GET /api/
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Photogram API",
		"status":  dbStatus,
		"time":    time.Now(),
	})
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			s.logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			s.logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// requireSelfOrAdmin enforces the self-service policy on /users/:id routes:
// the target must be the authenticated user unless the actor is an admin.
// A violation reads as a missing user so callers cannot probe accounts.
func requireSelfOrAdmin(c *fiber.Ctx, targetID uint) error {
	actor := middleware.CurrentUser(c)
	if actor != nil && (actor.ID == targetID || actor.IsAdmin()) {
		return nil
	}
	_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("User"))
	return errResponseWritten
}
