package app

import (
	"fmt"

	"blog_backend/internal/config"
	"blog_backend/internal/email"
	"blog_backend/internal/handlers"
	"blog_backend/internal/logger"
	"blog_backend/internal/middleware"
	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/internal/routes"
	"blog_backend/internal/services"
	"blog_backend/internal/storage"
	"blog_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the whole application and blocks serving HTTP.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the repositories depend on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := SeedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate creates or updates the schema for every model, including the
// unique index backing the one-like-per-user invariant.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserVerification{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)
}

// SetupRouter assembles repositories, services, handlers and middleware
// into a ready gin engine. Tests call this directly against their own DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	files, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	mailer := email.NewSMTPSender(cfg)

	registry := BuildHandlers(mailer, files)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.DBMiddleware(gormDB),
	)

	routes.RegisterRoutes(router, registry)

	return router
}

// BuildHandlers constructs the full dependency graph below the router.
// Split out so tests can swap the mail provider and storage backend.
func BuildHandlers(mailer email.Provider, files storage.Storage) *handlers.Registry {
	userRepo := repositories.NewUserRepository()
	verificationRepo := repositories.NewVerificationRepository()
	postRepo := repositories.NewPostRepository()
	categoryRepo := repositories.NewCategoryRepository()
	commentRepo := repositories.NewCommentRepository()

	authService := services.NewAuthService(userRepo, verificationRepo, mailer)
	userService := services.NewUserService(userRepo, verificationRepo, mailer, files)
	postService := services.NewPostService(postRepo, categoryRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	base := handlers.NewBaseHandler(validator.New())

	return &handlers.Registry{
		Auth:    handlers.NewAuthHandler(base, authService),
		Posts:   handlers.NewPostHandler(base, postService),
		Comment: handlers.NewCommentHandler(base, commentService),
		Users:   handlers.NewUserHandler(base, userService),
	}
}
