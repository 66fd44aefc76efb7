package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	tx := repository.NewTxManager(db)
	services := service.NewServices(repos, tx, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(cfg),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", h.Auth.Logout)

	// Reading blogs and their comment trees needs no account.
	v1.Get("/blogs", h.Blog.List)
	v1.Get("/blogs/:blogId", h.Blog.GetByID)
	v1.Get("/blogs/:blogId/comments", h.Comment.ListByBlog)
	v1.Get("/comments/:commentId/replies", h.Comment.ListReplies)
	v1.Get("/comments/:commentId/thread", h.Comment.ListThread)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Post("/blogs", h.Blog.Create)
	protected.Post("/blogs/:blogId/like", h.Blog.ToggleLike)
	protected.Post("/blogs/:blogId/banner", h.Blog.UploadBanner)

	protected.Post("/comments", h.Comment.Create)
	protected.Delete("/comments/:commentId", h.Comment.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unseen-count", h.Notification.GetUnseenCount)
	notifications.Patch("/:id/seen", h.Notification.MarkSeen)
	notifications.Post("/mark-all-seen", h.Notification.MarkAllSeen)
	notifications.Delete("/:id", h.Notification.Dismiss)

	users := protected.Group("/users")
	users.Get("/me", h.User.Me)
	users.Patch("/me", h.User.UpdateMe)
	users.Post("/me/avatar", h.User.UploadAvatar)
}
