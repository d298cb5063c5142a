package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/kinostream/backend/internal/auth"
	"github.com/kinostream/backend/internal/comment"
	"github.com/kinostream/backend/internal/favorite"
	"github.com/kinostream/backend/internal/media"
	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/movie"
	"github.com/kinostream/backend/internal/rating"
	"github.com/kinostream/backend/internal/user"
)

func SetupRoutes(app *fiber.App, deps Deps) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	authSvc := auth.NewService(deps.Cfg, deps.Users, deps.Tokens, deps.Mailer)
	authHandler := auth.NewHandler(authSvc)
	googleHandler := auth.NewGoogleHandler(deps.Cfg, authSvc)
	userHandler := user.NewHandler(deps.Users)
	movieHandler := movie.NewHandler(deps.Movies)
	mediaHandler := media.NewHandler(deps.Movies, deps.Presigner)
	ratingSvc := rating.NewService(deps.Ratings, deps.Movies)
	ratingHandler := rating.NewHandler(ratingSvc, deps.Ratings)
	commentHandler := comment.NewHandler(deps.Comments, deps.Movies)
	favoriteHandler := favorite.NewHandler(deps.Favorites, deps.Movies)

	protected := authSvc.Protected()

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "KinoStream API is running",
		})
	})

	api := app.Group("/api")

	// ==========================================
	// AUTH
	// ==========================================
	authGroup := api.Group("/auth")
	if deps.Cfg.Env != "test" {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        10,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
		}))
	}
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", protected, authHandler.Logout)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/google/login", googleHandler.Login)
	authGroup.Get("/google/callback", googleHandler.Callback)

	// ==========================================
	// USERS
	// ==========================================
	userGroup := api.Group("/users")
	userGroup.Use(protected)
	userGroup.Get("/profile", userHandler.GetProfile)
	userGroup.Put("/profile", userHandler.UpdateProfile)
	userGroup.Put("/change-password", userHandler.ChangePassword)
	userGroup.Delete("/account", userHandler.DeleteAccount)

	// ==========================================
	// MOVIES
	// ==========================================
	movieGroup := api.Group("/movies")
	movieGroup.Get("/", movieHandler.List)
	movieGroup.Get("/:id", movieHandler.Get)
	movieGroup.Post("/", protected, auth.RoleProtected(models.RoleAdmin), movieHandler.Create)
	movieGroup.Put("/:id", protected, auth.RoleProtected(models.RoleAdmin, models.RoleModerator), movieHandler.Update)
	movieGroup.Delete("/:id", protected, auth.RoleProtected(models.RoleAdmin), movieHandler.Delete)
	movieGroup.Get("/:id/video", protected, mediaHandler.GetVideo)
	movieGroup.Get("/:id/video/info", protected, mediaHandler.GetVideoInfo)

	// ==========================================
	// RATINGS
	// ==========================================
	ratingGroup := api.Group("/ratings")
	ratingGroup.Get("/movie/:movieId", ratingHandler.ListByMovie)
	ratingGroup.Post("/", protected, ratingHandler.Create)
	ratingGroup.Get("/me", protected, ratingHandler.ListMine)
	ratingGroup.Put("/:id", protected, ratingHandler.Update)
	ratingGroup.Delete("/:id", protected, ratingHandler.Delete)

	// ==========================================
	// COMMENTS
	// ==========================================
	commentGroup := api.Group("/comments")
	commentGroup.Get("/movie/:movieId", commentHandler.ListByMovie)
	commentGroup.Post("/", protected, commentHandler.Create)
	commentGroup.Put("/:id", protected, commentHandler.Update)
	commentGroup.Delete("/:id", protected, commentHandler.Delete)

	// ==========================================
	// FAVORITES
	// ==========================================
	favoriteGroup := api.Group("/favorites")
	favoriteGroup.Use(protected)
	favoriteGroup.Post("/", favoriteHandler.Create)
	favoriteGroup.Get("/", favoriteHandler.List)
	favoriteGroup.Put("/:id", favoriteHandler.Update)
	favoriteGroup.Delete("/:id", favoriteHandler.Delete)
}
