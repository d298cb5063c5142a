package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kinostream/backend/internal/config"
	"github.com/kinostream/backend/internal/mailer"
	"github.com/kinostream/backend/internal/media"
	"github.com/kinostream/backend/internal/store"
)

// Deps carries everything the route table needs; main wires the Mongo-backed
// implementations, the tests wire in-memory ones.
type Deps struct {
	Cfg       *config.Config
	Users     store.UserStore
	Movies    store.MovieStore
	Ratings   store.RatingStore
	Comments  store.CommentStore
	Favorites store.FavoriteStore
	Tokens    store.TokenStore
	Mailer    mailer.Mailer
	Presigner media.Presigner
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	SetupRoutes(app, deps)

	return app
}
