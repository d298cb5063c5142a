package main

import (
	"context"
	"log"

	"github.com/kinostream/backend/internal/config"
	"github.com/kinostream/backend/internal/database"
	"github.com/kinostream/backend/internal/mailer"
	"github.com/kinostream/backend/internal/media"
	"github.com/kinostream/backend/internal/server"
	"github.com/kinostream/backend/internal/store"
	"github.com/kinostream/backend/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("❌ MongoDB connection failed: ", err)
	}
	defer db.Close(context.Background())
	log.Println("✅ Connected to MongoDB")

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("❌ Index creation failed: ", err)
	}
	log.Println("✅ Indexes ensured (unique, compound, TTL)")

	// ========== MEDIA STORAGE ==========
	var presigner media.Presigner
	if mediaSvc, err := media.NewService(cfg); err != nil {
		log.Println("⚠️  Media storage not configured:", err)
		log.Println("⚠️  Playback URL endpoints will return errors")
	} else {
		presigner = mediaSvc
		log.Printf("☁️  S3 playback URLs enabled: %s (region: %s)", cfg.S3Bucket, cfg.S3Region)
	}

	// ========== START SERVER ==========
	app := server.New(server.Deps{
		Cfg:       cfg,
		Users:     store.NewMongoUserStore(db),
		Movies:    store.NewMongoMovieStore(db),
		Ratings:   store.NewMongoRatingStore(db),
		Comments:  store.NewMongoCommentStore(db),
		Favorites: store.NewMongoFavoriteStore(db),
		Tokens:    store.NewMongoTokenStore(db),
		Mailer:    mailer.New(cfg),
		Presigner: presigner,
	})

	log.Printf("🚀 KinoStream API starting on %s", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled (expiry %s)", cfg.JWTExpiry)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server: ", err)
	}
}
