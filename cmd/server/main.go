package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/matrimony/backend/internal/config"
	"github.com/matrimony/backend/internal/handlers"
	"github.com/matrimony/backend/internal/services"
	"github.com/matrimony/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		directory services.BiodataDirectory
		users     services.UserStore
		contacts  services.ContactRequestStore
		favorites services.FavoriteStore
		stories   services.StoryStore
	)

	if cfg.MongoURI != "" {
		client, err := services.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())

		userService, err := services.NewMongoUserService(ctx, client, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal("failed to initialize user service", zap.Error(err))
		}
		biodataService, err := services.NewMongoBiodataService(ctx, client, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal("failed to initialize biodata service", zap.Error(err))
		}
		contactService, err := services.NewMongoContactService(ctx, client, cfg.MongoDatabase, biodataService)
		if err != nil {
			logger.Fatal("failed to initialize contact service", zap.Error(err))
		}
		favoriteService, err := services.NewMongoFavoriteService(ctx, client, cfg.MongoDatabase, biodataService)
		if err != nil {
			logger.Fatal("failed to initialize favorite service", zap.Error(err))
		}
		storyService, err := services.NewMongoStoryService(ctx, client, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal("failed to initialize story service", zap.Error(err))
		}

		directory, users, contacts, favorites, stories =
			biodataService, userService, contactService, favoriteService, storyService
		logger.Info("MongoDB connected", zap.String("database", cfg.MongoDatabase))
	} else {
		// No connection string: run on the JSON-file-backed in-memory stores.
		userStore, err := storage.NewJSONStore(cfg.DataDir, "users.json")
		if err != nil {
			logger.Fatal("failed to open user store", zap.Error(err))
		}
		biodataStore, err := storage.NewJSONStore(cfg.DataDir, "biodatas.json")
		if err != nil {
			logger.Fatal("failed to open biodata store", zap.Error(err))
		}

		userService, err := services.NewUserService(userStore)
		if err != nil {
			logger.Fatal("failed to initialize user service", zap.Error(err))
		}
		biodataService, err := services.NewBiodataService(biodataStore, userService)
		if err != nil {
			logger.Fatal("failed to initialize biodata service", zap.Error(err))
		}

		directory = biodataService
		users = userService
		contacts = services.NewContactService(biodataService)
		favorites = services.NewFavoriteService(biodataService)
		stories = services.NewStoryService()
		logger.Info("running without MongoDB, using local data dir", zap.String("dir", cfg.DataDir))
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Directory:       directory,
		Users:           users,
		Contacts:        contacts,
		Favorites:       favorites,
		Stories:         stories,
		Payments:        services.NewStripePayments(cfg.StripeSecretKey),
		JWTSecret:       cfg.JWTSecret,
		JWTExpiration:   cfg.JWTExpiration,
		ContactFeeCents: cfg.ContactFeeCents,
		Logger:          logger,
	})

	logger.Info("matrimony API server starting", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, router); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
