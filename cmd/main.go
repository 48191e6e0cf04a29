package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Dayasagar88/Chai-or-Nodejs/config"
	"github.com/Dayasagar88/Chai-or-Nodejs/db"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/media"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/handler"
	repo "github.com/Dayasagar88/Chai-or-Nodejs/internal/user/repository/postgres"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/service"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	userRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := service.NewBcryptHasher()
	userService := service.NewUserService(userRepo, tokenService, hasher, logger)
	uploader := media.NewHTTPUploader(cfg.MediaUploadURL, cfg.MediaAPIKey)
	authHandler := handler.NewAuthHandler(userService, tokenService, uploader, cfg)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
