package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/blogstack/backend/internal/config"
	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/handler"
	applog "github.com/blogstack/backend/internal/log"
	"github.com/blogstack/backend/internal/media"
	"github.com/blogstack/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Init(cfg.Server.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	authService, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid auth configuration")
	}

	if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	storage := media.NewStorage(cfg.Media.UploadDir)
	notifications := service.NewNotificationService(repo)
	reports := service.NewReportService(repo)

	svcs := handler.Services{
		Auth:          authService,
		Users:         service.NewUserService(repo),
		Blogs:         service.NewBlogService(repo, storage, notifications),
		Comments:      service.NewCommentService(repo, notifications),
		Likes:         service.NewLikeService(repo, notifications),
		Follows:       service.NewFollowService(repo, notifications),
		Notifications: notifications,
		Reports:       reports,
		Admin:         service.NewAdminService(repo, reports),
	}

	r := handler.NewRouter(cfg, repo, storage, svcs)

	log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
