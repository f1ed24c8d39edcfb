package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpapp "gallery_admin/internal/app/http"
	"gallery_admin/internal/client/galleryapi"
	"gallery_admin/internal/config"
	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/repository"
	"gallery_admin/internal/services/auth"
	services "gallery_admin/internal/services/gallery_service"
	"gallery_admin/internal/storage/cache"
	httprouters "gallery_admin/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Repo       *repository.Repository
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	repo, err := repository.NewRepository(pingCtx, cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	api := galleryapi.New(cfg.API.BaseURL, cfg.API.Timeout)

	authService := auth.New(log, api, repo.Sessions, cfg.Session.TTL)

	controllers := cache.NewControllers(cfg.Gallery.IdleTTL, func(session models.ConsoleSession) *services.Controller {
		return services.NewController(
			log.With(slog.String("session_id", session.ID)),
			api.WithCookies(session.HTTPCookies()),
			cfg.Gallery.PageSize,
			httprouters.ImageSrc,
		)
	})

	routers := httprouters.NewRouter(log, authService, controllers, api)

	server, err := httpapp.New(log, cfg.HTTP, cfg.Session, routers)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		HTTPServer: server,
		Repo:       repo,
	}, nil
}

func (a *App) Stop() error {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.Repo.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
