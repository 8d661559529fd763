package setup

import (
	"context"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/email"
	"github.com/pinboard-dev/pinboard/internal/handler"
	"github.com/pinboard-dev/pinboard/internal/jwt"
	"github.com/pinboard-dev/pinboard/internal/middleware"
	"github.com/pinboard-dev/pinboard/internal/service"
	"github.com/pinboard-dev/pinboard/internal/storage/fs"
	"github.com/pinboard-dev/pinboard/internal/storage/pg"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Media          *fs.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes everything the application needs.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, &cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		return nil, err
	}

	mailer := email.New(&cfg.Private.Email)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, mailer, jwtService, &cfg.Public)
	boards := service.NewBoard(storage)
	pins := service.NewPin(media)

	h := handler.New(auth, boards, pins, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Media:          media,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
