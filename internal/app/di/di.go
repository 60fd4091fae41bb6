// Package di provides dependency injection factories for creating application components.
package di

import (
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"devsocial_backend/internal/app/router"
	authadapters "devsocial_backend/internal/feature/auth/adapters"
	authhandler "devsocial_backend/internal/feature/auth/transport/handler"
	authusecase "devsocial_backend/internal/feature/auth/usecase"
	postadapters "devsocial_backend/internal/feature/post/adapters"
	posthandler "devsocial_backend/internal/feature/post/transport/handler"
	postusecase "devsocial_backend/internal/feature/post/usecase"
	profileadapters "devsocial_backend/internal/feature/profile/adapters"
	profilehandler "devsocial_backend/internal/feature/profile/transport/handler"
	profileusecase "devsocial_backend/internal/feature/profile/usecase"
	"devsocial_backend/internal/platform/cache"
	"devsocial_backend/internal/platform/externalapi/github"
	infrahttp "devsocial_backend/internal/platform/http"
	healthhandler "devsocial_backend/internal/platform/http/handler"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/shared/ratelimiter"
)

const userAgent = "devsocial-backend"

// NewRepoFinder creates the GitHub repo lookup: a rate limited HTTP client
// wrapped in a Redis cache. A nil rdb disables the cache.
func NewRepoFinder(cfg github.Config, rdb *redis.Client) profileusecase.RepoFinder {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, userAgent)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	client := github.NewClient(cfg, httpClient, limiter)
	if rdb == nil {
		slog.Info("github repo cache disabled")
	}
	return cache.NewCachingRepoFinder(rdb, cfg.CacheTTL, client, "github:repos")
}

// NewHandlers wires repositories, usecases and handlers on top of db.
func NewHandlers(db *gorm.DB, tokens *jwtmw.Service, repos profileusecase.RepoFinder) (router.Handlers, error) {
	if db == nil || tokens == nil || repos == nil {
		return router.Handlers{}, errors.New("di: db, tokens and repos are required")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return router.Handlers{}, err
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	profileRepo := profileadapters.NewProfileRepository(db)
	postRepo := postadapters.NewPostRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	profileUC := profileusecase.NewProfileUsecase(profileRepo, userRepo, repos)
	postUC := postusecase.NewPostUsecase(postRepo, userRepo)

	// Handler
	return router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Profile: profilehandler.NewProfileHandler(profileUC),
		Post:    posthandler.NewPostHandler(postUC),
		Health:  healthhandler.NewHealthHandler(sqlDB),
	}, nil
}
