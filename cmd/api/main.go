// Command api serves the movie catalogue over HTTP.
//
// @title                       Movie API
// @version                     1.0
// @description                 Movie catalogue with JWT authentication and owner-only mutations.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/moviemaker/movie-api/internal/api"
	"github.com/moviemaker/movie-api/internal/api/handler"
	"github.com/moviemaker/movie-api/internal/core/service"
	"github.com/moviemaker/movie-api/internal/infrastructure/config"
	"github.com/moviemaker/movie-api/internal/infrastructure/db/mongo"
	"github.com/moviemaker/movie-api/internal/infrastructure/db/redis"
	"github.com/moviemaker/movie-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "movie-api"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movie-api",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	users := mongo.NewUserRepository(db)
	roleStore := mongo.NewRoleRepository(db)
	movies := mongo.NewMovieRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, roleStore, movies); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		Key:      []byte(cfg.JWT.Key),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}
	revocations := redis.NewRevocationStore(rdb)

	roles := service.NewRoleManager(roleStore, users, logger.Component("roles"))
	if err := roles.EnsureRolesExist(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(users, roles, tokens, revocations, logger.Component("auth")),
		Users:       service.NewUserService(users, movies, logger.Component("users")),
		Movies:      service.NewMovieService(movies, users, logger.Component("movies")),
		Tokens:      tokens,
		Revocations: revocations,
		Health: map[string]handler.PingFunc{
			"mongodb": mongo.Pinger(mongoClient),
			"redis":   redis.Pinger(rdb),
		},
		Logger:     logger.Component("http"),
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
