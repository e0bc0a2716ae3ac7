// Command console runs the canteen web console: role-gated screens served
// over HTTP, sessions in Redis, every domain operation proxied to the
// remote canteen API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/canteen-system/canteen-console/internal/core/session"
	"github.com/canteen-system/canteen-console/internal/gateway"
	"github.com/canteen-system/canteen-console/internal/infrastructure/config"
	redisdb "github.com/canteen-system/canteen-console/internal/infrastructure/db/redis"
	"github.com/canteen-system/canteen-console/internal/web"
	"github.com/canteen-system/canteen-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() { _ = rdb.Close() }()

	api, err := gateway.New(cfg.APIBaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build gateway")
	}

	sessions := session.NewStore(api, redisdb.NewSessionRepository(rdb), cfg.SessionTTL, log)

	e, err := web.NewRouter(web.Deps{
		Sessions:     sessions,
		API:          api,
		Redis:        rdb,
		CookieSecret: cfg.CookieSecret,
		SessionTTL:   cfg.SessionTTL,
		Log:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
