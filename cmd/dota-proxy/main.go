// Command dota-proxy runs the caching OpenDota proxy server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dotalytics/opendota-proxy/internal/api"
	"github.com/dotalytics/opendota-proxy/pkg/cache"
	"github.com/dotalytics/opendota-proxy/pkg/client"
	"github.com/dotalytics/opendota-proxy/pkg/config"
	"github.com/dotalytics/opendota-proxy/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger := logging.NewLogger("main")
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	upstream, err := client.New(client.Config{
		BaseURL:           cfg.OpenDotaBaseURL,
		APIKey:            cfg.OpenDotaAPIKey,
		Timeout:           cfg.UpstreamTimeout,
		RequestsPerMinute: cfg.UpstreamRequestsPerMinute,
	})
	if err != nil {
		return err
	}

	store := cache.NewStore(logger)
	server := api.NewServer(cfg, store, upstream, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", httpServer.Addr).
			Str("upstream", cfg.OpenDotaBaseURL).
			Msg("Starting OpenDota proxy server")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		store.RunJanitor(ctx, cfg.JanitorInterval)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
