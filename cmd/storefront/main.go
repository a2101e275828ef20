package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/config"
	storeHttp "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/notify"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/settings"
	"github.com/vasiliy-maslov/storefront/internal/storefront"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Debug().
		Str("port", cfg.App.Port).
		Str("locale", cfg.Store.Locale.String()).
		Str("currency", cfg.Store.Currency).
		Strs("cities", cfg.Store.Cities).
		Bool("custom_scripts", cfg.Admin.AllowCustomScripts).
		Msg("Configuration loaded")

	if cfg.Admin.Token == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty, dashboard routes are unprotected")
	}

	seed, err := catalog.LoadSeed(cfg.Store.SeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.SeedPath).Msg("Failed to load catalog seed")
	}
	log.Info().Int("products", len(seed)).Msg("Catalog seeded")

	webhook := notify.NewWebhook(notify.WebhookConfig{
		Timeout:         cfg.Webhook.Timeout,
		BreakerFailures: cfg.Webhook.BreakerFailures,
		BreakerCooldown: cfg.Webhook.BreakerCooldown,
	}, nil)
	dispatcher := notify.NewDispatcher(webhook, notify.DispatcherConfig{
		QueueSize: cfg.Webhook.QueueSize,
		Timeout:   cfg.Webhook.SyncDelay + cfg.Webhook.Timeout,
		Delay:     cfg.Webhook.SyncDelay,
	})

	shop := storefront.New(seed, settings.Defaults(), dispatcher, order.WithDateLayout(cfg.Store.DateLayout))

	router := storeHttp.NewRouter(shop, storeHttp.RouterConfig{
		AdminToken:         cfg.Admin.Token,
		AllowCustomScripts: cfg.Admin.AllowCustomScripts,
		Exporter:           order.NewCSVExporter(cfg.Store.Locale, cfg.Store.Currency),
		Cities:             cfg.Store.Cities,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// pending order notifications get the rest of the shutdown window
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Pending order notifications dropped")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Storefront stopped with error")
	}
	log.Info().Msg("Storefront stopped gracefully")
}
