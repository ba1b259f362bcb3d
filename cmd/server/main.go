// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/api"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/events"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/store"
	"github.com/andresuchdata/sales-dashboard/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := clock.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("invalid timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, err := store.Open(ctx, cfg, loc)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Source.Driver).Msg("failed to open record store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := records.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("failed to close record store")
		}
	}()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize dashboard cache, falling back to noop")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	clk := clock.New(loc)
	mapper := analytics.NewMapper(analytics.DefaultTaxonomy())
	opts := service.Options{DefaultYear: cfg.App.DefaultYear, OrderLimit: cfg.App.OrderTableSize}

	salesService := service.NewSalesService(records, dashboardCache, clk, mapper, opts)
	invoiceService := service.NewInvoiceService(records, dashboardCache, clk, mapper, opts)

	if cfg.AMQP.Enabled {
		client, err := events.NewClient(cfg.AMQP)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to amqp, refresh events disabled")
		} else {
			defer client.Close()
			salesService.WithPublisher(client)
			go client.Listen(ctx, func(ctx context.Context, msg *events.RefreshMessage) error {
				log.Info().Str("reason", msg.Reason).Str("origin", msg.Origin).Msg("records refreshed, dropping cached dashboards")
				return salesService.InvalidateCache(ctx)
			})
		}
	}

	router := api.NewRouter(&api.Services{
		SalesService:   salesService,
		InvoiceService: invoiceService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("driver", cfg.Source.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	// The server has 5 seconds to finish the requests it is currently handling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exiting")
}
