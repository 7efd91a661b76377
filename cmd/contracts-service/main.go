package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/nurpe/nutri-contracts/internal/calendar"
	"github.com/nurpe/nutri-contracts/internal/config"
	"github.com/nurpe/nutri-contracts/internal/db"
	"github.com/nurpe/nutri-contracts/internal/excel"
	httphandler "github.com/nurpe/nutri-contracts/internal/http"
	"github.com/nurpe/nutri-contracts/internal/logger"
	"github.com/nurpe/nutri-contracts/internal/pdf"
	"github.com/nurpe/nutri-contracts/internal/repository"
	"github.com/nurpe/nutri-contracts/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "contracts-service",
		Short: "Contract issuance and delivery calendar service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg.Environment)

			cfg.DB.AutoMigrate = true
			database, err := db.New(cfg, log)
			if err != nil {
				return err
			}
			if sqlDB, err := database.DB(); err == nil {
				defer sqlDB.Close()
			}
			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect database")
		return err
	}

	serviceRepo := repository.NewServiceRepository(database)
	contractRepo := repository.NewContractRepository(database)
	calendarRepo := repository.NewCalendarRepository(database)
	txManager := repository.NewTxManager(database)

	generator := calendar.NewGenerator(calendar.Policy{
		DefaultTime:    cfg.Delivery.DefaultTime,
		DefaultAddress: cfg.Delivery.DefaultAddress,
	})

	contractService := service.NewContractService(serviceRepo, contractRepo, calendarRepo, txManager, generator, log)
	calendarService := service.NewCalendarService(calendarRepo, service.SystemClock(cfg.Timezone), service.ReschedulePolicy{
		MinLeadDays: cfg.Reschedule.MinLeadDays,
		WindowStart: cfg.Reschedule.WindowStart,
		WindowEnd:   cfg.Reschedule.WindowEnd,
	}, log)
	catalogService := service.NewCatalogService(serviceRepo)

	handler := httphandler.NewHandler(
		contractService,
		calendarService,
		catalogService,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		log,
	)
	router := httphandler.NewRouter(handler, log, cfg.HTTP.CORSAllowedOrigins, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("timezone", cfg.Timezone.String()).Msg("starting contracts service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
	return nil
}
