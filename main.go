package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finova-app/backend/internal/config"
	"github.com/finova-app/backend/pkg/advice"
	"github.com/finova-app/backend/pkg/auth"
	"github.com/finova-app/backend/pkg/controllers"
	"github.com/finova-app/backend/pkg/database"
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/router"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/views"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// version is set at build time with -ldflags.
var version = "0.0.0"

// @title						Finova
// @description				The backend for Finova, a personal finance tracker for incomes, budgets and expenses
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// run serves the API until ctx is done. The database is connected and
// closed here, all failures are returned.
func run(ctx context.Context, cfg config.Config) error {
	dialector := database.SQLite(cfg.SQLitePath)
	if cfg.UsePostgres() {
		dialector = database.Postgres(cfg.DatabaseURL)
	}

	db, err := database.Connect(dialector)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Closing the database failed")
		}
	}()

	// Migrate all models so that the schema is correct
	if err := models.Migrate(db); err != nil {
		return err
	}

	cache := views.NewCache(cfg.ViewCacheTTL)

	co, err := controller(ctx, cfg, db, cache)
	if err != nil {
		return err
	}

	opts := router.Options{
		Version:          version,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:      cfg.EnablePprof,
	}

	r, err := router.Config(cfg.APIURL, opts)
	if err != nil {
		return err
	}

	if err := router.AttachRoutes(co, r.Group(cfg.APIURL.Path), opts); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("version", version).Msg("Starting server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// controller wires all collaborators of the API.
//
// With AMQP configured, invalidations are also sent to all other instances
// and theirs are applied to the local cache until ctx is done.
func controller(ctx context.Context, cfg config.Config, db *gorm.DB, cache *views.Cache) (controllers.Controller, error) {
	var invalidator views.Invalidator = cache

	if cfg.AMQPURL != "" {
		publisher, err := views.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return controllers.Controller{}, err
		}

		go func() {
			<-ctx.Done()
			publisher.Close()
		}()

		go func() {
			if err := publisher.Consume(ctx, cache); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Consuming view invalidations stopped")
			}
		}()

		invalidator = views.Multi{cache, publisher}
	}

	verifier, err := auth.NewVerifier(auth.Config{
		Secret:    cfg.Auth.JWTSecret,
		PublicKey: cfg.Auth.JWTPublicKey,
		Issuer:    cfg.Auth.JWTIssuer,
	})
	if err != nil {
		return controllers.Controller{}, err
	}

	return controllers.Controller{
		Service: service.New(db, invalidator),
		Views:   cache,
		Advisor: advice.New(advice.Config{
			APIKey:           cfg.Advice.APIKey,
			BaseURL:          cfg.Advice.BaseURL,
			Model:            cfg.Advice.Model,
			Currency:         cfg.Advice.Currency,
			MaxDocumentBytes: cfg.Advice.MaxDocumentBytes,
			Timeout:          cfg.Advice.Timeout,
		}),
		Verifier: verifier,
		Version:  version,
	}, nil
}
