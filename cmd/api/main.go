package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/auth"
	natsbroker "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/eventbroker/nats"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi"
	filehandler "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi/v1/file"
	hookhandler "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/handlers/http/chi/v1/hook"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/repository/postgres"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/storage/staging"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/submission"
	transferglobus "github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/transfer/globus"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/dispatch"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/file"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/gatekeeper"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/globus"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/globusevent"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/hook"

	_ "github.com/lib/pq"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	stagingStore, err := staging.NewStagingStore(cfg.Upload.SourceBasePath)
	if err != nil {
		logger.Error("failed to init staging store", "error", err)
		os.Exit(1)
	}

	tokenVerifier, err := auth.NewJWTVerifier(cfg.Auth.PublicKeyPath)
	if err != nil {
		logger.Error("failed to init token verifier", "error", err)
		os.Exit(1)
	}

	submissionClient := submission.NewClient(cfg.SubsAPI)
	transferClient := transferglobus.NewClient(cfg.Globus)

	//repositories
	fileRepo := postgres.NewSqlFileRepository(db)
	shareRepo := postgres.NewSqlGlobusShareRepository(db)

	//event broker
	publisher, err := natsbroker.NewNATSPublisher(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats publisher", "error", err)
		os.Exit(1)
	}
	if err := publisher.EnsureStream(ctx); err != nil {
		logger.Error("failed to ensure nats stream", "error", err)
		os.Exit(1)
	}

	//services
	gatekeeperService := gatekeeper.NewGatekeeperService(fileRepo, stagingStore, tokenVerifier, submissionClient)
	dispatcher := dispatch.NewDispatchService(fileRepo, publisher, logger)
	hookService := hook.NewHookService(fileRepo, gatekeeperService, stagingStore, dispatcher, tokenVerifier, cfg.Upload, logger)
	globusService := globus.NewGlobusService(shareRepo, fileRepo, transferClient, stagingStore, dispatcher, cfg.Globus, cfg.Upload, logger)
	globusEventService := globusevent.NewGlobusEventService(globusService, logger)
	fileService := file.NewFileService(fileRepo, submissionClient, stagingStore, publisher, logger)

	consumer, err := natsbroker.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats consumer", "error", err)
		os.Exit(1)
	}
	if err := consumer.Subscribe(ctx, globusEventService); err != nil {
		logger.Error("failed to subscribe to nats subjects", "error", err)
		os.Exit(1)
	}

	//http
	hookHandler := hookhandler.NewHookHandlerV1(hookService, logger)
	fileHandler := filehandler.NewFileHandlerV1(fileService, logger)

	router := chi.NewRouter(logger, hookHandler, fileHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	if err := consumer.Close(); err != nil {
		logger.Error("failed to close nats consumer", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("failed to close nats publisher", "error", err)
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
