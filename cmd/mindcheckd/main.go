package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/artifact"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/config"
	kafkapublisher "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/kafka"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/memory"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/messaging"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/postgres"
	grpcpresentation "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/presentation/grpc"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/presentation/rest"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/kafka"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/observability"
	pgpkg "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/postgres"
)

const serviceName = "mindcheck"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("mindcheck stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting mindcheck",
		"version", version,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"environment", cfg.Environment,
	)

	// Tracing is a no-op without an OTLP endpoint.
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       !cfg.IsProduction(),
	})
	if err != nil {
		logger.Warn("failed to initialize tracing, continuing without tracing", "error", err)
	} else {
		defer shutdownTracing(context.Background())
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	otel.SetMeterProvider(meterProvider)
	defer meterProvider.Shutdown(context.Background())

	// Load the frozen artifacts. Any failure stops the process before it listens.
	store, err := artifact.Load(cfg.ArtifactDir, artifact.Options{
		Version:        cfg.ArtifactVersion,
		ONNXRuntimeLib: cfg.ONNXRuntimeLib,
	})
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}
	defer store.Close()

	engine, err := service.NewEngine(store.EngineArtifacts(), cfg.CrisisContact)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}
	logger.Info("artifacts loaded",
		"dir", store.Dir,
		"version", store.Version,
		"kind", store.Classifier.Kind(),
		"features", len(store.FeatureColumns),
	)

	// Wire infrastructure adapters.
	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Wire use cases.
	metrics, err := usecase.NewMetrics(meterProvider.Meter("mindcheck"))
	if err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}
	assessStudentUC := usecase.NewAssessStudent(engine, repo, publisher, metrics, logger)
	getAssessmentUC := usecase.NewGetAssessment(repo)
	describeModelUC := usecase.NewDescribeModel(store.Info(engine.Threshold()), engine.Questionnaire())

	// gRPC server.
	grpcHandler := grpcpresentation.NewAssessmentServiceHandler(assessStudentUC, getAssessmentUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerOptions{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Assessments: rest.NewAssessmentHandler(
			assessStudentUC,
			getAssessmentUC,
			describeModelUC,
			rest.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
			logger,
		),
		Health:         rest.NewHealthHandler(repo, engine.ModelVersion(), logger),
		Metrics:        metricsHandler,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("mindcheck started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"model_version", engine.ModelVersion(),
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down mindcheck", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	grpcServer.Stop(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("mindcheck stopped")
	return serveErr
}

// newRepository returns the PostgreSQL store when DATABASE_URL is set,
// migrating the schema first, and the in-memory TTL store otherwise.
func newRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.AssessmentRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, keeping assessments in memory", "ttl", cfg.ResultTTL)
		return memory.NewAssessmentRepository(cfg.ResultTTL), func() {}, nil
	}

	migrated, err := pgpkg.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("database schema ready", "version", migrated)

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	return postgres.NewAssessmentRepository(pool), pool.Close, nil
}

// newPublisher returns the Kafka publisher when KAFKA_BROKERS is set and
// the log publisher otherwise.
func newPublisher(cfg *config.Config, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, logging domain events")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}

	producer, err := kafka.NewProducer(kafka.Config{
		ClientID:      cfg.KafkaClientID,
		Brokers:       cfg.KafkaBrokers,
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
		TLS:           cfg.KafkaTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	logger.Info("publishing domain events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)

	return kafkapublisher.NewPublisher(producer, cfg.KafkaTopic, logger), func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close kafka producer", "error", err)
		}
	}, nil
}
