package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/credit-engine/internal/application/dto"
	"github.com/bibbank/credit-engine/internal/application/usecase"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/port"
	"github.com/bibbank/credit-engine/internal/infrastructure/adapter"
	"github.com/bibbank/credit-engine/internal/infrastructure/audit"
	"github.com/bibbank/credit-engine/internal/infrastructure/config"
	"github.com/bibbank/credit-engine/internal/infrastructure/kafka"
	"github.com/bibbank/credit-engine/internal/infrastructure/resilience"
	"github.com/bibbank/credit-engine/internal/observability"
	"github.com/bibbank/credit-engine/internal/presentation/rest"
)

// creditd reads one scoring request as JSON from a file argument or stdin,
// runs the full score/decide/offer pipeline, and prints the result as JSON.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	metrics := observability.NewEngineMetrics()

	// Audit goes to Kafka when brokers are configured, to the logger otherwise.
	var auditSink port.AuditSink = audit.NewSlogSink(logger)
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewAuditPublisher(kafka.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.AuditTopic,
		}, logger)
		defer publisher.Close() //nolint:errcheck
		auditSink = publisher
	}

	limiter := resilience.NewRateLimiter(
		cfg.EnrichmentRateLimit,
		time.Duration(cfg.EnrichmentWindowSecs)*time.Second,
	)
	breaker := resilience.NewCircuitBreaker(
		cfg.BreakerThreshold,
		time.Duration(cfg.BreakerResetSecs)*time.Second,
		5*time.Second,
	)

	scorer := usecase.NewScoreApplicantUseCase(
		adapter.NewStubEnrichmentClient(), limiter, breaker, auditSink, metrics, logger)
	decider := usecase.NewDecideLendingUseCase(scorer, auditSink, metrics, logger)

	// Metrics and health listener runs alongside the pipeline.
	var httpServer *http.Server
	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		rest.NewHealthHandler(logger).RegisterRoutes(mux)
		mux.Handle("GET /metrics", metrics.Handler())

		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics server starting", "port", cfg.MetricsPort)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	req, err := readRequest(os.Args[1:], cfg)
	if err != nil {
		logger.Error("failed to read request", "error", err)
		os.Exit(1)
	}

	resp, err := decider.Execute(ctx, req)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	logger.Info("evaluation complete",
		"status", resp.Decision.Status.String(),
		"total_score", resp.Result.TotalScore,
	)
}

// readRequest parses the scoring request from the file named by the first
// argument, or stdin when no argument is given, and merges file-based policy
// overrides underneath the request's own options.
func readRequest(args []string, cfg *config.Config) (dto.ScoreRequest, error) {
	var req dto.ScoreRequest

	in := io.Reader(os.Stdin)
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return req, fmt.Errorf("open request file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		in = f
	}

	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("parse request: %w", err)
	}

	fileOv, err := cfg.LoadPolicyOverrides()
	if err != nil {
		return req, err
	}
	req.Options = policy.Merge(fileOv, req.Options)

	return req, nil
}
