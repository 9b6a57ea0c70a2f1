// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/harborline/chandlery/pkg/config"
	"github.com/harborline/chandlery/services/catalog"
	"github.com/harborline/chandlery/services/match"
	"github.com/harborline/chandlery/services/web/handlers"
	"github.com/harborline/chandlery/services/web/routes"
)

const serviceName = "chandlery"

// initTracer wires an OTLP/gRPC span exporter when an endpoint is
// configured. Without one, tracing stays a no-op.
func initTracer(ctx context.Context) (func(context.Context), error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) {}, nil
	}
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)))
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := exporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// openStore opens the snapshot cache on disk, degrading to in-memory mode
// when the cache directory is unusable. Catalog acquisition must keep
// working either way; only durability is lost.
func openStore(cfg config.Config) (*catalog.Store, error) {
	store, err := catalog.OpenStore(catalog.StoreConfig{Path: cfg.CachePath})
	if err == nil {
		return store, nil
	}
	slog.Warn("snapshot cache unavailable on disk, using in-memory cache",
		"path", cfg.CachePath, "error", err)
	return catalog.OpenStore(catalog.StoreConfig{InMemory: true})
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracer, err := initTracer(ctx)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracer(ctx)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open snapshot cache", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	adapter := catalog.NewSourceAdapter(cfg.SourceBaseURL,
		&http.Client{Timeout: cfg.SourceTimeout})
	orchestrator := catalog.NewOrchestrator(store, adapter, catalog.DefaultCategories, cfg.CacheTTL)

	// A missing credential disables matching but never catalog browsing.
	var matcher handlers.Matcher
	m, err := match.New(match.Config{
		BaseURL: cfg.CompletionBaseURL,
		APIKey:  cfg.CompletionAPIKey,
		Model:   cfg.CompletionModel,
	})
	if err != nil {
		slog.Error("product matching disabled", "error", err)
	} else {
		matcher = m
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	routes.SetupRoutes(router, orchestrator, matcher)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		slog.Info("starting chandlery API server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	slog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
