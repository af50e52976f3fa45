// Copyright (C) 2024 the lets-party maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/quixsi/core/internal/config"
	"github.com/quixsi/core/internal/db/jsondb"
	"github.com/quixsi/core/internal/db/storage"
	"github.com/quixsi/core/internal/metrics"
	"github.com/quixsi/core/internal/rsvp"
	"github.com/quixsi/core/internal/server"
)

func main() {
	var (
		serviceName = flag.String("service-name", "party-invite", "otel service name")
		addr        = flag.String("addr", "0.0.0.0:8080", "default server address")
		dbStr       = flag.String("db", "sheets://", "row store connection string, sheets:// or kvdb://path")
		invitesPath = flag.String("invites", "testdata/invites.json", "path to the invite directory")
		eventPath   = flag.String("event", "testdata/event.json", "path to the event description")
		otlpAddr    = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flag.String("log-level", "INFO", "log level")
		staticDir   = flag.String("static-dir", "", "path to static directory")
		deadline    = flag.String("deadline", "", "deadline in format: 01 May 24 10:00 CET")
	)
	flag.Parse()

	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("start and listen", "address", *addr)
	logger.Info("otlp/gRPC", "address", *otlpAddr, "service", *serviceName)
	logger.Info("static-dir", "directory", *staticDir)

	if *otlpAddr != "" {
		shutdown, err := setupTracing(*otlpAddr)
		if err != nil {
			logger.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown()
	}

	var dline time.Time
	if *deadline != "" {
		dline, err = time.Parse(time.RFC822, *deadline)
		if err != nil {
			logger.Error("failed to parse deadline", "error", err)
			os.Exit(1)
		}
		logger.Info("deadline set to", "date", dline)
	}

	cfg := config.Load()
	if cfg.DefaultAdminCredentials() {
		logger.Warn("admin area uses default credentials, set PARTY_ADMIN and PARTY_PASSWORD")
	}

	invites, err := jsondb.NewInvitationStore(*invitesPath)
	if err != nil {
		logger.Error("could not load invite directory", "path", *invitesPath, "error", err)
		os.Exit(1)
	}
	events, err := jsondb.NewEventStore(*eventPath)
	if err != nil {
		logger.Error("could not load event", "path", *eventPath, "error", err)
		os.Exit(1)
	}

	store, closeStore, err := storage.Open(*dbStr, cfg)
	if err != nil {
		logger.Error("could not initialize row store", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	if err := store.Validate(); err != nil {
		// requests answer with a configuration error until this is fixed
		logger.Warn("row store is not configured", "error", err)
	}

	svc := rsvp.NewService(invites, store, rsvp.Settings{
		RSVPRange:  cfg.RSVPRange,
		ViewsRange: cfg.ViewsRange,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr: *addr,
		Handler: server.NewServer(
			*serviceName,
			*staticDir,
			dline,
			server.Admin{Username: cfg.AdminUser, Password: cfg.AdminPassword},
			invites,
			events,
			svc,
			metrics.New(reg),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("error during listen and serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}

func setupTracing(otlpAddr string) (func(), error) {
	conn, err := grpc.NewClient(otlpAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	otelExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(otelExporter))
	otel.SetTracerProvider(tp)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = conn.Close()
	}, nil
}
