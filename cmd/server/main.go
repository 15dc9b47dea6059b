package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcdelivery "github.com/natthakit111/qr-demo/internal/delivery/grpc"
	httpdelivery "github.com/natthakit111/qr-demo/internal/delivery/http"
	"github.com/natthakit111/qr-demo/internal/infrastructure/config"
	"github.com/natthakit111/qr-demo/internal/infrastructure/promptpay"
	"github.com/natthakit111/qr-demo/internal/infrastructure/qrgenerator"
	"github.com/natthakit111/qr-demo/internal/infrastructure/telemetry"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload"
	"github.com/natthakit111/qr-demo/internal/usecase/renderqr"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
		defer shutdownCancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	if target, err := promptpay.ParseTarget(cfg.PromptPayID); err != nil {
		logger.Warn("promptpay id cannot be encoded, payload requests will fail", "error", err)
	} else {
		logger.Info("promptpay recipient configured", "kind", target.Kind.String())
	}

	qrLevel, err := qrgenerator.ParseLevel(cfg.QRLevel)
	if err != nil {
		return err
	}

	generatePayloadUC := generatepayload.NewUseCase(promptpay.NewEncoder(), cfg.PromptPayID)
	renderQRUC := renderqr.NewUseCase(qrgenerator.NewGenerator(cfg.QRSize, qrLevel))

	handler := httpdelivery.NewHandler(generatePayloadUC, renderQRUC, logger)
	router := httpdelivery.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(router, "http.server"),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpcdelivery.NewServer(logger)
	grpcdelivery.RegisterPayloadServiceServer(grpcSrv, grpcdelivery.NewHandler(generatePayloadUC, logger))
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(grpcdelivery.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
			cancel()
		}
	}()

	go func() {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
		if serveErr := grpcSrv.Serve(lis); serveErr != nil {
			logger.Error("grpc serve failed", "error", serveErr)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	healthSrv.Shutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	grpcSrv.GracefulStop()

	return nil
}
