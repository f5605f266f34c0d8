package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/abhishek622/parentalcontrol/api"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/controller/parentalcontrol"
	grpcgateway "github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway/catalog/grpc"
	httpgateway "github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway/catalog/http"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway/catalog/memory"
	grpchandler "github.com/abhishek622/parentalcontrol/parentalcontrol/internal/handler/grpc"
	"github.com/abhishek622/parentalcontrol/pkg/discovery"
	"github.com/abhishek622/parentalcontrol/pkg/discovery/consul"
	"github.com/abhishek622/parentalcontrol/pkg/tracing"
	"github.com/grpc-ecosystem/go-grpc-middleware/ratelimit"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally/v4"
	promreporter "github.com/uber-go/tally/v4/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceName = "parentalcontrol"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/default.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	port := cfg.API.Port
	logger.Info("Starting the parental control service", zap.Int("port", port))

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address)
	if err != nil {
		logger.Fatal("Failed to init parental control service registry", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Jaeger Tracing ---
	tracer, tracerCloser, err := tracing.NewTracer(serviceName, cfg.Jaeger.Host, cfg.Jaeger.Port, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Jaeger tracer", zap.Error(err))
	}
	opentracing.SetGlobalTracer(tracer)
	logger.Info("Jaeger tracer initialized successfully", zap.String("service", serviceName))

	// --- Service registration / health heartbeat ---
	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("localhost:%d", port)); err != nil {
		logger.Fatal("Failed to register service", zap.Error(err))
	}
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
					logger.Warn("Failed to report healthy state", zap.Error(err))
				}
			}
		}
	}()
	defer registry.Deregister(context.Background(), instanceID, serviceName)

	// --- Metrics ---
	reporter := promreporter.NewReporter(promreporter.Options{})
	scope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         serviceName,
		CachedReporter: reporter,
		Separator:      promreporter.DefaultSeparator,
	}, time.Second)
	defer scopeCloser.Close()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", cfg.API.MetricsPort),
		Handler: reporter.HTTPHandler(),
	}
	go func() {
		logger.Info("Starting metrics server", zap.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	// --- Controller ---
	var serverCreds, clientCreds credentials.TransportCredentials
	if cfg.TLS.Enabled {
		serverCreds, clientCreds, err = transportCredentials(cfg.TLS)
		if err != nil {
			logger.Fatal("Failed to load TLS credentials", zap.Error(err))
		}
	}
	var catalog interface {
		GetLevel(ctx context.Context, movieID string) (string, error)
	}
	switch cfg.Catalog.Transport {
	case "grpc":
		catalog = grpcgateway.New(registry, clientCreds)
	case "http":
		catalog = httpgateway.New(registry, nil)
	default:
		catalog = memory.New(cfg.Catalog.Titles)
	}
	logger.Info("Using catalog gateway", zap.String("transport", cfg.Catalog.Transport))
	ctrl, err := parentalcontrol.New(catalog, logger.Named("controller"))
	if err != nil {
		logger.Fatal("Failed to create controller", zap.Error(err))
	}
	h := grpchandler.New(ctrl, scope, logger.Named("handler"))

	// --- gRPC server ---
	lis, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		logger.Fatal("Failed to listen", zap.Error(err))
	}
	opts := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(ratelimit.UnaryServerInterceptor(newLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Burst))),
	}
	if serverCreds != nil {
		opts = append(opts, grpc.Creds(serverCreds))
	}
	srv := grpc.NewServer(opts...)
	reflection.Register(srv)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	api.RegisterParentalControlServiceServer(srv, h)
	healthServer.SetServingStatus(api.ParentalControlService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-sigChan
		logger.Info("Received signal, attempting graceful shutdown", zap.Any("signal", s))

		healthServer.Shutdown()
		cancel()
		srv.GracefulStop()
		logger.Info("Graceful stopped the gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to stop metrics server", zap.Error(err))
		}
		if err := tracerCloser.Close(); err != nil {
			logger.Warn("Failed to flush Jaeger tracer", zap.Error(err))
		}
	}()
	if err := srv.Serve(lis); err != nil {
		logger.Fatal("Failed to serve gRPC server", zap.Error(err))
	}

	wg.Wait()
}

func newLogger(env string, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}

// transportCredentials builds mutual TLS credentials for the gRPC server and
// for outgoing catalog connections from the same certificate and CA.
func transportCredentials(cfg tlsConfig) (credentials.TransportCredentials, credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load certificate and key: %w", err)
	}
	caCert, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read CA certificate: %w", err)
	}
	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(caCert) {
		return nil, nil, errors.New("append CA certificate")
	}
	server := credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    certPool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS13,
	})
	client := credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      certPool,
		MinVersion:   tls.VersionTLS13,
	})
	return server, client, nil
}

type limiter struct {
	l *rate.Limiter
}

func newLimiter(limit int, burst int) *limiter {
	return &limiter{rate.NewLimiter(rate.Limit(limit), burst)}
}

// Limit returns true if the rate limit is exceeded.
func (l *limiter) Limit() bool {
	return !l.l.Allow()
}
