package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/kueater-client/internal/config"
	"github.com/pribylovaa/kueater-client/internal/gateway"
	"github.com/pribylovaa/kueater-client/internal/gateway/transport"
	kuhttp "github.com/pribylovaa/kueater-client/internal/http"
	"github.com/pribylovaa/kueater-client/internal/identity"
	"github.com/pribylovaa/kueater-client/internal/service"
	"github.com/pribylovaa/kueater-client/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("starting kueater-client", "env", cfg.Env, "api", cfg.API.BaseURL)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = log.Into(rootCtx, logger)

	httpClient := &http.Client{
		Transport: transport.Chain(http.DefaultTransport,
			transport.WithMetadata(cfg.API.UserAgent),
			transport.WithTimeout(cfg.Timeouts.Request),
			transport.WithLogging(logger),
		),
	}

	gw, err := gateway.New(cfg.API.BaseURL, httpClient)
	if err != nil {
		logger.Error("gateway_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	svc := service.New(gw, cfg.Paging, service.NewMetrics(prometheus.DefaultRegisterer))

	id := identity.NewStatic(cfg.Identity.UserID)
	svc.SyncIdentity(rootCtx, id)

	logger.Info("service_initialized", slog.Bool("signed_in", svc.UserID() != ""))

	apiHandler := kuhttp.NewRouter(svc, id, kuhttp.Options{
		Logger:  logger,
		Timeout: cfg.Timeouts.Service,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		logger.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	logger.Info("client_ready")

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			logger.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		logger.Info("http_stopped")
	}

	logger.Info("client_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envLocal:
		fallthrough
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
