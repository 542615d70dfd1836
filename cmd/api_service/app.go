package apiservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"move-market/internal/general/config"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"
	"move-market/internal/general/postgres"
	"move-market/internal/general/rabbitmq"
	customerhandler "move-market/internal/software/customer/handler"
	customerservice "move-market/internal/software/customer/service"
	markethandler "move-market/internal/software/market/handler"
	marketservice "move-market/internal/software/market/service"
)

// Run wires the API service and blocks until ctx is cancelled.
func Run(ctx context.Context, maxConcurrent int) error {
	// static request ID for startup logs
	log := logger.New("api-service")
	defer log.Sync()
	ctx = log.WithRequestID(ctx, "startup-001")

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
		return err
	}
	defer pool.Close()

	rmq, err := rabbitmq.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()

	pub := rabbitmq.NewMQPublisher(rmq)

	jwtManager := jwt.NewManager(cfg.JWT.SecretKey, 2*time.Hour)

	// repositories share the pool through the unit of work
	uow := postgres.NewUnitOfWork(pool)
	userRepo := postgres.NewUserRepo()
	profileRepo := postgres.NewDriverProfileRepo()
	requestRepo := postgres.NewRequestRepo()
	estimateRepo := postgres.NewEstimateRepo()

	marketSvc := marketservice.NewMarketService(log, uow, userRepo, profileRepo, requestRepo, estimateRepo, pub)
	customerSvc := customerservice.NewCustomerService(log, uow, userRepo, requestRepo, pub)

	mux := http.NewServeMux()
	markethandler.NewMarketHTTPHandler(marketSvc, log, jwtManager).RegisterRoutes(mux)
	customerhandler.NewCustomerHTTPHandler(customerSvc, log, jwtManager).RegisterRoutes(mux)

	// concurrency limiter (global) blocks when capacity is full
	limitedHandler := withConcurrencyLimit(maxConcurrent, mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Services.APIPort),
		Handler:           limitedHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info(ctx, "service_started",
		fmt.Sprintf("API Service started on port %d", cfg.Services.APIPort),
		map[string]any{"port": cfg.Services.APIPort, "max_concurrent": maxConcurrent},
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info(ctx, "shutdown_started", "Starting graceful shutdown", nil)
		if err := srv.Shutdown(shCtx); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http_shutdown_failed", "Failed to gracefully shut down HTTP server", err, nil)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http_server_error", "HTTP server terminated with error", err, map[string]any{"port": cfg.Services.APIPort})
			return err
		}
		return nil
	}

	return nil
}

// withConcurrencyLimit wraps an http.Handler with a semaphore-based limiter.
// It controls how many HTTP requests can be in-progress at the same time.
func withConcurrencyLimit(n int, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}
	sem := make(chan struct{}, n)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}: // acquire
			defer func() { <-sem }() // release
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			// client canceled or server is shutting down
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
}
