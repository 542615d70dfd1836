package notifyservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"move-market/internal/general/config"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"
	"move-market/internal/general/rabbitmq"
	"move-market/internal/general/websocket"
	notifysvc "move-market/internal/software/notify/service"
)

// Run wires the notification service and blocks until ctx is cancelled.
func Run(ctx context.Context, prefetch int) error {
	log := logger.New("notification-service")
	defer log.Sync()
	ctx = log.WithRequestID(ctx, "startup-001")

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	rmq, err := rabbitmq.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()

	jwtManager := jwt.NewManager(cfg.JWT.SecretKey, 2*time.Hour)

	notifier := websocket.NewNotifier(log, jwtManager)
	decisions := notifysvc.NewDecisionConsumer(log, rmq, notifier)
	requests := notifysvc.NewRequestConsumer(log, rmq, notifier)

	// both consumers run for the lifetime of the service
	consumerErr := make(chan error, 2)
	go func() {
		consumerErr <- decisions.Run(ctx, prefetch)
	}()
	go func() {
		consumerErr <- requests.Run(ctx, prefetch)
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/notifications", notifier.Connect)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Services.NotificationPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info(ctx, "service_started",
		fmt.Sprintf("Notification Service started on port %d", cfg.Services.NotificationPort),
		map[string]any{"port": cfg.Services.NotificationPort, "prefetch": prefetch},
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
			log.Error(ctx, "http_server_error", "HTTP server terminated with error", err, map[string]any{"port": cfg.Services.NotificationPort})
			return err
		}
		return nil
	case err := <-consumerErr:
		if err != nil {
			log.Error(ctx, "consumer_terminated", "Decision consumer terminated with error", err, nil)
			return err
		}
		return nil
	}

	return nil
}
