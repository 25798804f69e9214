// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro/internal/config"
	httptransport "bistro/internal/http"
	"bistro/internal/infra"
	"bistro/internal/modules/catalog"
	"bistro/internal/modules/order"
	"bistro/internal/modules/reservation"
	"bistro/internal/modules/users"
	"bistro/internal/notify"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		slog.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	var notifier order.Notifier
	if cfg.AMQP.URL != "" {
		conn, ch, err := infra.NewMQ(cfg.AMQP.URL)
		if err != nil {
			slog.Error("connect rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		publisher, err := notify.NewPublisher(ch)
		if err != nil {
			slog.Error("init publisher", "error", err)
			os.Exit(1)
		}
		notifier = publisher
	}

	verifier := infra.NewJWTVerifier(cfg.Auth.JWTSecret)

	catalogStore := catalog.NewStore(dbPool, redisClient, cfg.Catalog.CacheTTL)
	catalogSvc := catalog.NewService(catalogStore)

	usersStore := users.NewStore(dbPool)

	reservationStore := reservation.NewStore(dbPool)
	reservationSvc := reservation.NewService(reservationStore)

	orderStore := order.NewStore(dbPool)
	orderSvc := order.NewService(orderStore, catalogSvc, usersStore, reservationStore, notifier)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Order:       orderSvc,
		Catalog:     catalogSvc,
		Reservation: reservationSvc,
		Verifier:    verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("serve", "error", err)
		os.Exit(1)
	}
}
