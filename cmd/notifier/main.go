package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/logger"
	"github.com/pandamarket/api/pkg/tracing"
)

const serviceName = "pandamarket-notifier"

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Total number of notification events consumed",
	},
	[]string{"event_type"},
)

func main() {
	logger.Init(serviceName, getEnv("APP_ENV", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to initialize tracer")
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		tracing.Shutdown(shutdownCtx, tp)
	}()

	prometheus.MustRegister(notificationsTotal)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	consumer, err := kafka.NewConsumer(
		brokers,
		getEnv("KAFKA_GROUP", "notifier"),
		[]string{kafka.TopicFavoriteChanged, kafka.TopicCommentCreated},
	)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to create consumer")
		os.Exit(1)
	}
	defer consumer.Close()

	consumer.OnFavoriteChanged(func(ctx context.Context, event kafka.FavoriteChangedEvent) error {
		notificationsTotal.WithLabelValues(event.EventType).Inc()
		logger.Info(ctx).
			Str("event_type", event.EventType).
			Str("target_type", event.TargetType).
			Uint("target_id", event.TargetID).
			Uint("user_id", event.UserID).
			Int64("favorite_count", event.FavoriteCount).
			Msg("Favorite notification")
		return nil
	})

	consumer.OnCommentCreated(func(ctx context.Context, event kafka.CommentCreatedEvent) error {
		notificationsTotal.WithLabelValues(event.EventType).Inc()
		logger.Info(ctx).
			Str("target_type", event.TargetType).
			Uint("target_id", event.TargetID).
			Uint("comment_id", event.CommentID).
			Uint("owner_id", event.OwnerID).
			Msg("Comment notification")
		return nil
	})

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := ":" + getEnv("METRICS_PORT", "9091")
		logger.Info(ctx).Str("addr", addr).Msg("Metrics server listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(ctx).Err(err).Msg("Metrics server failed")
		}
	}()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx).Err(err).Msg("Consumer stopped")
			cancel()
		}
	}()

	logger.Info(ctx).Strs("brokers", brokers).Msg("Notifier started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info(ctx).Msg("Shutting down")
	cancel()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
