package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/pandamarket/api/docs"
	articledomain "github.com/pandamarket/api/internal/article/domain"
	articlehttp "github.com/pandamarket/api/internal/article/delivery/http"
	articlerepo "github.com/pandamarket/api/internal/article/repository"
	commentdomain "github.com/pandamarket/api/internal/comment/domain"
	commenthttp "github.com/pandamarket/api/internal/comment/delivery/http"
	commentrepo "github.com/pandamarket/api/internal/comment/repository"
	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/image"
	imagehttp "github.com/pandamarket/api/internal/image/delivery/http"
	productdomain "github.com/pandamarket/api/internal/product/domain"
	producthttp "github.com/pandamarket/api/internal/product/delivery/http"
	productrepo "github.com/pandamarket/api/internal/product/repository"
	userdomain "github.com/pandamarket/api/internal/user/domain"
	userhttp "github.com/pandamarket/api/internal/user/delivery/http"
	userrepo "github.com/pandamarket/api/internal/user/repository"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/database"
	"github.com/pandamarket/api/pkg/logger"
	"github.com/pandamarket/api/pkg/tracing"
)

const serviceName = "pandamarket-api"

func main() {
	logger.Init(serviceName, getEnv("APP_ENV", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))
	ctx := context.Background()

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to initialize tracer")
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to shut down tracer")
		}
	}()

	dbCfg := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "pandamarket"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	db, err := database.NewGormConnection(dbCfg)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&userdomain.User{},
		&productdomain.Product{},
		&articledomain.Article{},
		&commentdomain.Comment{},
		&favorite.Favorite{},
	); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to run migrations")
		os.Exit(1)
	}

	// Kafka is optional; a nil publisher degrades to no-op publishing
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Kafka unavailable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	storage, err := image.NewDiskStorage(
		getEnv("UPLOAD_DIR", "./uploads"),
		getEnv("UPLOAD_BASE_URL", "http://localhost:8080/uploads"),
	)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to initialize image storage")
		os.Exit(1)
	}

	productRepo := productrepo.NewTracingProductRepository(productrepo.NewGormProductRepository(db))
	articleRepo := articlerepo.NewGormArticleRepository(db)
	commentRepo := commentrepo.NewGormCommentRepository(db)
	userRepo := userrepo.NewTracingUserRepository(userrepo.NewGormUserRepository(db))
	favorites := favorite.NewGormService(db)

	router := mux.NewRouter()
	producthttp.NewProductHandler(productRepo, favorites, publisher).RegisterRoutes(router)
	articlehttp.NewArticleHandler(articleRepo, favorites, publisher).RegisterRoutes(router)
	commenthttp.NewCommentHandler(commentRepo, productRepo, articleRepo, publisher).RegisterRoutes(router)
	userhttp.NewUserHandler(userRepo).RegisterRoutes(router)
	imagehttp.NewImageHandler(storage).RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(storage.Dir()))),
	)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to get database handle")
		os.Exit(1)
	}
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(otelhttp.NewHandler(router, "http.server"))

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx).Str("addr", addr).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx).Err(err).Msg("Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx).Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx).Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
