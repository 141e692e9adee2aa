package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"mate-storefront-layer/internal/application"
	apiinfra "mate-storefront-layer/internal/infrastructure/api"
	"mate-storefront-layer/internal/infrastructure/repository"
	"mate-storefront-layer/internal/infrastructure/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Mate Storefront API
// @version 1.0
// @description Storefront layer over the store backend: sessions, catalog, cart, checkout and the admin back office.
// @BasePath /

// Regenerate docs/swagger.json with `swag init -g cmd/api/main.go -o docs --ot json`.
func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	storeAPIURL := os.Getenv("STORE_API_URL")
	if storeAPIURL == "" {
		storeAPIURL = "http://localhost:8000/api"
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Connect to Redis
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer redisClient.Close()

	// Initialize repositories
	sessionRepo := repository.NewMongoSessionRepository(db)
	cartRepo := repository.NewRedisCartRepository(redisClient)
	prefsRepo := repository.NewRedisPreferenceRepository(redisClient)

	// Initialize the backend client
	store := upstream.NewClient(storeAPIURL, logger)

	// Initialize application services
	sessions := application.NewSessionService(store, sessionRepo, logger)
	carts := application.NewCartService(cartRepo, store, logger)
	checkout := application.NewCheckoutService(store, cartRepo, logger)
	catalog := application.NewCatalogService(store, logger)
	accounts := application.NewAccountService(store, logger)
	admin := application.NewAdminService(store, logger)
	reports := application.NewReportService(store, prefsRepo, logger)
	visits := application.NewVisitService(store, logger)

	handler := apiinfra.NewHandler(sessions, carts, checkout, catalog, accounts, admin, reports, visits, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation - public
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Storefront surface
	r.Group(handler.Routes)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
