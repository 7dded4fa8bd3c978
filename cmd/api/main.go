// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
	"github.com/imadgeboyega/spotlink-backend/internal/catalog"
	"github.com/imadgeboyega/spotlink-backend/internal/checkin"
	"github.com/imadgeboyega/spotlink-backend/internal/common/database"
	"github.com/imadgeboyega/spotlink-backend/internal/config"
	"github.com/imadgeboyega/spotlink-backend/internal/connections"
	"github.com/imadgeboyega/spotlink-backend/internal/discovery"
	"github.com/imadgeboyega/spotlink-backend/internal/messaging"
	"github.com/imadgeboyega/spotlink-backend/internal/profile"
	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Spotlink API")
	log.Println("========================================")

	// 1. Load configuration
	log.Println("📋 Step 1: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 2. Validate configuration
	log.Println("\n✔️  Step 2: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Initialize the entity store
	log.Println("\n🗄️  Step 3: Initializing entity store...")
	var entityStore store.Store
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Failed to connect to PostgreSQL:", err)
		}
		defer db.Close()

		log.Println("   - Running database migrations...")
		if err := runMigrations(db); err != nil {
			log.Fatal("❌ Failed to run migrations:", err)
		}

		entityStore = store.NewPostgresStore(db)
		log.Println("✅ Using PostgreSQL store")

	default:
		memStore := store.NewMemStore()
		if cfg.SeedData {
			if err := store.Seed(context.Background(), memStore); err != nil {
				log.Fatal("❌ Failed to seed store:", err)
			}
			log.Println("   - Sample data seeded")
		}
		entityStore = memStore
		log.Println("✅ Using in-memory store")
	}

	// 4. Connect to Redis (optional)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without Redis", err)
		} else {
			redisClient = client
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Initialize Auth system
	log.Println("\n🔐 Step 5: Initializing authentication system...")
	authConfig := &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
	}
	authService := auth.NewService(entityStore, redisClient, authConfig)
	authHandlers := auth.NewHandlers(authService, entityStore)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication system initialized")

	// 6. Initialize Profile system
	log.Println("\n👤 Step 6: Initializing profile system...")
	var uploadService profile.UploadService
	if cfg.UploadDriver == "s3" {
		s3Service, err := profile.NewS3UploadService(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Printf("⚠️  Failed to init S3, using local storage: %v", err)
			uploadService = profile.NewLocalUploadService(cfg.UploadDir, cfg.BaseURL+"/uploads")
		} else {
			uploadService = s3Service
			log.Println("   ✅ Using S3 for avatar uploads")
		}
	} else {
		uploadService = profile.NewLocalUploadService(cfg.UploadDir, cfg.BaseURL+"/uploads")
		log.Println("   ✅ Using local storage for avatar uploads")
	}
	profileService := profile.NewService(entityStore)
	profileHandlers := profile.NewHandlers(profileService, uploadService, cfg.MaxUploadSize)
	log.Println("✅ Profile system initialized")

	// 7. Initialize Messaging module
	log.Println("\n💬 Step 7: Initializing messaging module...")
	messagingHub := messaging.NewHub()
	go messagingHub.Run()
	messagingService := messaging.NewService(entityStore, messagingHub)
	messagingHandlers := messaging.NewHandlers(messagingService, messagingHub, authService)
	log.Println("✅ Messaging module initialized (websocket hub started)")

	// 8. Initialize discovery modules
	log.Println("\n📍 Step 8: Initializing check-in, discovery and connections...")
	checkinService := checkin.NewService(entityStore)
	checkinHandlers := checkin.NewHandlers(checkinService)

	discoveryEngine := discovery.NewEngine(entityStore)
	discoveryHandlers := discovery.NewHandlers(discoveryEngine)

	connectionsService := connections.NewService(entityStore)
	connectionsHandlers := connections.NewHandlers(connectionsService)

	catalogHandlers := catalog.NewHandlers(entityStore)
	log.Println("✅ Discovery modules initialized")

	// 9. Setup routes
	log.Println("\n🛣️  Step 9: Setting up routes...")
	router := mux.NewRouter()

	if cfg.UploadDriver != "s3" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.UploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api", apiInfo).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	auth.RegisterRoutes(api, authHandlers, authMiddleware)
	profile.RegisterRoutes(api, profileHandlers, authMiddleware)
	catalog.RegisterRoutes(api, catalogHandlers, authMiddleware)
	checkin.RegisterRoutes(api, checkinHandlers, authMiddleware)
	discovery.RegisterRoutes(api, discoveryHandlers, authMiddleware)
	connections.RegisterRoutes(api, connectionsHandlers, authMiddleware)
	messaging.RegisterRoutes(api, messagingHandlers, authMiddleware)
	log.Println("✅ Routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	log.Println("   - Shutting down messaging hub...")
	messagingHub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","time":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

// apiInfo returns basic API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"name":"Spotlink API","version":"v1","prefix":"/api/v1"}`)
}

// loggingMiddleware logs every request with its duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %s", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// corsMiddleware sets CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
