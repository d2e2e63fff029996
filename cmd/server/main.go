package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rasoilabs/menucart/internal/api"
	"github.com/rasoilabs/menucart/internal/bus"
	"github.com/rasoilabs/menucart/internal/data"
	"github.com/rasoilabs/menucart/internal/domain"
	"github.com/rasoilabs/menucart/internal/gate"
	"github.com/rasoilabs/menucart/internal/handoff"
	"github.com/rasoilabs/menucart/internal/storage"
)

type Config struct {
	HTTPPort        string
	StorageBackend  string
	StorageDir      string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	BusinessURL     string
	MenuURL         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "memory"),
		StorageDir:      getEnv("STORAGE_DIR", "./data"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "menucart"),
		BusinessURL:     getEnv("BUSINESS_URL", "http://localhost:8000/business.json"),
		MenuURL:         getEnv("MENU_URL", "http://localhost:8000/menu.json"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	slot, cleanup, err := buildSlotStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage backend %q: %v", cfg.StorageBackend, err)
	}
	defer cleanup()
	log.Printf("Using %s storage backend", cfg.StorageBackend)

	// Fetch the two documents the site runs on. A failed fetch is logged and
	// the matching section stays unserved; the process keeps running.
	loader := data.NewLoader(nil)

	business, err := loader.FetchBusiness(ctx, cfg.BusinessURL)
	if err != nil {
		log.Printf("Business JSON error: %v", err)
	}
	menu, err := loader.FetchMenu(ctx, cfg.MenuURL)
	if err != nil {
		log.Printf("Menu JSON error: %v", err)
	}

	var hours map[string]domain.DaySchedule
	var whatsappNumber string
	var minimumOrder float64
	if business != nil {
		hours = business.OpeningHours
		whatsappNumber = handoff.CleanNumber(business.Contact.WhatsappNumber)
		minimumOrder = business.Flags.MinimumDeliveryOrder
	}

	eventBus := bus.New()
	eventBus.Subscribe(bus.EventOrderSuccess, func(any) {
		log.Printf("Order confirmed sent")
	})

	availability := gate.New(hours)
	sessions := api.NewSessionManager(slot, eventBus, availability, handoff.LogSender{}, whatsappNumber, minimumOrder)
	handler := api.NewHandler(sessions, availability, business, menu)

	router := handler.Routes(middleware.Timeout(cfg.RequestTimeout))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "menucart"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("menucart listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildSlotStore(ctx context.Context, cfg *Config) (storage.SlotStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemoryStore(), noop, nil

	case "file":
		store, err := storage.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, err
		}
		log.Printf("Redis ping succeeded")
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, noop, err
		}
		store := storage.NewMongoStore(db)
		if err := store.CreateIndexes(ctx); err != nil {
			return nil, noop, err
		}
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
		return store, func() { db.Client().Disconnect(context.Background()) }, nil
	}

	return nil, noop, errors.New("unknown storage backend")
}
