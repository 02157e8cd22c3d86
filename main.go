package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"watchstore/internal/handlers"
	"watchstore/internal/middleware"
	"watchstore/internal/models"
	"watchstore/internal/repositories"
	"watchstore/internal/services"
	"watchstore/pkg/rabbitmq"
)

// storeSet bundles one repository per entity, all backed by the same driver.
type storeSet struct {
	watches repositories.WatchRepository
	users   repositories.UserRepository
	admins  repositories.AdminRepository
	orders  repositories.OrderRepository
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB", "watchstore")
	viper.SetDefault("DATABASE_DSN", "watchstore.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ADMIN_EMAIL", "admin@watchstore.local")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Persistence ---
	stores, err := openStores()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// An empty RABBITMQ_URL disables the broker; order events are then
	// simply not published.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Services ---
	authService := services.NewAuthService(stores.users, stores.admins, viper.GetString("JWT_SECRET"))
	watchService := services.NewWatchService(stores.watches)
	orderService := services.NewOrderService(stores.orders, stores.users, stores.watches, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService)
	watchHandler := handlers.NewWatchHandler(watchService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	userGate := middleware.AuthRequired(authService)
	adminGate := middleware.AdminRequired(authService)

	authHandler.RegisterRoutes(app, userGate)
	adminHandler.RegisterRoutes(app, adminGate)
	watchHandler.RegisterRoutes(app, adminGate)
	orderHandler.RegisterRoutes(app, userGate, adminGate)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openStores builds the repository set for the configured STORE_DRIVER.
func openStores() (*storeSet, error) {
	driver := viper.GetString("STORE_DRIVER")

	switch driver {
	case "mongo":
		return openMongoStores()
	case "postgres":
		return openGormStores(postgres.Open(viper.GetString("DATABASE_DSN")))
	case "sqlite":
		return openGormStores(sqlite.Open(viper.GetString("DATABASE_DSN")))
	case "memory":
		return openMemoryStores()
	}
	return nil, fmt.Errorf("unsupported STORE_DRIVER %q (supported: mongo, postgres, sqlite, memory)", driver)
}

func openMongoStores() (*storeSet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(viper.GetString("MONGODB_URI")))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(viper.GetString("MONGODB_DB"))
	return &storeSet{
		watches: repositories.NewMongoWatchRepository(db),
		users:   repositories.NewMongoUserRepository(db),
		admins:  repositories.NewMongoAdminRepository(db),
		orders:  repositories.NewMongoOrderRepository(db),
	}, nil
}

func openGormStores(dialector gorm.Dialector) (*storeSet, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Watch{}, &models.User{}, &models.Admin{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &storeSet{
		watches: repositories.NewGORMWatchRepository(db),
		users:   repositories.NewGORMUserRepository(db),
		admins:  repositories.NewGORMAdminRepository(db),
		orders:  repositories.NewGORMOrderRepository(db),
	}, nil
}

func openMemoryStores() (*storeSet, error) {
	stores := &storeSet{
		watches: repositories.NewMockWatchRepository(),
		users:   repositories.NewMockUserRepository(),
		admins:  repositories.NewMockAdminRepository(),
		orders:  repositories.NewMockOrderRepository(),
	}
	seedCatalog(stores.watches)
	if err := seedAdmin(stores.admins); err != nil {
		return nil, err
	}
	return stores, nil
}

// seedCatalog populates the in-memory catalog with a few initial entries.
func seedCatalog(repo repositories.WatchRepository) {
	watches := []models.Watch{
		{
			Image:       "https://images.unsplash.com/photo-1523170335258-f5ed11844a49?w=500&h=500&fit=crop",
			Title:       "Rolex Submariner Pro",
			Description: "Professional dive watch with precision automatic movement and sapphire crystal",
			Price:       747917,
			Category:    models.CategoryLuxury,
			Brand:       "Rolex",
			Reviews:     128,
			Stock:       5,
		},
		{
			Image:       "https://images.unsplash.com/photo-1579409967389-1e1398ae2e00?w=500&h=500&fit=crop",
			Title:       "Omega Seamaster",
			Description: "Swiss luxury timepiece with chronograph and ceramic bezel",
			Price:       539500,
			Category:    models.CategoryLuxury,
			Brand:       "Omega",
			Reviews:     95,
			Stock:       7,
		},
		{
			Image:       "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?w=500&h=500&fit=crop",
			Title:       "Garmin Fenix 7X",
			Description: "Multi-GNSS sports watch with advanced training metrics and 11-day battery",
			Price:       66317,
			Category:    models.CategorySports,
			Brand:       "Garmin",
			Reviews:     342,
			Stock:       15,
		},
	}

	for i := range watches {
		watches[i].ApplyDefaults()
		if err := repo.Create(&watches[i]); err != nil {
			log.Printf("Error seeding watch %s: %v", watches[i].Title, err)
		} else {
			log.Printf("Seeded watch: %s (ID: %s)", watches[i].Title, watches[i].ID)
		}
	}
}

// seedAdmin creates the out-of-band admin account from config.
func seedAdmin(repo repositories.AdminRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(viper.GetString("ADMIN_PASSWORD")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.Admin{
		Email:    viper.GetString("ADMIN_EMAIL"),
		Password: string(hash),
	}
	if err := repo.Create(admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.Printf("Seeded admin: %s", admin.Email)
	return nil
}
