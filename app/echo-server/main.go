package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"myLaptopDesk/app/echo-server/router"
	"myLaptopDesk/business/assignment"
	"myLaptopDesk/business/maintenance"
	"myLaptopDesk/business/recommender"
	"myLaptopDesk/business/reservation"
	"myLaptopDesk/business/ticket"
	"myLaptopDesk/domain"
	"myLaptopDesk/internal/dataset"
	"myLaptopDesk/internal/middleware"
	memoryRepo "myLaptopDesk/internal/repository/memory"
	psqlRepo "myLaptopDesk/internal/repository/postgres"
	redisRepo "myLaptopDesk/internal/repository/redis"
	"myLaptopDesk/internal/rest"
	"myLaptopDesk/pkg/config"
	"myLaptopDesk/pkg/database"
	redisdb "myLaptopDesk/pkg/database/redis"
	"myLaptopDesk/pkg/logger"
	"myLaptopDesk/pkg/metrics"
)

type catalogStore interface {
	recommender.CatalogRepository
	reservation.LaptopRepository
	Upsert(ctx context.Context, laptop *domain.Laptop) error
}

type maintenanceStore interface {
	maintenance.MaintenanceRepository
	InsertIfAbsent(ctx context.Context, rec domain.MaintenanceRecord) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Laptop Desk", "version", cfg.App.Version)

	metrics.Init()

	var db *gorm.DB
	if cfg.UsesPostgres() {
		db, err = database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database connected successfully")
	}

	// Init repo
	var (
		catalogRepo     catalogStore
		assignmentRepo  assignment.AssignmentRepository
		maintenanceRepo maintenanceStore
	)
	switch cfg.Storage.Backend {
	case config.StorePostgres:
		catalogRepo = psqlRepo.NewLaptopRepository(db)
		assignmentRepo = psqlRepo.NewAssignmentRepository(db)
		maintenanceRepo = psqlRepo.NewMaintenanceRepository(db)
	default:
		catalogRepo = memoryRepo.NewLaptopRepository()
		assignmentRepo = memoryRepo.NewAssignmentRepository()
		maintenanceRepo = memoryRepo.NewMaintenanceRepository()
	}

	var ticketRepo ticket.TicketRepository
	switch cfg.Tickets.Store {
	case config.StorePostgres:
		ticketRepo = psqlRepo.NewTicketRepository(db)
	case config.StoreRedis:
		client, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer closeRedis(client)
		ticketRepo = redisRepo.NewTicketRepository(client)
	default:
		ticketRepo = memoryRepo.NewTicketRepository()
	}
	logger.Info("Stores ready", "storage", cfg.Storage.Backend, "tickets", cfg.Tickets.Store)

	if cfg.Storage.CatalogSeedPath != "" {
		if err := seedCatalog(cfg.Storage.CatalogSeedPath, catalogRepo, maintenanceRepo); err != nil {
			logger.Fatal("Failed to seed catalog", "error", err)
		}
	}

	// Fit the model before anything can serve a request
	rows, err := dataset.LoadTrainingRows(cfg.Recommender.DatasetPath)
	if err != nil {
		logger.Fatal("Failed to load training dataset", "error", err)
	}
	model, err := recommender.Train(context.Background(), rows, recommender.Config{
		Neighbors:    cfg.Recommender.Neighbors,
		TestFraction: cfg.Recommender.TestFraction,
		SplitSeed:    cfg.Recommender.SplitSeed,
	})
	if err != nil {
		logger.Fatal("Failed to train recommendation model", "error", err)
	}

	// Init service
	ticketService := ticket.NewTicketService(ticketRepo)
	engine := recommender.NewEngine(model, catalogRepo, ticketService)
	maintenanceService := maintenance.NewMaintenanceService(maintenanceRepo)
	reservationService := reservation.NewReservationService(catalogRepo)
	assignmentService := assignment.NewAssignmentService(assignmentRepo, engine, maintenanceService)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(engine)
	assignmentHandler := rest.NewAssignmentHandler(assignmentService)
	reservationHandler := rest.NewReservationHandler(reservationService)
	ticketHandler := rest.NewTicketHandler(ticketService)
	maintenanceHandler := rest.NewMaintenanceHandler(maintenanceService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestContext())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: splitOrigins(cfg.Server.AllowedOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetAssignmentRoutes(api, assignmentHandler)
	router.SetReservationRoutes(api, reservationHandler)
	router.SetTicketRoutes(api, ticketHandler)
	router.SetMaintenanceRoutes(api, maintenanceHandler)
	router.SetMetricsRoute(api)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// seedCatalog upserts every laptop of the seed file. A maintenance status from
// the file only fills laptops that have no record yet.
func seedCatalog(path string, catalog catalogStore, upkeep maintenanceStore) error {
	entries, err := dataset.LoadCatalog(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for _, entry := range entries {
		laptop := entry.Laptop
		if err := catalog.Upsert(ctx, &laptop); err != nil {
			return fmt.Errorf("laptop %q: %w", laptop.Name, err)
		}
		if entry.MaintenanceStatus == "" {
			continue
		}
		if err := upkeep.InsertIfAbsent(ctx, domain.MaintenanceRecord{
			LaptopName:  laptop.Name,
			Status:      entry.MaintenanceStatus,
			LastUpdated: now,
		}); err != nil {
			return fmt.Errorf("maintenance for %q: %w", laptop.Name, err)
		}
	}

	logger.Info("Catalog seeded", "path", path, "laptops", len(entries))
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func closeRedis(client *goredis.Client) {
	if err := redisdb.CloseRedisClient(client); err != nil {
		logger.Error("Failed to close Redis client", "error", err)
	}
}
