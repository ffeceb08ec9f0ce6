package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"macdee-orders/internal/config"
	"macdee-orders/internal/handlers"
	"macdee-orders/internal/intake"
	"macdee-orders/internal/ledger"
	"macdee-orders/internal/services"
	"macdee-orders/internal/storage"
	"macdee-orders/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Relay credentials come from the environment; standalone mode runs
	// without them.
	creds, err := config.LoadCredentials(!cfg.StandaloneMode)
	if err != nil {
		log.Fatalf("Failed to load credentials: %v", err)
	}

	if cfg.Server.Verbose {
		log.Printf("[MAIN] Mac Dee order service starting...")
		log.Printf("[MAIN] Server port: %d", cfg.Server.Port)
		log.Printf("[MAIN] Unit price: %d kobo, minimum order: %d kobo",
			cfg.Order.UnitPriceKobo, cfg.Order.MinimumTotalKobo)
		log.Printf("[MAIN] Ledger file: %s", cfg.Ledger.Path)
		log.Printf("[MAIN] Uploads dir: %s (cap %d bytes)",
			cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
	}

	// Initialize components
	validator := validation.NewValidator(
		cfg.Order.UnitPriceKobo,
		cfg.Order.MinimumTotalKobo,
		cfg.Uploads.MaxSizeBytes,
	)

	orderLedger := ledger.NewFileLedger(cfg.Ledger.Path, cfg.Server.Verbose)

	receiptStore, err := storage.NewReceiptStore(cfg.Uploads.Dir, cfg.Server.Verbose)
	if err != nil {
		log.Fatalf("Failed to initialize receipt store: %v", err)
	}

	notifier := services.CreateNotifier(cfg, creds)
	if cfg.StandaloneMode {
		log.Printf("Running in STANDALONE mode - notifications are logged, not sent")
	} else {
		log.Printf("Running in ONLINE mode - relay %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	intakeService := intake.NewService(
		validator,
		orderLedger,
		receiptStore,
		notifier,
		cfg.Order.UnitPriceKobo,
		cfg.Server.Verbose,
	)

	// Initialize handlers
	handler := handlers.NewIntakeHandler(intakeService, validator, cfg)

	// Set up Gin router with logging based on verbose config
	var router *gin.Engine
	if cfg.Server.Verbose {
		gin.SetMode(gin.DebugMode)
		router = gin.Default()
		log.Printf("Verbose mode enabled - HTTP requests will be logged")
	} else {
		gin.SetMode(gin.ReleaseMode)
		router = gin.New()
		router.Use(gin.Recovery())
	}

	// Load HTML templates
	router.LoadHTMLGlob("web/templates/*")

	handler.Register(router)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting Mac Dee order service on port %d", cfg.Server.Port)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
