package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/handlers"
	"github.com/prnow/prnow/internal/middleware"
	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/repositories"
	"github.com/prnow/prnow/internal/services"
	"github.com/prnow/prnow/internal/workers"
	"github.com/prnow/prnow/pkg/config"
	"github.com/prnow/prnow/pkg/database"
	"github.com/prnow/prnow/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(os.Getenv("LOG_LEVEL"))
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Workspace state: in-memory store persisted as one blob
	blobRepo := repositories.NewStateBlobRepository(database.DB)
	stateRepo, err := repositories.NewPersistentStateRepository(
		repositories.NewMemoryStateRepository(models.NewAppState()), blobRepo, cfg.Database.StorageKey)
	if err != nil {
		logger.Fatalf("Failed to load workspace: %v", err)
	}

	// AI clients
	timeout := time.Duration(cfg.AI.Timeout) * time.Second
	gateway := ai.NewDefaultGateway(ai.Endpoints{
		AnthropicBaseURL: cfg.AI.AnthropicBaseURL,
		OpenAIBaseURL:    cfg.AI.OpenAIBaseURL,
		GoogleBaseURL:    cfg.AI.GoogleBaseURL,
	}, timeout)
	searchClient := ai.NewSearchClient(cfg.AI.SerperURL, timeout)

	// Services
	storeService := services.NewStoreService(stateRepo)
	outreachService := services.NewOutreachService(gateway, searchClient)
	draftPool := workers.NewDraftPool(cfg.Drafting.Concurrency)
	campaignService := services.NewCampaignService(storeService, outreachService, draftPool)
	exportService := services.NewExportService(storeService)

	if cfg.Seed.File != "" {
		seedWorkspace(storeService, cfg.Seed.File)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, gateway, searchClient, storeService, outreachService, campaignService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}
	logger.Info("Server stopped")
}

func seedWorkspace(storeService *services.StoreService, path string) {
	seed, err := services.LoadSeedFile(path)
	if err != nil {
		logger.Warnf("Skipping seed: %v", err)
		return
	}
	applied, err := storeService.ApplySeed(seed)
	if err != nil {
		logger.Warnf("Seed failed: %v", err)
		return
	}
	if !applied {
		logger.Info("Workspace already has data, seed not applied")
	}
}

func setupRoutes(router *gin.Engine, gateway *ai.Gateway, searchClient *ai.SearchClient, storeService *services.StoreService,
	outreachService *services.OutreachService, campaignService *services.CampaignService, exportService *services.ExportService) {
	// Initialize handlers
	relayHandler := handlers.NewRelayHandler(gateway, searchClient)
	generateHandler := handlers.NewGenerateHandler(outreachService, campaignService)
	setupHandler := handlers.NewSetupHandler(storeService)
	outletHandler := handlers.NewOutletHandler(storeService, outreachService)
	contactHandler := handlers.NewContactHandler(storeService)
	campaignHandler := handlers.NewCampaignHandler(storeService, campaignService)
	emailHandler := handlers.NewEmailHandler(storeService, exportService)
	dashboardHandler := handlers.NewDashboardHandler(storeService)
	healthHandler := handlers.NewHealthHandler()
	notFoundHandler := handlers.NewNotFoundHandler()

	// Relay and stateless generation
	api := router.Group("/api")
	{
		api.POST("/ai/anthropic", relayHandler.Anthropic)
		api.POST("/ai/openai", relayHandler.OpenAI)
		api.POST("/ai/google", relayHandler.Google)
		api.POST("/search", relayHandler.Search)
		api.POST("/generate", generateHandler.Generate)
		api.POST("/outlets", generateHandler.DiscoverOutlets)
	}

	workspace := router.Group("/api/workspace")
	{
		workspace.GET("/state", setupHandler.State)
		workspace.GET("/config", setupHandler.GetConfig)
		workspace.PUT("/config", setupHandler.UpdateConfig)
		workspace.GET("/profile", setupHandler.GetProfile)
		workspace.PUT("/profile", setupHandler.UpdateProfile)
		workspace.GET("/style-guide", setupHandler.GetStyleGuide)
		workspace.PUT("/style-guide", setupHandler.UpdateStyleGuide)
		workspace.POST("/style-guide/reset", setupHandler.ResetStyleGuide)

		workspace.GET("/outlets", outletHandler.ListOutlets)
		workspace.POST("/outlets", outletHandler.CreateOutlet)
		workspace.DELETE("/outlets/:id", outletHandler.DeleteOutlet)
		workspace.POST("/outlets/:id/confirm", outletHandler.ConfirmOutlet)

		workspace.GET("/contacts", contactHandler.ListContacts)
		workspace.POST("/contacts", contactHandler.CreateContact)
		workspace.DELETE("/contacts/:id", contactHandler.DeleteContact)

		workspace.GET("/campaigns", campaignHandler.ListCampaigns)
		workspace.POST("/campaigns", campaignHandler.CreateCampaign)
		workspace.POST("/campaigns/:id/toggle", campaignHandler.ToggleCampaign)
		workspace.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)

		workspace.GET("/emails", emailHandler.ListEmails)
		workspace.GET("/emails/export", emailHandler.Export)
		workspace.POST("/emails/bulk-approve", emailHandler.BulkApprove)
		workspace.POST("/emails/bulk-reject", emailHandler.BulkReject)
		workspace.POST("/emails/:id/approve", emailHandler.ApproveEmail)
		workspace.POST("/emails/:id/reject", emailHandler.RejectEmail)
		workspace.PUT("/emails/:id/status", emailHandler.UpdateStatus)
		workspace.PUT("/emails/:id/notes", emailHandler.UpdateNotes)
		workspace.DELETE("/emails/:id", emailHandler.DeleteEmail)

		workspace.GET("/dashboard", dashboardHandler.Dashboard)
	}

	// AI operations need a finished setup
	gated := router.Group("/api/workspace")
	gated.Use(middleware.SetupRequired(storeService))
	{
		gated.POST("/outlets/discover", outletHandler.DiscoverOutlets)
		gated.POST("/outlets/:id/find-contacts", outletHandler.FindContacts)
		gated.POST("/campaigns/:id/generate", campaignHandler.GenerateEmails)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
	router.NoRoute(notFoundHandler.NotFound)

	logger.Debugf("Registered %d routes", len(router.Routes()))
}
