package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	config "chainmind-api/configs"
	"chainmind-api/pkg/gemini"
	"chainmind-api/pkg/handlers"
	"chainmind-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	r := gin.Default()

	// Advisor persona, with a built-in fallback when the YAML is absent.
	persona, err := config.LoadAdvisorPersona("configs/advisor_persona.yaml")
	if err != nil {
		log.Printf("Warning: using built-in advisor persona: %v", err)
		persona = config.DefaultAdvisorPersona()
	}

	// Service initialization.
	monitoringService := services.NewMonitoringService()
	geminiClient := gemini.NewClient(cfg.GeminiEndpoint, cfg.GeminiAPIKey, cfg.GeminiModel)
	advisorService := services.NewAdvisorService(geminiClient, persona)
	simulationService := services.NewSimulationService(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	chatService := services.NewChatService()
	reportService := services.NewReportService()
	voiceBridge := services.NewVoiceBridge(cfg.GeminiLiveURL, cfg.GeminiAPIKey, cfg.GeminiModel)

	// Handler initialization.
	dashboardHandler := handlers.NewDashboardHandler(simulationService, advisorService, reportService)
	chatHandler := handlers.NewChatHandler(advisorService, simulationService, chatService)
	supplierHandler := handlers.NewSupplierHandler(advisorService, simulationService)
	authHandler := handlers.NewAuthHandler(cfg.LoginDelay)
	voiceHandler := handlers.NewVoiceHandler(voiceBridge)
	adminHandler := handlers.NewAdminHandler(cfg)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Middleware registration.
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(cors.Default())

	// API key middleware for deployments that front the API publicly.
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" || apiKey == "default_secret_key" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// Background simulation ticker.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go simulationService.Run(ctx)

	r.GET("/health", handlers.HealthCheck)

	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/state", dashboardHandler.GetState)
			dashboard.GET("/activity", dashboardHandler.GetActivity)
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/report", dashboardHandler.ExportReport)
			dashboard.POST("/tick", dashboardHandler.TriggerTick)
			dashboard.POST("/incident", dashboardHandler.TriggerIncident)
		}

		chat := v1.Group("/chat")
		{
			chat.POST("/message", chatHandler.SendMessage)
			chat.GET("/transcript", chatHandler.GetTranscript)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("/compare", supplierHandler.Compare)
		}

		voice := v1.Group("/voice")
		{
			voice.GET("/session", voiceHandler.Session)
		}
	}

	log.Printf("Starting ChainMind API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
