package main

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "chainmind-api/configs"
	"chainmind-api/pkg/gemini"
	"chainmind-api/pkg/handlers"
	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Load .env when running from the repo; it may be absent in CI.
	godotenv.Load("../../.env")

	os.Exit(m.Run())
}

func TestApplicationSetup(t *testing.T) {
	cfg := config.LoadConfig()
	assert.NotNil(t, cfg, "Config should not be nil")

	geminiClient := gemini.NewClient(cfg.GeminiEndpoint, cfg.GeminiAPIKey, cfg.GeminiModel)
	assert.NotNil(t, geminiClient, "Gemini client should not be nil")

	advisorService := services.NewAdvisorService(geminiClient, config.DefaultAdvisorPersona())
	assert.NotNil(t, advisorService, "AdvisorService should not be nil")

	simulationService := services.NewSimulationService(cfg, rand.New(rand.NewSource(1)))
	assert.NotNil(t, simulationService, "SimulationService should not be nil")

	voiceBridge := services.NewVoiceBridge(cfg.GeminiLiveURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	assert.NotNil(t, voiceBridge, "VoiceBridge should not be nil")

	dashboardHandler := handlers.NewDashboardHandler(simulationService, advisorService, services.NewReportService())
	assert.NotNil(t, dashboardHandler, "DashboardHandler should not be nil")

	chatHandler := handlers.NewChatHandler(advisorService, simulationService, services.NewChatService())
	assert.NotNil(t, chatHandler, "ChatHandler should not be nil")

	voiceHandler := handlers.NewVoiceHandler(voiceBridge)
	assert.NotNil(t, voiceHandler, "VoiceHandler should not be nil")
}

func TestRouterSetup(t *testing.T) {
	r := gin.New()
	r.GET("/health", handlers.HealthCheck)

	cfg := config.LoadConfig()
	simulationService := services.NewSimulationService(cfg, rand.New(rand.NewSource(1)))
	advisorService := services.NewAdvisorService(gemini.NewClient(cfg.GeminiEndpoint, "", cfg.GeminiModel), nil)
	dashboardHandler := handlers.NewDashboardHandler(simulationService, advisorService, services.NewReportService())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard/state", dashboardHandler.GetState)
	}

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/v1/dashboard/state", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "snapshot")
}

func TestEnvironmentVariables(t *testing.T) {
	testEnvVars := map[string]string{
		"GEMINI_API_KEY":  "test-key",
		"GEMINI_MODEL":    "gemini-2.5-flash",
		"GEMINI_ENDPOINT": "https://generativelanguage.googleapis.com",
	}

	for key, value := range testEnvVars {
		os.Setenv(key, value)
	}
	defer func() {
		for key := range testEnvVars {
			os.Unsetenv(key)
		}
	}()

	cfg := config.LoadConfig()
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiEndpoint)
}
