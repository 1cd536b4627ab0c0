package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appconfig "complyq/config"
	"complyq/internal/cache"
	"complyq/internal/config"
	"complyq/internal/report"
	"complyq/internal/repository"
	"complyq/internal/service"
	"complyq/internal/transport/rest"
	"complyq/internal/transport/ws"
)

// @title ComplyQ Risk Assessment API
// @version 1.0
// @description AI system risk-assessment questionnaire and compliance report service
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := appconfig.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Enhance:   %s", aiConfig.Models.Enhance)
	log.Printf("  Suggest:   %s", aiConfig.Models.Suggest)
	log.Printf("  Narrative: %s", aiConfig.Models.Narrative)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured ✓")
	} else {
		log.Println("  API Key:   NOT SET (using mock assist)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	projectRepo := repository.NewProjectRepo(db)
	artifactRepo := repository.NewArtifactRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Initialize caches
	assessmentCache := cache.NewAssessmentCache(rdb)
	reportCache := cache.NewReportCache(rdb)

	// Initialize report renderer
	renderer, err := report.NewRenderer()
	if err != nil {
		log.Fatal("Failed to build report renderer:", err)
	}

	// Initialize services
	authSvc := service.NewAuthService()
	projectSvc := service.NewProjectService(projectRepo, artifactRepo)
	assistSvc := service.NewAssistService()
	assessmentSvc := service.NewAssessmentService(assessmentCache, projectSvc)
	reportSvc := service.NewReportService(assessmentSvc, projectSvc, assistSvc, renderer, reportRepo, reportCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)
	reportSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		ProjectService:    projectSvc,
		AssistService:     assistSvc,
		ReportService:     reportSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Analyst auth: username=%s", os.Getenv("ANALYST_USERNAME"))
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/projects")
		log.Println("  GET  /v1/assessments/{projectId}")
		log.Println("  PUT  /v1/assessments/{projectId}/fields")
		log.Println("  POST /v1/assessments/{projectId}/reset")
		log.Println("  POST /v1/assist/enhance")
		log.Println("  POST /v1/projects/{projectId}/report")
		log.Println("  GET  /v1/analyses")
		log.Println("  WS   /v1/ws/projects/{projectId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
