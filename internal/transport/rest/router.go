package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"complyq/internal/service"
	"complyq/internal/transport/rest/handler"
	"complyq/internal/transport/rest/middleware"
	"complyq/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ProjectService    *service.ProjectService
	AssistService     *service.AssistService
	ReportService     *service.ReportService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	projectHandler := handler.NewProjectHandler(c.ProjectService)
	enhanceHandler := handler.NewEnhanceHandler(c.AssistService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assist/health", enhanceHandler.Health).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/schema", assessmentHandler.Schema).Methods("GET", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/projects/{projectId}", wsHandler.ProjectWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Analyst routes (require analyst auth)
	analystRoutes := v1.NewRoute().Subrouter()
	analystRoutes.Use(authMW.RequireAnalyst)

	analystRoutes.HandleFunc("/projects", projectHandler.List).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/projects/{projectId}", projectHandler.Get).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/projects/{projectId}/artifacts", projectHandler.Artifacts).Methods("GET", "OPTIONS")

	analystRoutes.HandleFunc("/assessments/{projectId}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/assessments/{projectId}/fields", assessmentHandler.UpdateField).Methods("PUT", "OPTIONS")
	analystRoutes.HandleFunc("/assessments/{projectId}/refresh", assessmentHandler.Refresh).Methods("POST", "OPTIONS")
	analystRoutes.HandleFunc("/assessments/{projectId}/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/assessments/{projectId}/reset", assessmentHandler.Reset).Methods("POST", "OPTIONS")

	analystRoutes.HandleFunc("/assist/enhance", enhanceHandler.Enhance).Methods("POST", "OPTIONS")
	analystRoutes.HandleFunc("/assist/suggestions", enhanceHandler.Suggest).Methods("POST", "OPTIONS")

	analystRoutes.HandleFunc("/projects/{projectId}/report", reportHandler.Generate).Methods("POST", "OPTIONS")
	analystRoutes.HandleFunc("/projects/{projectId}/report", reportHandler.Get).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/projects/{projectId}/report/html", reportHandler.GetHTML).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/projects/{projectId}/report/status", reportHandler.Status).Methods("GET", "OPTIONS")
	analystRoutes.HandleFunc("/analyses", reportHandler.ListAnalyses).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
