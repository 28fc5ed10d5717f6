package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/alex-pober/actslaw-rag/api/handlers"
	"github.com/alex-pober/actslaw-rag/api/middleware"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/repository"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
	"github.com/alex-pober/actslaw-rag/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, log logger.Logger, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	apiHandlers := handlers.InitHandlers(s, repos, log)

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-ACTSLAW-API-KEY",
		ValidAPIKey: apikey,
	})

	v1 := r.Group("/v1")
	v1.Use(apiKeyMiddleware)
	v1.Use(middleware.CustomContextMiddleware("actslaw-rag"))
	v1.Use(middleware.TracingMiddleware())
	{
		cases := v1.Group("/cases/:caseID")
		{
			cases.GET("/documents", apiHandlers.Documents.List())
			cases.GET("/documents/:docID/content", apiHandlers.Documents.Content())
			cases.GET("/documents/:docID/email", apiHandlers.Documents.Email())
			cases.GET("/documents/:docID/email/attachments/:dataID", apiHandlers.Documents.EmailAttachment())
		}

		render := v1.Group("/render")
		{
			render.GET("/:id", apiHandlers.Render.Get())
			render.DELETE("/:id", apiHandlers.Render.Release())
		}
	}
}
