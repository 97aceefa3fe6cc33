package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkboard/internal/db"
	"linkboard/internal/email"
	"linkboard/internal/handlers"
	"linkboard/internal/metrics"
	"linkboard/internal/middleware"
	"linkboard/internal/moderation"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, engine *moderation.Engine, notifier *email.Notifier) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(database, s.Cfg, notifier)
	moderationHandler := handlers.NewModerationHandler(database, engine)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required for moderation access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. Moderators must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Public routes
	s.App.Post("/submissions", submissionHandler.Create)
	s.App.Get("/links", submissionHandler.ListPublished)

	// Moderation routes (admin only)
	admin := s.App.Group("/admin", authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	admin.Get("/submissions", moderationHandler.List)
	admin.Get("/submissions/counts", moderationHandler.Counts)
	admin.Post("/submissions/bulk", moderationHandler.Bulk)
	admin.Post("/submissions/:id/:action", moderationHandler.Transition)

	// Observability
	metrics.Init(database)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	return nil
}
