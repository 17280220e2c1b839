package wire

import (
	"travel-portal/internal/adaptor"
	"travel-portal/internal/data/repository"
	"travel-portal/pkg/middleware"
	"travel-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/dashboard", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/dashboard - Aggregate stats (admin)
		r.Get("/", adminHandler.GetDashboard)
	})
}
