package wire

import (
	"travel-portal/internal/adaptor"
	"travel-portal/internal/data/repository"
	"travel-portal/pkg/middleware"
	"travel-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePackage(
	r chi.Router,
	packageHandler *adaptor.PackageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing the catalog needs no login
	r.Get("/api/packages", packageHandler.ListPackages)
	r.Get("/api/packages/{id}", packageHandler.GetPackage)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/packages", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/packages - Create new package (admin)
		r.Post("/", packageHandler.CreatePackage)

		// PUT /api/admin/packages/{id} - Update package (admin)
		r.Put("/{id}", packageHandler.UpdatePackage)

		// DELETE /api/admin/packages/{id} - Delete package + its non-confirmed bookings (admin)
		r.Delete("/{id}", packageHandler.DeletePackage)
	})
}
