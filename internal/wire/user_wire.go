package wire

import (
	"travel-portal/internal/adaptor"
	"travel-portal/internal/data/repository"
	"travel-portal/pkg/middleware"
	"travel-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/profile - View own profile
		r.Get("/api/profile", userHandler.GetProfile)

		// PUT /api/profile - Update own profile
		r.Put("/api/profile", userHandler.UpdateProfile)
	})
}
