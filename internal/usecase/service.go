package usecase

import (
	"travel-portal/internal/data/repository"
	"travel-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Package PackageService
	Booking BookingService
	Admin   AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Package: NewPackageService(repo, log),
		Booking: NewBookingService(repo, log),
		Admin:   NewAdminService(repo, log),
	}
}
