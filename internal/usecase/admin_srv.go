package usecase

import (
	"context"
	"fmt"

	"travel-portal/internal/data/repository"
	"travel-portal/internal/dto/response"

	"go.uber.org/zap"
)

type AdminService interface {
	GetDashboard(ctx context.Context) (*response.AdminDashboardResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// recentBookingsLimit caps the dashboard booking slice.
const recentBookingsLimit = 10

func (s *adminService) GetDashboard(ctx context.Context) (*response.AdminDashboardResponse, error) {
	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	totalPackages, err := s.repo.Package.Count(ctx, repository.PackageFilter{})
	if err != nil {
		s.log.Error("Failed to count packages", zap.Error(err))
		return nil, fmt.Errorf("count packages: %w", err)
	}

	totalBookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	totalRevenue, err := s.repo.Booking.SumTotalAmount(ctx)
	if err != nil {
		s.log.Error("Failed to sum revenue", zap.Error(err))
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	recent, err := s.repo.Booking.FindAll(ctx, recentBookingsLimit, 0)
	if err != nil {
		s.log.Error("Failed to get recent bookings", zap.Error(err))
		return nil, fmt.Errorf("get recent bookings: %w", err)
	}

	recentResponses := make([]response.BookingResponse, len(recent))
	for i, booking := range recent {
		pkg, _ := s.repo.Package.FindByID(ctx, booking.PackageID)
		recentResponses[i] = response.BookingToResponse(booking, pkg)
	}

	return &response.AdminDashboardResponse{
		TotalUsers:     totalUsers,
		TotalPackages:  totalPackages,
		TotalBookings:  totalBookings,
		TotalRevenue:   totalRevenue,
		RecentBookings: recentResponses,
	}, nil
}
