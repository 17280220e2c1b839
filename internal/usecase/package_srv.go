package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-portal/internal/data/entity"
	"travel-portal/internal/data/repository"
	"travel-portal/internal/dto/request"
	"travel-portal/internal/dto/response"
	"travel-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PackageService interface {
	// Public endpoints
	ListPackages(ctx context.Context, search *request.PackageSearchRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	GetPackage(ctx context.Context, packageID string) (*response.PackageResponse, error)

	// Admin endpoints
	CreatePackage(ctx context.Context, req *request.PackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, packageID string, req *request.PackageRequest) (*response.PackageResponse, error)
	DeletePackage(ctx context.Context, packageID string) (*response.PackageDeleteResponse, error)
}

type packageService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPackageService(repo *repository.Repository, log *zap.Logger) PackageService {
	return &packageService{
		repo: repo,
		log:  log.With(zap.String("service", "package")),
	}
}

func (s *packageService) ListPackages(ctx context.Context, search *request.PackageSearchRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	// Validate filters
	if errs := utils.ValidateStruct(search); len(errs) > 0 {
		s.log.Warn("Package search validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	filter := repository.PackageFilter{
		Keyword:  search.Keyword,
		Category: search.Category,
		MinPrice: search.MinPrice,
		MaxPrice: search.MaxPrice,
		Duration: search.Duration,
	}

	packages, err := s.repo.Package.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}

	total, err := s.repo.Package.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count packages", zap.Error(err))
		return nil, fmt.Errorf("count packages: %w", err)
	}

	packageResponses := make([]response.PackageResponse, len(packages))
	for i, pkg := range packages {
		packageResponses[i] = response.PackageToResponse(pkg)
	}

	s.log.Info("Packages listed",
		zap.Int("count", len(packages)),
		zap.Int64("total", total),
		zap.String("keyword", search.Keyword),
	)

	return response.NewPaginatedResponse(packageResponses, page.Page, page.PerPage, total), nil
}

func (s *packageService) GetPackage(ctx context.Context, packageID string) (*response.PackageResponse, error) {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed package ID %q", ErrValidation, packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("get package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *packageService) CreatePackage(ctx context.Context, req *request.PackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create package validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	pkg := &entity.TourPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Destination:    req.Destination,
		Description:    req.Description,
		DurationInDays: req.DurationInDays,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		AvailableSlots: req.AvailableSlots,
		Category:       entity.PackageCategory(req.Category),
		Highlights:     req.Highlights,
		Includes:       req.Includes,
		Excludes:       req.Excludes,
	}

	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		s.log.Error("Failed to create package", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create package: %w", err)
	}

	s.log.Info("Package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("name", pkg.Name),
		zap.Int("available_slots", pkg.AvailableSlots),
	)

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, packageID string, req *request.PackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update package validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed package ID %q", ErrValidation, packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	pkg.Name = req.Name
	pkg.Destination = req.Destination
	pkg.Description = req.Description
	pkg.DurationInDays = req.DurationInDays
	pkg.Price = req.Price
	pkg.ImageURL = req.ImageURL
	pkg.AvailableSlots = req.AvailableSlots
	pkg.Category = entity.PackageCategory(req.Category)
	pkg.Highlights = req.Highlights
	pkg.Includes = req.Includes
	pkg.Excludes = req.Excludes
	pkg.UpdatedAt = time.Now()

	if err := s.repo.Package.Update(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		s.log.Error("Failed to update package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("update package: %w", err)
	}

	s.log.Info("Package updated", zap.String("package_id", packageID))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) DeletePackage(ctx context.Context, packageID string) (*response.PackageDeleteResponse, error) {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed package ID %q", ErrValidation, packageID)
	}

	// Destructive: removes the package and all of its pending/cancelled
	// bookings. Refused while confirmed bookings exist.
	removed, err := s.repo.Package.DeleteCascade(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPackageNotFound):
			return nil, ErrPackageNotFound
		case errors.Is(err, repository.ErrConfirmedBookingsExist):
			s.log.Warn("Delete blocked by confirmed bookings", zap.String("package_id", packageID))
			return nil, ErrPackageHasBookings
		}
		s.log.Error("Failed to delete package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("delete package: %w", err)
	}

	s.log.Info("Package deleted",
		zap.String("package_id", packageID),
		zap.Int64("bookings_removed", removed),
	)

	return &response.PackageDeleteResponse{
		PackageID:       packageID,
		BookingsRemoved: removed,
	}, nil
}
