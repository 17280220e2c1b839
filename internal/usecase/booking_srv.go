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

// BookingService is the booking lifecycle manager. A booking starts as
// pending with its slots already held on the package; approve keeps the
// hold, cancel and reject give it back. Confirmed and cancelled are
// terminal.
type BookingService interface {
	// User endpoints (require auth)
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.BookingListResponse, error)
	CancelBooking(ctx context.Context, bookingID string, requesterID uuid.UUID) error

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetAllBookings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ApproveBooking(ctx context.Context, bookingID string) error
	RejectBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed package ID %q", ErrValidation, req.PackageID)
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed travel date %q", ErrValidation, req.TravelDate)
	}

	// Same-day travel is allowed, anything earlier is not
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if travelDate.Before(today) {
		return nil, ErrPastTravelDate
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		s.log.Error("Failed to find package", zap.Error(err), zap.String("package_id", req.PackageID))
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	// total_amount is a snapshot; later price changes never touch it
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         utils.GenerateOrderID(),
		UserID:          userID,
		PackageID:       packageID,
		TravelDate:      travelDate,
		Travelers:       req.Travelers,
		TotalAmount:     pkg.Price * float64(req.Travelers),
		Status:          entity.BookingStatusPending,
		SpecialRequests: req.SpecialRequests,
		PaymentStatus:   entity.PaymentStatusUnpaid,
	}

	// Insert + slot decrement commit together or not at all
	if err := s.repo.Booking.CreateWithSlotHold(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrPackageNotFound):
			return nil, ErrPackageNotFound
		case errors.Is(err, repository.ErrInsufficientSlots):
			s.log.Warn("Booking rejected, not enough slots",
				zap.String("package_id", req.PackageID),
				zap.Int("travelers", req.Travelers),
				zap.Int("available_slots", pkg.AvailableSlots),
			)
			return nil, ErrInsufficientSlots
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("package_id", req.PackageID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID.String()),
		zap.Int("travelers", req.Travelers),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, pkg)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.BookingListResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	pending, err := s.repo.Booking.CountByUserIDAndStatus(ctx, userID, entity.BookingStatusPending)
	if err != nil {
		s.log.Error("Failed to count pending bookings", zap.Error(err))
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}

	confirmed, err := s.repo.Booking.CountByUserIDAndStatus(ctx, userID, entity.BookingStatusConfirmed)
	if err != nil {
		s.log.Error("Failed to count confirmed bookings", zap.Error(err))
		return nil, fmt.Errorf("count confirmed bookings: %w", err)
	}

	return &response.BookingListResponse{
		Bookings: s.buildBookingResponses(ctx, bookings),
		Pagination: response.PaginationMeta{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, page.PerPage),
		},
		Stats: response.BookingStats{
			Total:     total,
			Pending:   pending,
			Confirmed: confirmed,
		},
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, requesterID uuid.UUID) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: malformed booking ID %q", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	// Ownership comes from the session, never from the request body
	if booking.UserID != requesterID {
		s.log.Warn("Cancel attempt on foreign booking",
			zap.String("booking_id", bookingID),
			zap.String("requester_id", requesterID.String()),
			zap.String("owner_id", booking.UserID.String()),
		)
		return ErrNotBookingOwner
	}

	if booking.Status != entity.BookingStatusPending {
		return ErrBookingNotPending
	}

	if err := s.releaseBooking(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("slots_restored", booking.Travelers),
	)

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed booking ID %q", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	pkg, _ := s.repo.Package.FindByID(ctx, booking.PackageID)
	resp := response.BookingToResponse(booking, pkg)
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.buildBookingResponses(ctx, bookings), page.Page, page.PerPage, total), nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: malformed booking ID %q", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusPending {
		return ErrBookingNotPending
	}

	// Slots stay as reserved at creation
	if err := s.repo.Booking.MarkConfirmed(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotPending) {
			return ErrBookingNotPending
		}
		s.log.Error("Failed to approve booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("approve booking: %w", err)
	}

	s.log.Info("Booking approved",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
	)

	return nil
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: malformed booking ID %q", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusPending {
		return ErrBookingNotPending
	}

	// Rejection restores slots exactly like an owner cancel
	if err := s.releaseBooking(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking rejected",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("slots_restored", booking.Travelers),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) releaseBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Booking.CancelWithSlotRestore(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, repository.ErrBookingNotPending):
			return ErrBookingNotPending
		}
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}

func (s *bookingService) buildBookingResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		pkg, _ := s.repo.Package.FindByID(ctx, booking.PackageID)
		responses[i] = response.BookingToResponse(booking, pkg)
	}
	return responses
}
