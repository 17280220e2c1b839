package usecase

import (
	"context"
	"testing"
	"time"

	"travel-portal/internal/data/entity"
	"travel-portal/internal/data/repository"
	"travel-portal/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testPackage(slots int) *entity.TourPackage {
	return &entity.TourPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:           "Bali Escape",
		Destination:    "Bali",
		Description:    "Five days around the island",
		DurationInDays: 5,
		Price:          250.0,
		AvailableSlots: slots,
		Category:       entity.CategoryBeach,
	}
}

func testBooking(userID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrderID:       "TOUR-20260831-120000-1234",
		UserID:        userID,
		PackageID:     uuid.New(),
		TravelDate:    time.Now().AddDate(0, 1, 0),
		Travelers:     3,
		TotalAmount:   750.0,
		Status:        status,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestCreateBooking_Success(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	pkg := testPackage(10)
	userID := uuid.New()

	packageRepo.On("FindByID", mock.Anything, pkg.ID).Return(pkg, nil)
	bookingRepo.On("CreateWithSlotHold", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.UserID == userID &&
			b.PackageID == pkg.ID &&
			b.Travelers == 3 &&
			b.TotalAmount == 750.0 &&
			b.Status == entity.BookingStatusPending &&
			b.PaymentStatus == entity.PaymentStatusUnpaid &&
			b.OrderID != ""
	})).Return(nil)

	resp, err := service.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		PackageID:  pkg.ID.String(),
		TravelDate: futureDate(),
		Travelers:  3,
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 750.0, resp.TotalAmount)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	bookingRepo.AssertExpectations(t)
}

func TestCreateBooking_SameDayAllowed(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	pkg := testPackage(10)
	packageRepo.On("FindByID", mock.Anything, pkg.ID).Return(pkg, nil)
	bookingRepo.On("CreateWithSlotHold", mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  pkg.ID.String(),
		TravelDate: time.Now().Format("2006-01-02"),
		Travelers:  1,
	})

	assert.NoError(t, err)
}

func TestCreateBooking_PastTravelDate(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  uuid.New().String(),
		TravelDate: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		Travelers:  2,
	})

	assert.ErrorIs(t, err, ErrPastTravelDate)
	packageRepo.AssertNotCalled(t, "FindByID")
	bookingRepo.AssertNotCalled(t, "CreateWithSlotHold")
}

func TestCreateBooking_PackageNotFound(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	packageID := uuid.New()
	packageRepo.On("FindByID", mock.Anything, packageID).Return(nil, nil)

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  packageID.String(),
		TravelDate: futureDate(),
		Travelers:  2,
	})

	assert.ErrorIs(t, err, ErrPackageNotFound)
	bookingRepo.AssertNotCalled(t, "CreateWithSlotHold")
}

func TestCreateBooking_InsufficientSlots(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	pkg := testPackage(2)
	packageRepo.On("FindByID", mock.Anything, pkg.ID).Return(pkg, nil)
	bookingRepo.On("CreateWithSlotHold", mock.Anything, mock.Anything).
		Return(repository.ErrInsufficientSlots)

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  pkg.ID.String(),
		TravelDate: futureDate(),
		Travelers:  5,
	})

	assert.ErrorIs(t, err, ErrInsufficientSlots)
}

func TestCreateBooking_TravelersOutOfRange(t *testing.T) {
	repo, _, _, packageRepo, _ := newMockRepository()
	service := NewBookingService(repo, testLogger())

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  uuid.New().String(),
		TravelDate: futureDate(),
		Travelers:  51,
	})

	assert.ErrorIs(t, err, ErrValidation)
	packageRepo.AssertNotCalled(t, "FindByID")
}

func TestCreateBooking_MalformedPackageID(t *testing.T) {
	repo, _, _, packageRepo, _ := newMockRepository()
	service := NewBookingService(repo, testLogger())

	_, err := service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PackageID:  "not-a-uuid",
		TravelDate: futureDate(),
		Travelers:  2,
	})

	assert.ErrorIs(t, err, ErrValidation)
	packageRepo.AssertNotCalled(t, "FindByID")
}

func TestCancelBooking_Success(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	userID := uuid.New()
	booking := testBooking(userID, entity.BookingStatusPending)

	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookingRepo.On("CancelWithSlotRestore", mock.Anything, booking.ID).Return(nil)

	err := service.CancelBooking(context.Background(), booking.ID.String(), userID)

	assert.NoError(t, err)
	bookingRepo.AssertExpectations(t)
	packageRepo.AssertNotCalled(t, "Update")
}

func TestCancelBooking_NotOwner(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	booking := testBooking(uuid.New(), entity.BookingStatusPending)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := service.CancelBooking(context.Background(), booking.ID.String(), uuid.New())

	assert.ErrorIs(t, err, ErrNotBookingOwner)
	bookingRepo.AssertNotCalled(t, "CancelWithSlotRestore")
}

func TestCancelBooking_NotPending(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	userID := uuid.New()
	booking := testBooking(userID, entity.BookingStatusConfirmed)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := service.CancelBooking(context.Background(), booking.ID.String(), userID)

	assert.ErrorIs(t, err, ErrBookingNotPending)
	bookingRepo.AssertNotCalled(t, "CancelWithSlotRestore")
}

func TestCancelBooking_NotFound(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	bookingID := uuid.New()
	bookingRepo.On("FindByID", mock.Anything, bookingID).Return(nil, nil)

	err := service.CancelBooking(context.Background(), bookingID.String(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApproveBooking_Success(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	booking := testBooking(uuid.New(), entity.BookingStatusPending)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookingRepo.On("MarkConfirmed", mock.Anything, booking.ID).Return(nil)

	err := service.ApproveBooking(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	// Approval keeps the slot hold, nothing touches the package
	bookingRepo.AssertNotCalled(t, "CancelWithSlotRestore")
	bookingRepo.AssertExpectations(t)
}

func TestApproveBooking_AlreadyConfirmed(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	booking := testBooking(uuid.New(), entity.BookingStatusConfirmed)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := service.ApproveBooking(context.Background(), booking.ID.String())

	assert.ErrorIs(t, err, ErrBookingNotPending)
	bookingRepo.AssertNotCalled(t, "MarkConfirmed")
}

func TestApproveBooking_LostRace(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	// Pending at read time, flipped by someone else before the update
	booking := testBooking(uuid.New(), entity.BookingStatusPending)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookingRepo.On("MarkConfirmed", mock.Anything, booking.ID).
		Return(repository.ErrBookingNotPending)

	err := service.ApproveBooking(context.Background(), booking.ID.String())

	assert.ErrorIs(t, err, ErrBookingNotPending)
}

func TestRejectBooking_Success(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	booking := testBooking(uuid.New(), entity.BookingStatusPending)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookingRepo.On("CancelWithSlotRestore", mock.Anything, booking.ID).Return(nil)

	err := service.RejectBooking(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	bookingRepo.AssertExpectations(t)
}

func TestRejectBooking_Cancelled(t *testing.T) {
	repo, _, _, _, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	booking := testBooking(uuid.New(), entity.BookingStatusCancelled)
	bookingRepo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := service.RejectBooking(context.Background(), booking.ID.String())

	assert.ErrorIs(t, err, ErrBookingNotPending)
	bookingRepo.AssertNotCalled(t, "CancelWithSlotRestore")
}

func TestGetUserBookings_Stats(t *testing.T) {
	repo, _, _, packageRepo, bookingRepo := newMockRepository()
	service := NewBookingService(repo, testLogger())

	userID := uuid.New()
	bookings := []*entity.Booking{
		testBooking(userID, entity.BookingStatusPending),
		testBooking(userID, entity.BookingStatusConfirmed),
	}

	bookingRepo.On("FindByUserID", mock.Anything, userID, 10, 0).Return(bookings, nil)
	bookingRepo.On("CountByUserID", mock.Anything, userID).Return(int64(5), nil)
	bookingRepo.On("CountByUserIDAndStatus", mock.Anything, userID, entity.BookingStatusPending).Return(int64(2), nil)
	bookingRepo.On("CountByUserIDAndStatus", mock.Anything, userID, entity.BookingStatusConfirmed).Return(int64(3), nil)
	packageRepo.On("FindByID", mock.Anything, mock.Anything).Return(testPackage(10), nil)

	resp, err := service.GetUserBookings(context.Background(), userID, &request.PaginatedRequest{Page: 1, PerPage: 10})

	assert.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(5), resp.Stats.Total)
	assert.Equal(t, int64(2), resp.Stats.Pending)
	assert.Equal(t, int64(3), resp.Stats.Confirmed)
	assert.Equal(t, int64(5), resp.Pagination.Total)
}
