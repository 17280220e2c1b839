package repository

import (
	"context"
	"fmt"

	"travel-portal/internal/data/entity"
	"travel-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByUserIDAndStatus(ctx context.Context, userID uuid.UUID, status entity.BookingStatus) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	SumTotalAmount(ctx context.Context) (float64, error)

	// Lifecycle mutations. Each one is a single transactional unit so a
	// booking row and its package's available_slots can never diverge.

	// CreateWithSlotHold inserts the booking as pending and decrements the
	// package's available_slots by the traveler count, failing with
	// ErrInsufficientSlots when the package cannot cover the request.
	CreateWithSlotHold(ctx context.Context, booking *entity.Booking) error

	// MarkConfirmed flips a pending booking to confirmed. Slots stay as
	// they were reserved at creation; the package row lock keeps the flip
	// ordered against a concurrent cascade delete.
	MarkConfirmed(ctx context.Context, id uuid.UUID) error

	// CancelWithSlotRestore flips a pending booking to cancelled and gives
	// its reserved slots back to the package.
	CancelWithSlotRestore(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, user_id, package_id, travel_date, number_of_travelers,
	       total_amount, status, special_requests, payment_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.UserID,
		&booking.PackageID,
		&booking.TravelDate,
		&booking.Travelers,
		&booking.TotalAmount,
		&booking.Status,
		&booking.SpecialRequests,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func collectBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountByUserIDAndStatus(ctx context.Context, userID uuid.UUID, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status = $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, status).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by status",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count bookings by status %s: %w", string(status), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) SumTotalAmount(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM bookings`

	var total float64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to sum booking amounts", zap.Error(err))
		return 0, fmt.Errorf("sum booking amounts: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) CreateWithSlotHold(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock serializes concurrent bookings against the same package, so
	// the availability check and the decrement are one atomic step.
	var available int
	err = tx.QueryRow(ctx,
		`SELECT available_slots FROM tour_packages WHERE id = $1 FOR UPDATE`,
		booking.PackageID,
	).Scan(&available)
	if err == pgx.ErrNoRows {
		return ErrPackageNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock package for booking",
			zap.Error(err),
			zap.String("package_id", booking.PackageID.String()),
		)
		return fmt.Errorf("lock package %s: %w", booking.PackageID.String(), err)
	}

	if available < booking.Travelers {
		return fmt.Errorf("package %s has %d slots, %d requested: %w",
			booking.PackageID.String(), available, booking.Travelers, ErrInsufficientSlots)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, order_id, user_id, package_id, travel_date,
		                      number_of_travelers, total_amount, status,
		                      special_requests, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		booking.ID,
		booking.OrderID,
		booking.UserID,
		booking.PackageID,
		booking.TravelDate,
		booking.Travelers,
		booking.TotalAmount,
		booking.Status,
		booking.SpecialRequests,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
		)
		return fmt.Errorf("insert booking %s: %w", booking.OrderID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE tour_packages SET available_slots = available_slots - $2, updated_at = NOW() WHERE id = $1`,
		booking.PackageID, booking.Travelers,
	)
	if err != nil {
		r.log.Error("Failed to decrement package slots",
			zap.Error(err),
			zap.String("package_id", booking.PackageID.String()),
		)
		return fmt.Errorf("decrement slots for package %s: %w", booking.PackageID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err))
		return fmt.Errorf("commit booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin confirm transaction", zap.Error(err))
		return fmt.Errorf("begin confirm booking: %w", err)
	}
	defer tx.Rollback(ctx)

	var packageID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT package_id FROM bookings WHERE id = $1`,
		id,
	).Scan(&packageID)
	if err == pgx.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to read booking for confirm",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("read booking %s: %w", id.String(), err)
	}

	// Package row first, same lock order as the other lifecycle
	// transactions. A cascade delete holding this lock finishes before the
	// conditional update below can see the booking.
	_, err = tx.Exec(ctx, `SELECT id FROM tour_packages WHERE id = $1 FOR UPDATE`, packageID)
	if err != nil {
		r.log.Error("Failed to lock package for confirm",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return fmt.Errorf("lock package %s: %w", packageID.String(), err)
	}

	// Conditional update doubles as the pending-state check; no slot change.
	result, err := tx.Exec(ctx,
		`UPDATE bookings SET status = 'confirmed', updated_at = NOW() WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("confirm booking %s: %w", id.String(), ErrBookingNotPending)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit confirm", zap.Error(err))
		return fmt.Errorf("commit confirm booking %s: %w", id.String(), err)
	}

	return nil
}

func (r *bookingRepository) CancelWithSlotRestore(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin cancel transaction", zap.Error(err))
		return fmt.Errorf("begin cancel booking: %w", err)
	}
	defer tx.Rollback(ctx)

	var packageID uuid.UUID
	var travelers int
	err = tx.QueryRow(ctx,
		`SELECT package_id, number_of_travelers FROM bookings WHERE id = $1`,
		id,
	).Scan(&packageID, &travelers)
	if err == pgx.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to read booking for cancel",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("read booking %s: %w", id.String(), err)
	}

	// Package row first, same lock order as create and cascade delete.
	_, err = tx.Exec(ctx, `SELECT id FROM tour_packages WHERE id = $1 FOR UPDATE`, packageID)
	if err != nil {
		r.log.Error("Failed to lock package for cancel",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return fmt.Errorf("lock package %s: %w", packageID.String(), err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	// Zero rows means the booking left pending after the read above; the
	// slots for a confirmed or already-cancelled booking must not move.
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cancel booking %s: %w", id.String(), ErrBookingNotPending)
	}

	_, err = tx.Exec(ctx,
		`UPDATE tour_packages SET available_slots = available_slots + $2, updated_at = NOW() WHERE id = $1`,
		packageID, travelers,
	)
	if err != nil {
		r.log.Error("Failed to restore package slots",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return fmt.Errorf("restore slots for package %s: %w", packageID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit cancel", zap.Error(err))
		return fmt.Errorf("commit cancel booking %s: %w", id.String(), err)
	}

	return nil
}
