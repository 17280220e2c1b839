package repository

import (
	"context"
	"fmt"
	"strings"

	"travel-portal/internal/data/entity"
	"travel-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PackageFilter holds the optional catalog filters. Zero values impose no
// constraint; all present filters are combined with AND.
type PackageFilter struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Duration string // one of "1-3", "4-7", "8-14", "15+"
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.TourPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TourPackage, error)
	FindAll(ctx context.Context, filter PackageFilter, limit, offset int) ([]*entity.TourPackage, error)
	Count(ctx context.Context, filter PackageFilter) (int64, error)
	Update(ctx context.Context, pkg *entity.TourPackage) error

	// DeleteCascade removes the package and every booking that references it
	// in one transaction. Refused with ErrConfirmedBookingsExist when any of
	// those bookings is confirmed. Returns the number of bookings removed.
	DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error)
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, name, destination, description, duration_in_days, price,
	       image_url, available_slots, category, highlights, includes, excludes,
	       created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.TourPackage, error) {
	var pkg entity.TourPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Destination,
		&pkg.Description,
		&pkg.DurationInDays,
		&pkg.Price,
		&pkg.ImageURL,
		&pkg.AvailableSlots,
		&pkg.Category,
		&pkg.Highlights,
		&pkg.Includes,
		&pkg.Excludes,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// buildFilterClause converts a PackageFilter into a WHERE fragment and its
// arguments. Placeholders start at $1.
func buildFilterClause(filter PackageFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		idx := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR destination ILIKE $%d)", idx, idx))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}

	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	switch filter.Duration {
	case "1-3":
		conditions = append(conditions, "duration_in_days BETWEEN 1 AND 3")
	case "4-7":
		conditions = append(conditions, "duration_in_days BETWEEN 4 AND 7")
	case "8-14":
		conditions = append(conditions, "duration_in_days BETWEEN 8 AND 14")
	case "15+":
		conditions = append(conditions, "duration_in_days >= 15")
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.TourPackage) error {
	query := `
		INSERT INTO tour_packages (id, name, destination, description, duration_in_days,
		                           price, image_url, available_slots, category,
		                           highlights, includes, excludes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Destination,
		pkg.Description,
		pkg.DurationInDays,
		pkg.Price,
		pkg.ImageURL,
		pkg.AvailableSlots,
		pkg.Category,
		pkg.Highlights,
		pkg.Includes,
		pkg.Excludes,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("name", pkg.Name),
		)
		return fmt.Errorf("create package %s: %w", pkg.Name, err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TourPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM tour_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context, filter PackageFilter, limit, offset int) ([]*entity.TourPackage, error) {
	where, args := buildFilterClause(filter)
	query := `SELECT ` + packageColumns + ` FROM tour_packages` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find packages",
			zap.Error(err),
			zap.String("keyword", filter.Keyword),
			zap.String("category", filter.Category),
		)
		return nil, fmt.Errorf("find packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.TourPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate package rows: %w", err)
	}

	return packages, nil
}

func (r *packageRepository) Count(ctx context.Context, filter PackageFilter) (int64, error) {
	where, args := buildFilterClause(filter)
	query := `SELECT COUNT(*) FROM tour_packages` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.TourPackage) error {
	query := `
		UPDATE tour_packages
		SET name = $2, destination = $3, description = $4, duration_in_days = $5,
		    price = $6, image_url = $7, available_slots = $8, category = $9,
		    highlights = $10, includes = $11, excludes = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Destination,
		pkg.Description,
		pkg.DurationInDays,
		pkg.Price,
		pkg.ImageURL,
		pkg.AvailableSlots,
		pkg.Category,
		pkg.Highlights,
		pkg.Includes,
		pkg.Excludes,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s: %w", pkg.ID.String(), ErrPackageNotFound)
	}

	return nil
}

func (r *packageRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin delete transaction", zap.Error(err))
		return 0, fmt.Errorf("begin delete package: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the package row first. Every lifecycle transaction takes this
	// lock before touching bookings, which keeps lock ordering consistent.
	var pkgID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM tour_packages WHERE id = $1 FOR UPDATE`, id).Scan(&pkgID)
	if err == pgx.ErrNoRows {
		return 0, ErrPackageNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock package for delete",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return 0, fmt.Errorf("lock package %s: %w", id.String(), err)
	}

	var confirmed int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE package_id = $1 AND status = 'confirmed'`,
		id,
	).Scan(&confirmed)
	if err != nil {
		r.log.Error("Failed to count confirmed bookings",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return 0, fmt.Errorf("count confirmed bookings for package %s: %w", id.String(), err)
	}

	if confirmed > 0 {
		return 0, fmt.Errorf("package %s has %d confirmed bookings: %w",
			id.String(), confirmed, ErrConfirmedBookingsExist)
	}

	deleted, err := tx.Exec(ctx, `DELETE FROM bookings WHERE package_id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete package bookings",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return 0, fmt.Errorf("delete bookings for package %s: %w", id.String(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tour_packages WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete package",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return 0, fmt.Errorf("delete package %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit package delete", zap.Error(err))
		return 0, fmt.Errorf("commit delete package %s: %w", id.String(), err)
	}

	r.log.Info("Package deleted with bookings",
		zap.String("package_id", id.String()),
		zap.Int64("bookings_removed", deleted.RowsAffected()),
	)

	return deleted.RowsAffected(), nil
}
