package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildFilterClause_Empty(t *testing.T) {
	clause, args := buildFilterClause(PackageFilter{})

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestBuildFilterClause_Keyword(t *testing.T) {
	clause, args := buildFilterClause(PackageFilter{Keyword: "bali"})

	assert.Equal(t, " WHERE (name ILIKE $1 OR destination ILIKE $1)", clause)
	assert.Equal(t, []any{"%bali%"}, args)
}

func TestBuildFilterClause_Category(t *testing.T) {
	clause, args := buildFilterClause(PackageFilter{Category: "Beach"})

	assert.Equal(t, " WHERE category = $1", clause)
	assert.Equal(t, []any{"Beach"}, args)
}

func TestBuildFilterClause_PriceRange(t *testing.T) {
	min, max := 100.0, 500.0
	clause, args := buildFilterClause(PackageFilter{MinPrice: &min, MaxPrice: &max})

	assert.Equal(t, " WHERE price >= $1 AND price <= $2", clause)
	assert.Equal(t, []any{100.0, 500.0}, args)
}

func TestBuildFilterClause_DurationBuckets(t *testing.T) {
	cases := []struct {
		duration string
		want     string
	}{
		{"1-3", " WHERE duration_in_days BETWEEN 1 AND 3"},
		{"4-7", " WHERE duration_in_days BETWEEN 4 AND 7"},
		{"8-14", " WHERE duration_in_days BETWEEN 8 AND 14"},
		{"15+", " WHERE duration_in_days >= 15"},
	}

	for _, tc := range cases {
		t.Run(tc.duration, func(t *testing.T) {
			clause, args := buildFilterClause(PackageFilter{Duration: tc.duration})

			assert.Equal(t, tc.want, clause)
			assert.Nil(t, args)
		})
	}
}

func TestBuildFilterClause_UnknownDurationIgnored(t *testing.T) {
	clause, args := buildFilterClause(PackageFilter{Duration: "2-5"})

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestBuildFilterClause_Combined(t *testing.T) {
	min := 50.0
	clause, args := buildFilterClause(PackageFilter{
		Keyword:  "trek",
		Category: "Adventure",
		MinPrice: &min,
		Duration: "8-14",
	})

	assert.Equal(t,
		" WHERE (name ILIKE $1 OR destination ILIKE $1) AND category = $2 AND price >= $3 AND duration_in_days BETWEEN 8 AND 14",
		clause)
	assert.Equal(t, []any{"%trek%", "Adventure", 50.0}, args)
}

func TestDeleteCascade_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPackageRepository(mock, zap.NewNop())
	packageID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tour_packages`).
		WithArgs(packageID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(packageID))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(packageID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectExec(`DELETE FROM bookings`).
		WithArgs(packageID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM tour_packages`).
		WithArgs(packageID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	removed, err := repo.DeleteCascade(context.Background(), packageID)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascade_RefusedWhenConfirmedBookingsExist(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPackageRepository(mock, zap.NewNop())
	packageID := uuid.New()

	// Confirmed bookings hold their slots forever; nothing gets deleted.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tour_packages`).
		WithArgs(packageID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(packageID))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(packageID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectRollback()

	removed, err := repo.DeleteCascade(context.Background(), packageID)

	assert.ErrorIs(t, err, ErrConfirmedBookingsExist)
	assert.Zero(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascade_PackageMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPackageRepository(mock, zap.NewNop())
	packageID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tour_packages`).
		WithArgs(packageID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = repo.DeleteCascade(context.Background(), packageID)

	assert.ErrorIs(t, err, ErrPackageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
