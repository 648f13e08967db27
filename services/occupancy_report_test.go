package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyReport_Summary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	report := NewOccupancyReport(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT p.id AS property_id`).
			WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{
				"property_id", "property_name", "total_rooms",
				"available", "occupied", "maintenance", "open_bookings",
			}).
				AddRow(1, "Main Building", 6, 4, 1, 1, 1).
				AddRow(2, "Annex", 2, 2, 0, 0, 0))

		rows, err := report.Summary(context.Background(), []uint{1, 2})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Main Building", rows[0].PropertyName)
		assert.Equal(t, 6, rows[0].TotalRooms)
		assert.Equal(t, 1, rows[0].Occupied)
		assert.Equal(t, 1, rows[0].OpenBookings)
		assert.Equal(t, 2, rows[1].Available)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT p.id AS property_id`).
			WithArgs(1).
			WillReturnError(fmt.Errorf("connection reset"))

		_, err := report.Summary(context.Background(), []uint{1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load occupancy")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Properties", func(t *testing.T) {
		rows, err := report.Summary(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOccupancyReport_Audit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	report := NewOccupancyReport(db)

	mock.ExpectQuery(`SELECT r.id AS room_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_number", "status", "booking_id"}).
			AddRow(3, "201", "OCCUPIED", nil).
			AddRow(5, "301", "AVAILABLE", 42))

	rows, err := report.Audit(context.Background(), []uint{1})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "201", rows[0].RoomNumber)
	assert.Nil(t, rows[0].BookingID)

	require.NotNil(t, rows[1].BookingID)
	assert.Equal(t, uint(42), *rows[1].BookingID)
	assert.Equal(t, "AVAILABLE", rows[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
