package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PropertyOccupancy is one row of the occupancy report.
type PropertyOccupancy struct {
	PropertyID   uint   `db:"property_id" json:"property_id"`
	PropertyName string `db:"property_name" json:"property_name"`
	TotalRooms   int    `db:"total_rooms" json:"total_rooms"`
	Available    int    `db:"available" json:"available"`
	Occupied     int    `db:"occupied" json:"occupied"`
	Maintenance  int    `db:"maintenance" json:"maintenance"`
	OpenBookings int    `db:"open_bookings" json:"open_bookings"`
}

// OccupancyMismatch is a room whose status disagrees with its bookings:
// OCCUPIED with no open booking, or an open booking on a room that is not OCCUPIED.
type OccupancyMismatch struct {
	RoomID     uint   `json:"room_id"`
	RoomNumber string `json:"room_number"`
	Status     string `json:"status"`
	BookingID  *uint  `json:"booking_id,omitempty"`
}

type mismatchRow struct {
	RoomID     uint          `db:"room_id"`
	RoomNumber string        `db:"room_number"`
	Status     string        `db:"status"`
	BookingID  sql.NullInt64 `db:"booking_id"`
}

// OccupancyReport runs read-only aggregate queries with sqlx over the same pool gorm uses.
type OccupancyReport struct {
	db *sqlx.DB
}

func NewOccupancyReport(sqlDB *sql.DB) *OccupancyReport {
	return &OccupancyReport{db: sqlx.NewDb(sqlDB, "mysql")}
}

// Summary counts rooms per status and open bookings for each managed property.
func (r *OccupancyReport) Summary(ctx context.Context, propertyIDs []uint) ([]PropertyOccupancy, error) {
	out := []PropertyOccupancy{}
	if len(propertyIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT p.id AS property_id,
		       p.name AS property_name,
		       COUNT(r.id) AS total_rooms,
		       COALESCE(SUM(CASE WHEN r.status = 'AVAILABLE' THEN 1 ELSE 0 END), 0) AS available,
		       COALESCE(SUM(CASE WHEN r.status = 'OCCUPIED' THEN 1 ELSE 0 END), 0) AS occupied,
		       COALESCE(SUM(CASE WHEN r.status = 'MAINTENANCE' THEN 1 ELSE 0 END), 0) AS maintenance,
		       (SELECT COUNT(*) FROM bookings b
		          JOIN rooms br ON br.id = b.room_id
		         WHERE br.property_id = p.id
		           AND b.check_out IS NULL
		           AND b.deleted_at IS NULL) AS open_bookings
		FROM properties p
		LEFT JOIN rooms r ON r.property_id = p.id AND r.deleted_at IS NULL
		WHERE p.id IN (?)
		GROUP BY p.id, p.name
		ORDER BY p.id`, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build occupancy query: %w", err)
	}

	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}
	return out, nil
}

// Audit lists rooms that break the rule "OCCUPIED exactly when an open booking exists".
// A healthy database returns an empty list.
func (r *OccupancyReport) Audit(ctx context.Context, propertyIDs []uint) ([]OccupancyMismatch, error) {
	out := []OccupancyMismatch{}
	if len(propertyIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT r.id AS room_id, r.room_number, r.status, b.id AS booking_id
		FROM rooms r
		LEFT JOIN bookings b
		       ON b.room_id = r.id AND b.check_out IS NULL AND b.deleted_at IS NULL
		WHERE r.deleted_at IS NULL
		  AND r.property_id IN (?)
		  AND ((r.status = 'OCCUPIED' AND b.id IS NULL)
		    OR (r.status <> 'OCCUPIED' AND b.id IS NOT NULL))
		ORDER BY r.room_number`, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build audit query: %w", err)
	}

	var rows []mismatchRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to run occupancy audit: %w", err)
	}
	for _, row := range rows {
		m := OccupancyMismatch{RoomID: row.RoomID, RoomNumber: row.RoomNumber, Status: row.Status}
		if row.BookingID.Valid {
			id := uint(row.BookingID.Int64)
			m.BookingID = &id
		}
		out = append(out, m)
	}
	return out, nil
}
