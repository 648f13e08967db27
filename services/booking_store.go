package services

import (
	"context"

	"lodging-backend/models"
)

// BookingTx is the unit of work a lifecycle operation runs in. Everything done
// through one BookingTx commits together or not at all.
type BookingTx interface {
	RoomRegistry
	ChargeCatalog

	// LockBooking loads a booking and holds its row until commit.
	LockBooking(bookingID uint) (*models.Booking, error)
	// HasOpenBooking reports whether the room has a booking without check-out.
	HasOpenBooking(roomID uint) (bool, error)
	CreateBooking(b *models.Booking) error
	UpdateBooking(b *models.Booking) error
	CreateExtension(ext *models.BookingExtension) error
}

// BookingStore persists bookings. Transaction rolls back when fn returns an error.
type BookingStore interface {
	Transaction(ctx context.Context, fn func(tx BookingTx) error) error

	// FindBooking loads a booking with its room (property, room type), charges
	// and extensions.
	FindBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	ListBookings(ctx context.Context, propertyIDs []uint, openOnly bool) ([]models.Booking, error)
}
