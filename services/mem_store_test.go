package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"lodging-backend/models"
)

// memStore is an in-memory BookingStore. Transactions are serialized and roll
// back to a snapshot on error.
type memStore struct {
	mu sync.Mutex

	properties map[uint]models.Property
	roomTypes  map[uint]models.RoomType
	rooms      map[uint]models.Room
	items      map[uint]models.ChargeableItem
	bookings   map[uint]models.Booking
	charges    []models.BookingCharge
	extensions []models.BookingExtension
	nextID     uint

	// failSetRoomStatus makes every SetRoomStatus fail, to exercise rollback.
	failSetRoomStatus error
}

func newMemStore() *memStore {
	return &memStore{
		properties: map[uint]models.Property{},
		roomTypes:  map[uint]models.RoomType{},
		rooms:      map[uint]models.Room{},
		items:      map[uint]models.ChargeableItem{},
		bookings:   map[uint]models.Booking{},
		nextID:     1000,
	}
}

type memSnapshot struct {
	rooms      map[uint]models.Room
	bookings   map[uint]models.Booking
	charges    []models.BookingCharge
	extensions []models.BookingExtension
	nextID     uint
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		rooms:      make(map[uint]models.Room, len(s.rooms)),
		bookings:   make(map[uint]models.Booking, len(s.bookings)),
		charges:    append([]models.BookingCharge(nil), s.charges...),
		extensions: append([]models.BookingExtension(nil), s.extensions...),
		nextID:     s.nextID,
	}
	for k, v := range s.rooms {
		snap.rooms[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.rooms = snap.rooms
	s.bookings = snap.bookings
	s.charges = snap.charges
	s.extensions = snap.extensions
	s.nextID = snap.nextID
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx BookingTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) FindBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, notFound("booking_not_found", "booking %d not found", bookingID)
	}
	room := s.hydrateRoom(s.rooms[b.RoomID])
	b.Room = *room
	b.Charges = []models.BookingCharge{}
	for _, c := range s.charges {
		if c.BookingID == b.ID {
			b.Charges = append(b.Charges, c)
		}
	}
	b.Extensions = []models.BookingExtension{}
	for _, e := range s.extensions {
		if e.BookingID == b.ID {
			b.Extensions = append(b.Extensions, e)
		}
	}
	return &b, nil
}

func (s *memStore) ListBookings(ctx context.Context, propertyIDs []uint, openOnly bool) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := Caller{PropertyIDs: propertyIDs}
	out := []models.Booking{}
	for _, b := range s.bookings {
		room := s.rooms[b.RoomID]
		if !caller.Manages(room.PropertyID) {
			continue
		}
		if openOnly && !b.IsOpen() {
			continue
		}
		b.Room = room
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) hydrateRoom(room models.Room) *models.Room {
	room.Property = s.properties[room.PropertyID]
	room.RoomType = nil
	if room.RoomTypeID != nil {
		if rt, ok := s.roomTypes[*room.RoomTypeID]; ok {
			room.RoomType = &rt
		}
	}
	return &room
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// openBookingsFor counts open bookings of a room. Callers hold mu.
func (s *memStore) openBookingsFor(roomID uint) int {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID && b.IsOpen() {
			n++
		}
	}
	return n
}

type memTx struct {
	s *memStore
}

func (t *memTx) LockRoom(roomID uint) (*models.Room, error) {
	room, ok := t.s.rooms[roomID]
	if !ok {
		return nil, notFound("room_not_found", "room %d not found", roomID)
	}
	return t.s.hydrateRoom(room), nil
}

func (t *memTx) SetRoomStatus(roomID uint, from, to models.RoomStatus) error {
	if t.s.failSetRoomStatus != nil {
		return t.s.failSetRoomStatus
	}
	room, ok := t.s.rooms[roomID]
	if !ok || room.Status != from {
		return conflict("room_status_changed", "room %d is no longer %s", roomID, from)
	}
	room.Status = to
	t.s.rooms[roomID] = room
	return nil
}

func (t *memTx) LockBooking(bookingID uint) (*models.Booking, error) {
	b, ok := t.s.bookings[bookingID]
	if !ok {
		return nil, notFound("booking_not_found", "booking %d not found", bookingID)
	}
	return &b, nil
}

func (t *memTx) HasOpenBooking(roomID uint) (bool, error) {
	return t.s.openBookingsFor(roomID) > 0, nil
}

func (t *memTx) CreateBooking(b *models.Booking) error {
	if b.OpenRoomID != nil {
		for _, other := range t.s.bookings {
			if other.OpenRoomID != nil && *other.OpenRoomID == *b.OpenRoomID {
				return conflict("room_occupied", "room %d already has an open booking", b.RoomID)
			}
		}
	}
	b.ID = t.s.id()
	stored := *b
	stored.Room = models.Room{}
	t.s.bookings[b.ID] = stored
	return nil
}

func (t *memTx) UpdateBooking(b *models.Booking) error {
	if _, ok := t.s.bookings[b.ID]; !ok {
		return errors.New("update of unknown booking")
	}
	stored := *b
	stored.Room = models.Room{}
	t.s.bookings[b.ID] = stored
	return nil
}

func (t *memTx) CreateExtension(ext *models.BookingExtension) error {
	ext.ID = t.s.id()
	t.s.extensions = append(t.s.extensions, *ext)
	return nil
}

func (t *memTx) FindChargeableItems(ids []uint) (map[uint]models.ChargeableItem, error) {
	out := map[uint]models.ChargeableItem{}
	for _, id := range ids {
		if it, ok := t.s.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (t *memTx) CreateCharges(charges []models.BookingCharge) error {
	for i := range charges {
		charges[i].ID = t.s.id()
		t.s.charges = append(t.s.charges, charges[i])
	}
	return nil
}
