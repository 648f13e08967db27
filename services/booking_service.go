// services/booking_service.go
package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"lodging-backend/billing"
	"lodging-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// BookingService owns the booking lifecycle: check-in, extension and checkout.
// It is the only code that changes a room's status.
type BookingService struct {
	Store      BookingStore
	Ledger     ChargeLedger
	HourlyFine int64
	Log        logrus.FieldLogger

	now func() time.Time
}

// NewBookingService returns a lifecycle manager billing overstays at hourlyFine.
func NewBookingService(store BookingStore, hourlyFine int64, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		Store:      store,
		HourlyFine: hourlyFine,
		Log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the wall clock. Every operation samples it once.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// AccompanyingGuest is an extra occupant recorded at check-in.
type AccompanyingGuest struct {
	FullName string `json:"full_name"`
	Type     string `json:"type"`
}

// CheckInRequest opens a stay on an available room.
type CheckInRequest struct {
	RoomID             uint                `json:"room_id"`
	GuestName          string              `json:"guest_name"`
	GuestPhone         string              `json:"guest_phone"`
	GuestEmail         string              `json:"guest_email"`
	GuestIDNumber      string              `json:"guest_id_number"`
	Adults             int                 `json:"adults"`
	Children           int                 `json:"children"`
	AccompanyingGuests []AccompanyingGuest `json:"accompanying_guests"`
	BookingType        string              `json:"booking_type"`
	Duration           int                 `json:"duration"`
	HalfDayAddon       bool                `json:"half_day_addon"`
	AmountPaid         int64               `json:"amount_paid"`
	PaymentMethod      string              `json:"payment_method"`
}

// ExtendRequest adds another package to an open stay.
type ExtendRequest struct {
	BookingType       string `json:"booking_type"`
	Duration          int    `json:"duration"`
	HalfDayAddon      bool   `json:"half_day_addon"`
	AdditionalPayment int64  `json:"additional_payment"`
	PaymentMethod     string `json:"payment_method"`
}

// CheckoutRequest carries the damage/loss lines found at checkout.
type CheckoutRequest struct {
	Charges       []ChargeLine `json:"charges"`
	PaymentMethod string       `json:"payment_method"`
}

// ExtendResult is the updated booking and the extension just recorded.
type ExtendResult struct {
	Booking   *models.Booking          `json:"booking"`
	Extension *models.BookingExtension `json:"extension"`
}

// CheckoutResult is the closed booking with its final bill and settlement.
// SkippedCharges lists lines that were submitted but not billed.
type CheckoutResult struct {
	Booking        *models.Booking        `json:"booking"`
	Bill           billing.Bill           `json:"bill"`
	Charges        []models.BookingCharge `json:"charges"`
	SkippedCharges []SkippedCharge        `json:"skipped_charges"`
	Settlement     billing.Settlement     `json:"settlement"`
}

// CheckoutPreview is what checkout would bill if it ran now. Nothing is written.
type CheckoutPreview struct {
	BookingID     uint         `json:"booking_id"`
	Bill          billing.Bill `json:"bill"`
	ItemChargeFee int64        `json:"item_charge_fee"`
	AmountPaid    int64        `json:"amount_paid"`
	BalanceDue    int64        `json:"balance_due"`
}

// ---------------------------
// Check-in
// ---------------------------

func (s *BookingService) CheckIn(ctx context.Context, caller Caller, req CheckInRequest) (*models.Booking, error) {
	bt, err := validateCheckIn(&req)
	if err != nil {
		return nil, err
	}
	guests, err := encodeGuests(req.AccompanyingGuests)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var booking *models.Booking

	err = s.Store.Transaction(ctx, func(tx BookingTx) error {
		room, err := tx.LockRoom(req.RoomID)
		if err != nil {
			return err
		}
		if !caller.Manages(room.PropertyID) {
			return forbidden("property_forbidden", "room %s belongs to a property you do not manage", room.RoomNumber)
		}
		if err := ensureRoomAvailable(room); err != nil {
			return err
		}
		open, err := tx.HasOpenBooking(room.ID)
		if err != nil {
			return err
		}
		if open {
			return conflict("room_occupied", "room %s already has an open booking", room.RoomNumber)
		}

		tariff, err := tariffFor(room, s.HourlyFine)
		if err != nil {
			return err
		}
		pkg, err := billing.PackageFee(bt, req.Duration, req.HalfDayAddon, tariff)
		if err != nil {
			return invalidInput("invalid_package", "%v", err)
		}

		roomID := room.ID
		b := &models.Booking{
			ReferenceCode:      newReferenceCode(),
			RoomID:             room.ID,
			OpenRoomID:         &roomID,
			GuestName:          req.GuestName,
			GuestPhone:         req.GuestPhone,
			GuestEmail:         req.GuestEmail,
			GuestIDNumber:      req.GuestIDNumber,
			Adults:             req.Adults,
			Children:           req.Children,
			AccompanyingGuests: guests,
			BookingType:        pkg.Type,
			Duration:           pkg.Duration,
			HalfDayAddon:       pkg.HalfDayAddon,
			CheckIn:            now,
			ExpectedCheckOut:   now.Add(time.Duration(pkg.Hours) * time.Hour),
			BaseFee:            pkg.Fee,
			AmountPaid:         req.AmountPaid,
			TotalFee:           pkg.Fee,
			PaymentStatus:      billing.PaymentStatusFor(req.AmountPaid, pkg.Fee, tariff.Free),
			PaymentMethod:      req.PaymentMethod,
			CheckedInBy:        caller.AdminID,
		}
		if err := tx.CreateBooking(b); err != nil {
			return err
		}
		if err := tx.SetRoomStatus(room.ID, models.RoomAvailable, models.RoomOccupied); err != nil {
			return err
		}

		b.Room = *room
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reference":  booking.ReferenceCode,
		"room_id":    booking.RoomID,
		"base_fee":   booking.BaseFee,
		"admin":      caller.Username,
	}).Info("✅ guest checked in")
	return booking, nil
}

func validateCheckIn(req *CheckInRequest) (billing.BookingType, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.GuestIDNumber = strings.TrimSpace(req.GuestIDNumber)
	req.GuestPhone = strings.TrimSpace(req.GuestPhone)
	req.GuestEmail = strings.TrimSpace(req.GuestEmail)
	req.PaymentMethod = normalizePaymentMethod(req.PaymentMethod)

	if req.RoomID == 0 {
		return "", invalidInput("room_id_required", "room_id is required")
	}
	if req.GuestName == "" {
		return "", invalidInput("guest_name_required", "guest_name is required")
	}
	if req.GuestIDNumber == "" {
		return "", invalidInput("guest_id_number_required", "guest_id_number is required")
	}
	if req.AmountPaid < 0 {
		return "", invalidInput("invalid_amount", "amount_paid cannot be negative")
	}
	if req.Adults <= 0 {
		req.Adults = 1
	}
	if req.Children < 0 {
		req.Children = 0
	}
	return parsePackage(req.BookingType, req.Duration, req.HalfDayAddon)
}

// parsePackage checks a package selection without pricing it.
func parsePackage(rawType string, duration int, addon bool) (billing.BookingType, error) {
	bt, err := billing.ParseBookingType(rawType)
	if err != nil {
		return "", invalidInput("invalid_booking_type", "booking_type must be HALF_DAY or FULL_DAY")
	}
	if _, err := billing.PackageFee(bt, duration, addon, billing.Tariff{}); err != nil {
		return "", invalidInput("invalid_duration", "duration %d is not valid for %s", duration, bt)
	}
	return bt, nil
}

func ensureRoomAvailable(room *models.Room) error {
	switch room.Status {
	case models.RoomAvailable:
		return nil
	case models.RoomMaintenance:
		return conflict("room_under_maintenance", "room %s is under maintenance", room.RoomNumber)
	default:
		return conflict("room_occupied", "room %s is occupied", room.RoomNumber)
	}
}

func encodeGuests(in []AccompanyingGuest) (datatypes.JSON, error) {
	out := make([]AccompanyingGuest, 0, len(in))
	for _, g := range in {
		name := strings.TrimSpace(g.FullName)
		if name == "" {
			continue
		}
		typ := strings.TrimSpace(g.Type)
		if typ == "" {
			typ = "Adult"
		}
		out = append(out, AccompanyingGuest{FullName: name, Type: typ})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, invalidInput("invalid_guests", "accompanying_guests: %v", err)
	}
	return datatypes.JSON(raw), nil
}

func normalizePaymentMethod(raw string) string {
	m := strings.ToUpper(strings.TrimSpace(raw))
	if m == "" {
		return "CASH"
	}
	return m
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ---------------------------
// Extension
// ---------------------------

func (s *BookingService) Extend(ctx context.Context, caller Caller, bookingID uint, req ExtendRequest) (*ExtendResult, error) {
	bt, err := parsePackage(req.BookingType, req.Duration, req.HalfDayAddon)
	if err != nil {
		return nil, err
	}
	if req.AdditionalPayment < 0 {
		return nil, invalidInput("invalid_amount", "additional_payment cannot be negative")
	}

	now := s.now()
	var result *ExtendResult

	err = s.Store.Transaction(ctx, func(tx BookingTx) error {
		b, err := tx.LockBooking(bookingID)
		if err != nil {
			return err
		}
		room, err := tx.LockRoom(b.RoomID)
		if err != nil {
			return err
		}
		if !caller.Manages(room.PropertyID) {
			return forbidden("property_forbidden", "booking %d belongs to a property you do not manage", b.ID)
		}
		if !b.IsOpen() {
			return conflict("booking_closed", "booking %d is already checked out", b.ID)
		}

		tariff, err := tariffFor(room, s.HourlyFine)
		if err != nil {
			return err
		}
		pkg, err := billing.PackageFee(bt, req.Duration, req.HalfDayAddon, tariff)
		if err != nil {
			return invalidInput("invalid_package", "%v", err)
		}

		ext := &models.BookingExtension{
			BookingID:                b.ID,
			BookingType:              pkg.Type,
			Duration:                 pkg.Duration,
			HalfDayAddon:             pkg.HalfDayAddon,
			AddedHours:               pkg.Hours,
			AddedFee:                 pkg.Fee,
			AddedPayment:             req.AdditionalPayment,
			PreviousExpectedCheckOut: b.ExpectedCheckOut,
			NewExpectedCheckOut:      b.ExpectedCheckOut.Add(time.Duration(pkg.Hours) * time.Hour),
			ExtendedBy:               caller.AdminID,
			CreatedAt:                now,
		}

		b.ExpectedCheckOut = ext.NewExpectedCheckOut
		b.BaseFee += pkg.Fee
		b.TotalFee = b.BaseFee + b.ItemChargeFee
		b.AmountPaid += req.AdditionalPayment
		b.PaymentStatus = billing.PaymentStatusFor(b.AmountPaid, b.BaseFee, tariff.Free)
		if req.PaymentMethod != "" {
			b.PaymentMethod = normalizePaymentMethod(req.PaymentMethod)
		}

		if err := tx.UpdateBooking(b); err != nil {
			return err
		}
		if err := tx.CreateExtension(ext); err != nil {
			return err
		}

		b.Room = *room
		result = &ExtendResult{Booking: b, Extension: ext}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id":         bookingID,
		"added_fee":          result.Extension.AddedFee,
		"expected_check_out": result.Booking.ExpectedCheckOut,
		"admin":              caller.Username,
	}).Info("⏩ booking extended")
	return result, nil
}

// ---------------------------
// Checkout
// ---------------------------

// checkoutRun carries one checkout through its steps.
type checkoutRun struct {
	tx      BookingTx
	caller  Caller
	req     CheckoutRequest
	now     time.Time
	booking *models.Booking
	room    *models.Room
	tariff  billing.Tariff
	result  CheckoutResult
}

// Checkout re-prices the actual stay, attaches damage charges, settles payment,
// closes the booking and frees the room, all in one transaction.
func (s *BookingService) Checkout(ctx context.Context, caller Caller, bookingID uint, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateChargeLines(req.Charges); err != nil {
		return nil, err
	}

	now := s.now()
	var result CheckoutResult

	err := s.Store.Transaction(ctx, func(tx BookingTx) error {
		b, err := tx.LockBooking(bookingID)
		if err != nil {
			return err
		}
		room, err := tx.LockRoom(b.RoomID)
		if err != nil {
			return err
		}
		if !caller.Manages(room.PropertyID) {
			return forbidden("property_forbidden", "booking %d belongs to a property you do not manage", b.ID)
		}
		if !b.IsOpen() {
			return conflict("booking_closed", "booking %d is already checked out", b.ID)
		}
		tariff, err := tariffFor(room, s.HourlyFine)
		if err != nil {
			return err
		}

		run := &checkoutRun{tx: tx, caller: caller, req: req, now: now, booking: b, room: room, tariff: tariff}
		steps := []func(*checkoutRun) error{
			s.repriceStay,
			s.attachCharges,
			totalUp,
			settlePayment,
			closeBooking,
			releaseRoom,
		}
		for _, step := range steps {
			if err := step(run); err != nil {
				return err
			}
		}

		b.Room = *room
		run.result.Booking = b
		result = run.result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id":        bookingID,
		"base_fee":          result.Booking.BaseFee,
		"item_charge_fee":   result.Booking.ItemChargeFee,
		"total_fee":         result.Booking.TotalFee,
		"collected_at_desk": result.Settlement.CollectedAtDesk,
		"admin":             caller.Username,
	}).Info("🏁 guest checked out")
	return &result, nil
}

func (s *BookingService) repriceStay(run *checkoutRun) error {
	bill := billing.ComputeBill(run.booking.CheckIn, run.now, run.tariff)
	if bill.Invalid {
		s.Log.WithFields(logrus.Fields{
			"booking_id": run.booking.ID,
			"check_in":   run.booking.CheckIn,
			"now":        run.now,
		}).Warn("⚠️ checkout time is before check-in; stay billed as zero")
	}
	run.result.Bill = bill
	run.booking.BaseFee = bill.Amount
	run.booking.DurationDescription = bill.DurationDescription
	run.booking.BillingNote = bill.Note
	return nil
}

func (s *BookingService) attachCharges(run *checkoutRun) error {
	ledger, err := s.Ledger.Attach(run.tx, run.booking.ID, run.req.Charges, run.now)
	if err != nil {
		return err
	}
	for _, sk := range ledger.Skipped {
		s.Log.WithFields(logrus.Fields{
			"booking_id":         run.booking.ID,
			"line":               sk.Line,
			"chargeable_item_id": sk.ChargeableItemID,
		}).Warn("⚠️ charge line skipped: " + sk.Reason)
	}
	run.booking.ItemChargeFee = ledger.Total
	run.result.Charges = ledger.Charges
	run.result.SkippedCharges = ledger.Skipped
	return nil
}

func totalUp(run *checkoutRun) error {
	run.booking.TotalFee = run.booking.BaseFee + run.booking.ItemChargeFee
	return nil
}

func settlePayment(run *checkoutRun) error {
	st := billing.SettleAtCheckout(run.booking.AmountPaid, run.booking.TotalFee)
	run.booking.AmountPaid = st.AmountPaid
	run.booking.PaymentStatus = st.Status
	if run.req.PaymentMethod != "" {
		run.booking.PaymentMethod = normalizePaymentMethod(run.req.PaymentMethod)
	}
	run.result.Settlement = st
	return nil
}

func closeBooking(run *checkoutRun) error {
	checkOut := run.now
	adminID := run.caller.AdminID
	run.booking.CheckOut = &checkOut
	run.booking.CheckedOutBy = &adminID
	run.booking.OpenRoomID = nil
	return run.tx.UpdateBooking(run.booking)
}

func releaseRoom(run *checkoutRun) error {
	if err := run.tx.SetRoomStatus(run.room.ID, models.RoomOccupied, models.RoomAvailable); err != nil {
		return err
	}
	run.room.Status = models.RoomAvailable
	return nil
}

// PreviewCheckout bills the stay as of now without closing anything.
func (s *BookingService) PreviewCheckout(ctx context.Context, caller Caller, bookingID uint) (*CheckoutPreview, error) {
	b, err := s.Store.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.Manages(b.Room.PropertyID) {
		return nil, forbidden("property_forbidden", "booking %d belongs to a property you do not manage", b.ID)
	}
	if !b.IsOpen() {
		return nil, conflict("booking_closed", "booking %d is already checked out", b.ID)
	}
	tariff, err := tariffFor(&b.Room, s.HourlyFine)
	if err != nil {
		return nil, err
	}

	bill := billing.ComputeBill(b.CheckIn, s.now(), tariff)
	total := bill.Amount + b.ItemChargeFee
	due := total - b.AmountPaid
	if due < 0 {
		due = 0
	}
	return &CheckoutPreview{
		BookingID:     b.ID,
		Bill:          bill,
		ItemChargeFee: b.ItemChargeFee,
		AmountPaid:    b.AmountPaid,
		BalanceDue:    due,
	}, nil
}

// ---------------------------
// Reads and room maintenance
// ---------------------------

func (s *BookingService) GetBooking(ctx context.Context, caller Caller, bookingID uint) (*models.Booking, error) {
	b, err := s.Store.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.Manages(b.Room.PropertyID) {
		return nil, forbidden("property_forbidden", "booking %d belongs to a property you do not manage", b.ID)
	}
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, caller Caller, openOnly bool) ([]models.Booking, error) {
	return s.Store.ListBookings(ctx, caller.PropertyIDs, openOnly)
}

// SetMaintenance takes an available room out of service or puts it back.
// Occupied rooms cannot be touched.
func (s *BookingService) SetMaintenance(ctx context.Context, caller Caller, roomID uint, on bool) (*models.Room, error) {
	var out *models.Room
	err := s.Store.Transaction(ctx, func(tx BookingTx) error {
		room, err := tx.LockRoom(roomID)
		if err != nil {
			return err
		}
		if !caller.Manages(room.PropertyID) {
			return forbidden("property_forbidden", "room %s belongs to a property you do not manage", room.RoomNumber)
		}

		from, to := models.RoomAvailable, models.RoomMaintenance
		if !on {
			from, to = models.RoomMaintenance, models.RoomAvailable
		}
		if room.Status == to {
			out = room
			return nil
		}
		if room.Status != from {
			return conflict("room_occupied", "room %s is %s", room.RoomNumber, room.Status)
		}
		if err := tx.SetRoomStatus(room.ID, from, to); err != nil {
			return err
		}
		room.Status = to
		out = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{"room_id": roomID, "status": out.Status, "admin": caller.Username}).
		Info("🛠️ room status changed")
	return out, nil
}
