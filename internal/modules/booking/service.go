package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	loyalty  LoyaltyAwarder
	events   EventSender
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the lifecycle engine. loyalty and events may be nil.
func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	loyalty LoyaltyAwarder,
	events EventSender,
	opts ...Option,
) *Service {
	s := &Service{
		bookings: bookings,
		rooms:    rooms,
		loyalty:  loyalty,
		events:   events,
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAvailability reports whether no confirmed or checked-in booking of
// roomID intersects [checkIn, checkOut). It does not write.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, ErrInvalidDateRange
	}
	cnt, err := s.bookings.CountOverlapping(ctx, roomID, checkIn.UTC(), checkOut.UTC(), 0)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// RoomAvailability is CheckAvailability plus the room and a price quote.
func (s *Service) RoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	available := false
	if room.IsActive {
		available, err = s.CheckAvailability(ctx, roomID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
	}

	return &AvailabilityResult{
		Available: available,
		Room:      room,
		CheckIn:   checkIn.UTC(),
		CheckOut:  checkOut.UTC(),
		Pricing:   ComputePricing(room.Price, checkIn, checkOut, 0),
	}, nil
}

func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	now := s.now().UTC()
	checkIn, checkOut := req.CheckIn.UTC(), req.CheckOut.UTC()

	if err := validateStay(checkIn, checkOut, now); err != nil {
		return nil, err
	}
	guests := domain.GuestCount{Adults: req.Guests.Adults, Children: req.Guests.Children}
	if err := validateGuests(guests); err != nil {
		return nil, err
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrValidation, req.PaymentMethod)
	}

	room, err := s.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	if err := checkCapacity(room, guests); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:          actor.UserID,
		RoomID:          room.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          guests,
		GuestDetails:    toGuestDetails(req.GuestDetails),
		Pricing:         ComputePricing(room.Price, checkIn, checkOut, 0),
		Payment:         domain.Payment{Method: req.PaymentMethod, Status: domain.PaymentPending},
		Status:          domain.BookingPending,
		SpecialRequests: toSpecialRequests(req.SpecialRequests),
		Notes:           domain.Notes{Customer: strings.TrimSpace(req.CustomerNotes)},
		Cancellation:    domain.Cancellation{RefundStatus: domain.RefundNotApplicable},
		CreatedAt:       now,
	}
	if req.Preferences != nil {
		b.Preferences = *req.Preferences
	}

	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		return nil, s.mapStoreError(err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":     b.ID,
		"booking_number": b.BookingNumber,
		"room_id":        b.RoomID,
		"user_id":        b.UserID,
		"total":          b.Pricing.Total,
	}).Info("booking created")

	s.awardLoyalty(ctx, b)
	s.emit(ctx, domain.EventBookingCreated, b, 0)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, actor domain.Actor, q ListQuery) ([]domain.Booking, int64, error) {
	q = q.normalize()
	if q.Status != "" && !domain.BookingStatus(q.Status).Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
	}

	f := repository.BookingFilter{
		UserID:   actor.UserID,
		Status:   q.Status,
		SortBy:   strings.TrimPrefix(q.Sort, "-"),
		SortDesc: q.Sort == "" || strings.HasPrefix(q.Sort, "-"),
		Limit:    q.Limit,
		Offset:   (q.Page - 1) * q.Limit,
	}
	return s.bookings.List(ctx, f)
}

// ModifyBooking changes dates, guests or guest-facing details of a pending
// or confirmed booking. Date or guest changes re-run the capacity and
// availability guards and re-price the stay at the room's current rate.
func (s *Service) ModifyBooking(ctx context.Context, actor domain.Actor, id int64, req ModifyBookingRequest) (*domain.Booking, error) {
	b, err := s.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidTransition
	}

	now := s.now().UTC()
	from := b.Status
	stayChanged := false

	if req.CheckIn != nil {
		b.CheckIn = req.CheckIn.UTC()
		stayChanged = true
	}
	if req.CheckOut != nil {
		b.CheckOut = req.CheckOut.UTC()
		stayChanged = true
	}
	if req.Guests != nil {
		b.Guests = domain.GuestCount{Adults: req.Guests.Adults, Children: req.Guests.Children}
		stayChanged = true
	}
	if req.GuestDetails != nil {
		b.GuestDetails = toGuestDetails(*req.GuestDetails)
	}
	if req.SpecialRequests != nil {
		b.SpecialRequests = toSpecialRequests(*req.SpecialRequests)
	}
	if req.Preferences != nil {
		b.Preferences = *req.Preferences
	}
	if req.CustomerNotes != nil {
		b.Notes.Customer = strings.TrimSpace(*req.CustomerNotes)
	}
	if req.AdminNotes != nil {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		b.Notes.Admin = strings.TrimSpace(*req.AdminNotes)
	}

	if !stayChanged {
		if err := s.bookings.Update(ctx, b, from); err != nil {
			return nil, s.mapStoreError(err)
		}
		return b, nil
	}

	if err := validateStay(b.CheckIn, b.CheckOut, now); err != nil {
		return nil, err
	}
	if err := validateGuests(b.Guests); err != nil {
		return nil, err
	}

	room, err := s.getRoom(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	if err := checkCapacity(room, b.Guests); err != nil {
		return nil, err
	}

	reason := b.Pricing.DiscountReason
	b.Pricing = ComputePricing(room.Price, b.CheckIn, b.CheckOut, b.Pricing.Discount)
	b.Pricing.DiscountReason = reason

	if err := s.bookings.UpdateIfAvailable(ctx, b, from); err != nil {
		return nil, s.mapStoreError(err)
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "total": b.Pricing.Total}).Info("booking modified")
	s.emit(ctx, domain.EventBookingModified, b, 0)
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, actor domain.Actor, id int64, reason string) (*CancellationResult, error) {
	b, err := s.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if !CanBeCancelled(b, now) {
		return nil, ErrNotCancellable
	}

	refund := CalculateRefund(b, now)
	refundStatus := RefundStatusFor(refund, b.Pricing.Total)
	from := b.Status
	cancelledBy := actor.UserID

	b.Status = domain.BookingCancelled
	b.Cancellation = domain.Cancellation{
		IsCancelled:  true,
		CancelledAt:  &now,
		CancelledBy:  &cancelledBy,
		Reason:       strings.TrimSpace(reason),
		RefundStatus: refundStatus,
	}
	if b.Payment.Status == domain.PaymentCompleted && refund > 0 {
		b.Payment.RefundAmount = refund
		b.Payment.RefundDate = &now
		if refundStatus == domain.RefundFull {
			b.Payment.Status = domain.PaymentRefunded
		} else {
			b.Payment.Status = domain.PaymentPartiallyRefunded
		}
	}

	if err := s.bookings.Update(ctx, b, from); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrNotCancellable
		}
		return nil, s.mapStoreError(err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":    b.ID,
		"refund":        refund,
		"refund_status": refundStatus,
		"cancelled_by":  cancelledBy,
	}).Info("booking cancelled")

	s.emit(ctx, domain.EventBookingCancelled, b, refund)
	return &CancellationResult{RefundAmount: refund, RefundStatus: refundStatus, Booking: b}, nil
}

// ConfirmPayment records the outcome of a payment for a pending booking.
// A completed payment confirms the booking and so claims the room; the
// availability guard runs again at that point.
func (s *Service) ConfirmPayment(ctx context.Context, actor domain.Actor, id int64, req ConfirmPaymentRequest) (*domain.Booking, error) {
	if req.Status != domain.PaymentCompleted && req.Status != domain.PaymentFailed {
		return nil, fmt.Errorf("%w: payment status must be completed or failed", ErrValidation)
	}

	b, err := s.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidTransition
	}

	now := s.now().UTC()
	b.Payment.Status = req.Status
	if req.TransactionID != "" {
		b.Payment.TransactionID = strings.TrimSpace(req.TransactionID)
	}

	evt := domain.EventBookingConfirmed
	if req.Status == domain.PaymentCompleted {
		b.Status = domain.BookingConfirmed
		b.Payment.PaidAmount = b.Pricing.Total
		if req.PaidAmount != nil {
			b.Payment.PaidAmount = round2(*req.PaidAmount)
		}
		b.Payment.PaymentDate = &now
		err = s.bookings.UpdateIfAvailable(ctx, b, domain.BookingPending)
	} else {
		evt = domain.EventBookingCancelled
		b.Status = domain.BookingCancelled
		b.Cancellation = domain.Cancellation{
			IsCancelled:  true,
			CancelledAt:  &now,
			Reason:       "payment failed",
			RefundStatus: domain.RefundNotApplicable,
		}
		err = s.bookings.Update(ctx, b, domain.BookingPending)
	}
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, s.mapStoreError(err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":     b.ID,
		"payment_status": b.Payment.Status,
		"status":         b.Status,
	}).Info("payment recorded")

	s.emit(ctx, evt, b, 0)
	return b, nil
}

func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.advance(ctx, id, domain.BookingCheckedIn, domain.EventBookingCheckedIn, func(b *domain.Booking, now time.Time) {
		b.CheckInTime = &now
	})
}

func (s *Service) CheckOut(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.advance(ctx, id, domain.BookingCheckedOut, domain.EventBookingCheckedOut, func(b *domain.Booking, now time.Time) {
		b.CheckOutTime = &now
	})
}

func (s *Service) advance(ctx context.Context, id int64, to domain.BookingStatus, evt domain.BookingEventType, stamp func(*domain.Booking, time.Time)) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	from := b.Status
	b.Status = to
	stamp(b, s.now().UTC())

	if err := s.bookings.Update(ctx, b, from); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, s.mapStoreError(err)
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "from": from, "to": to}).Info("booking status changed")
	s.emit(ctx, evt, b, 0)
	return b, nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrOverlap):
		return ErrRoomUnavailable
	case errors.Is(err, repository.ErrStaleStatus):
		return ErrInvalidTransition
	case repository.IsNotFound(err):
		return ErrNotFound
	}
	return err
}

func (s *Service) awardLoyalty(ctx context.Context, b *domain.Booking) {
	if s.loyalty == nil {
		return
	}
	points := LoyaltyPoints(b.Pricing.Total)
	if points == 0 {
		return
	}
	if err := s.loyalty.AddLoyaltyPoints(ctx, b.UserID, points); err != nil {
		s.log.WithError(err).WithField("user_id", b.UserID).Warn("failed to award loyalty points")
	}
}

func (s *Service) emit(ctx context.Context, typ domain.BookingEventType, b *domain.Booking, refund float64) {
	if s.events == nil {
		return
	}
	evt := domain.BookingEvent{
		ID:            uuid.NewString(),
		Type:          typ,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		Status:        b.Status,
		Total:         b.Pricing.Total,
		RefundAmount:  refund,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.events.SendBookingEvent(ctx, evt); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"booking_id": b.ID, "event": typ}).Warn("failed to send booking event")
	}
}

func validateStay(checkIn, checkOut, now time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return ErrInvalidDateRange
	}
	if checkIn.Before(startOfDay(now)) {
		return fmt.Errorf("%w: check-in is in the past", ErrInvalidDateRange)
	}
	return nil
}

func validateGuests(g domain.GuestCount) error {
	if g.Adults < MinAdults || g.Adults > MaxAdults {
		return fmt.Errorf("%w: adults must be between %d and %d", ErrValidation, MinAdults, MaxAdults)
	}
	if g.Children < 0 || g.Children > MaxChildren {
		return fmt.Errorf("%w: children must be between 0 and %d", ErrValidation, MaxChildren)
	}
	return nil
}

// checkCapacity: adults must fit the adult beds, everyone must fit the room.
func checkCapacity(room *domain.Room, g domain.GuestCount) error {
	if g.Adults > room.Capacity.Adults || g.Total() > room.TotalCapacity() {
		return ErrCapacityExceeded
	}
	return nil
}
