package admin

import (
	"context"
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	bookings BookingRepository
	users    UserRepository
	rooms    RoomRepository
	log      logrus.FieldLogger
}

func NewService(bookings BookingRepository, users UserRepository, rooms RoomRepository, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{bookings: bookings, users: users, rooms: rooms, log: log}
}

// -------------------- Bookings --------------------

func (s *Service) ListBookings(ctx context.Context, q BookingsQuery) ([]domain.Booking, int64, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return nil, 0, err
	}
	page, limit := normalizePage(q.Page, q.Limit)
	f.Limit = limit
	f.Offset = (page - 1) * limit
	return s.bookings.List(ctx, f)
}

// ExportRow is one ledger line of the bookings export.
type ExportRow struct {
	Booking    domain.Booking
	RoomNumber string
}

// ExportBookings returns every booking matching q (capped) together with
// the room numbers, ready for the spreadsheet writer.
func (s *Service) ExportBookings(ctx context.Context, q BookingsQuery) ([]ExportRow, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return nil, err
	}
	f.Limit = maxExportRows

	rows, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if total > maxExportRows {
		s.log.WithField("total", total).Warn("booking export truncated")
	}

	rooms, _, err := s.rooms.List(ctx, repository.RoomFilter{IncludeIdle: true})
	if err != nil {
		return nil, err
	}
	numbers := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		numbers[r.ID] = r.RoomNumber
	}

	out := make([]ExportRow, 0, len(rows))
	for _, b := range rows {
		out = append(out, ExportRow{Booking: b, RoomNumber: numbers[b.RoomID]})
	}
	return out, nil
}

func bookingFilter(q BookingsQuery) (repository.BookingFilter, error) {
	f := repository.BookingFilter{
		UserID:   q.UserID,
		RoomID:   q.RoomID,
		SortBy:   strings.TrimPrefix(q.Sort, "-"),
		SortDesc: q.Sort == "" || strings.HasPrefix(q.Sort, "-"),
	}
	if q.Status != "" {
		if !domain.BookingStatus(q.Status).Valid() {
			return f, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
		}
		f.Status = q.Status
	}
	if q.From != "" {
		t, err := parseDate(q.From)
		if err != nil {
			return f, fmt.Errorf("%w: from", ErrValidation)
		}
		f.From = &t
	}
	if q.To != "" {
		t, err := parseDate(q.To)
		if err != nil {
			return f, fmt.Errorf("%w: to", ErrValidation)
		}
		f.To = &t
	}
	return f, nil
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, q UsersQuery) ([]domain.User, int64, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	return s.users.List(ctx, repository.UserFilter{
		Role:     q.Role,
		IsActive: q.IsActive,
		Search:   q.Search,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

// SetUserStatus activates or deactivates an account. Admin accounts, the
// caller's own included, can only be activated.
func (s *Service) SetUserStatus(ctx context.Context, actor domain.Actor, userID int64, active bool) (*domain.User, error) {
	if !active && actor.UserID == userID {
		return nil, ErrCannotDeactivateSelf
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !active && u.IsAdmin() {
		return nil, ErrCannotDeactivateAdmin
	}

	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.IsActive = active

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"is_active": active,
		"by":        actor.UserID,
	}).Info("user status changed")
	return u, nil
}
