package events

import (
	"context"
	"errors"

	"hotelbooking/internal/domain"
)

type Sender interface {
	SendBookingEvent(ctx context.Context, evt domain.BookingEvent) error
}

// Fanout delivers every event to all senders, even when some fail.
type Fanout []Sender

// NewFanout drops nil senders. It returns nil when none are left so the
// caller can skip event emission entirely.
func NewFanout(senders ...Sender) Fanout {
	var out Fanout
	for _, s := range senders {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f Fanout) SendBookingEvent(ctx context.Context, evt domain.BookingEvent) error {
	var errs []error
	for _, s := range f {
		if err := s.SendBookingEvent(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
