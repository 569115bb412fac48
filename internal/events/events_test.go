package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() domain.BookingEvent {
	return domain.BookingEvent{
		ID:            "evt-1",
		Type:          domain.EventBookingConfirmed,
		BookingID:     42,
		BookingNumber: "BK2026000042",
		UserID:        7,
		RoomID:        3,
		Status:        domain.BookingConfirmed,
		Total:         3540,
		OccurredAt:    time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_SendBookingEvent(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, DefaultExchange, logger.Discard())

	require.NoError(t, p.SendBookingEvent(context.Background(), sampleEvent()))
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "bookings", got.exchange)
	assert.Equal(t, "booking.confirmed", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "evt-1", got.msg.MessageId)

	var decoded domain.BookingEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, sampleEvent(), decoded)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_SendBookingEvent_Error(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := newPublisher(ch, DefaultExchange, logger.Discard())

	err := p.SendBookingEvent(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

type recorder struct {
	got []domain.BookingEvent
	err error
}

func (r *recorder) SendBookingEvent(_ context.Context, evt domain.BookingEvent) error {
	r.got = append(r.got, evt)
	return r.err
}

func TestFanout(t *testing.T) {
	failing := &recorder{err: errors.New("down")}
	ok := &recorder{}

	f := NewFanout(nil, failing, ok)
	require.Len(t, f, 2)

	err := f.SendBookingEvent(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "down")
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1)

	assert.Nil(t, NewFanout(nil, nil))
}
