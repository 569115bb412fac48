package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_CreateIfAvailable_AssignsSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	first := newBooking(room.ID, domain.BookingPending, day(1), day(3))
	second := newBooking(room.ID, domain.BookingPending, day(1), day(3))
	require.NoError(t, repo.CreateIfAvailable(ctx, first))
	require.NoError(t, repo.CreateIfAvailable(ctx, second))

	assert.Equal(t, "BK2026000001", first.BookingNumber)
	assert.Equal(t, "BK2026000002", second.BookingNumber)
	assert.NotZero(t, first.ID)

	next := newBooking(room.ID, domain.BookingPending, day(5), day(6))
	next.CreatedAt = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateIfAvailable(ctx, next))
	assert.Equal(t, "BK2027000001", next.BookingNumber)
}

func TestBookingRepository_CreateIfAvailable_RejectsOverlap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	require.NoError(t, repo.CreateIfAvailable(ctx, newBooking(room.ID, domain.BookingConfirmed, day(1), day(4))))

	err := repo.CreateIfAvailable(ctx, newBooking(room.ID, domain.BookingPending, day(3), day(5)))
	assert.ErrorIs(t, err, ErrOverlap)

	// back-to-back stays share the boundary instant only
	assert.NoError(t, repo.CreateIfAvailable(ctx, newBooking(room.ID, domain.BookingPending, day(4), day(6))))
}

func TestBookingRepository_CreateIfAvailable_IgnoresNonOccupying(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	for _, st := range []domain.BookingStatus{domain.BookingPending, domain.BookingCancelled, domain.BookingCheckedOut, domain.BookingNoShow} {
		require.NoError(t, repo.CreateIfAvailable(ctx, newBooking(room.ID, st, day(1), day(4))))
	}

	cnt, err := repo.CountOverlapping(ctx, room.ID, day(1), day(4), 0)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestBookingRepository_CreateIfAvailable_UnknownRoom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)

	err := repo.CreateIfAvailable(context.Background(), newBooking(404, domain.BookingPending, day(1), day(2)))
	assert.True(t, IsNotFound(err))
}

func TestBookingRepository_CreateIfAvailable_ConcurrentWritersAdmitOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		overlap int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateIfAvailable(context.Background(), newBooking(room.ID, domain.BookingConfirmed, day(1), day(3)))
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				ok++
			case ErrOverlap:
				overlap++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, overlap)
}

func TestBookingRepository_Update_StaleStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	b := newBooking(room.ID, domain.BookingPending, day(1), day(2))
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	b.Status = domain.BookingCancelled
	b.Cancellation.IsCancelled = true
	b.Cancellation.Reason = "plans changed"
	require.NoError(t, repo.Update(ctx, b, domain.BookingPending))

	// a second writer that still believes the booking is pending loses
	b.Status = domain.BookingConfirmed
	assert.ErrorIs(t, repo.Update(ctx, b, domain.BookingPending), ErrStaleStatus)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
	assert.Equal(t, "plans changed", stored.Cancellation.Reason)
	assert.True(t, stored.Cancellation.IsCancelled)

	missing := *b
	missing.ID = 9999
	assert.True(t, IsNotFound(repo.Update(ctx, &missing, domain.BookingCancelled)))
}

func TestBookingRepository_UpdateIfAvailable_ExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	b := newBooking(room.ID, domain.BookingConfirmed, day(1), day(3))
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	b.CheckOut = day(4)
	require.NoError(t, repo.UpdateIfAvailable(ctx, b, domain.BookingConfirmed))

	other := newBooking(room.ID, domain.BookingPending, day(5), day(7))
	require.NoError(t, repo.CreateIfAvailable(ctx, other))

	other.CheckIn = day(3)
	other.Status = domain.BookingConfirmed
	assert.ErrorIs(t, repo.UpdateIfAvailable(ctx, other, domain.BookingPending), ErrOverlap)

	stored, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, stored.Status)
	assert.True(t, stored.CheckIn.Equal(day(5)))
}

func TestBookingRepository_RoundTripsNestedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	b := newBooking(room.ID, domain.BookingPending, day(1), day(2))
	b.GuestDetails = domain.GuestDetails{
		PrimaryGuest:     domain.Guest{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210"},
		AdditionalGuests: []domain.Guest{{FirstName: "Ravi", LastName: "Rao", Age: 9}},
	}
	b.SpecialRequests = []domain.SpecialRequest{{Type: "extra-bed", Description: "one cot", Status: "pending"}}
	b.Preferences = domain.Preferences{FloorLevel: "high", LateCheckOut: true}
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	stored, err := repo.GetByNumber(ctx, b.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, b.GuestDetails, stored.GuestDetails)
	assert.Equal(t, b.SpecialRequests, stored.SpecialRequests)
	assert.Equal(t, b.Preferences, stored.Preferences)
	assert.Equal(t, 118.0, stored.Pricing.Total)
}

func TestBookingRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	room := seedRoom(t, db, "101", 100)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		b := newBooking(room.ID, domain.BookingPending, day(i*3), day(i*3+1))
		b.CreatedAt = b.CreatedAt.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.CreateIfAvailable(ctx, b))
	}
	other := newBooking(room.ID, domain.BookingConfirmed, day(20), day(21))
	other.UserID = 2
	require.NoError(t, repo.CreateIfAvailable(ctx, other))

	rows, total, err := repo.List(ctx, BookingFilter{UserID: 1, SortBy: "check_in", SortDesc: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CheckIn.Equal(day(9)))
	assert.True(t, rows[1].CheckIn.Equal(day(6)))

	rows, total, err = repo.List(ctx, BookingFilter{Status: string(domain.BookingConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(2), rows[0].UserID)

	upcoming, err := repo.HasUpcomingOccupying(ctx, room.ID, day(19))
	require.NoError(t, err)
	assert.True(t, upcoming)

	upcoming, err = repo.HasUpcomingOccupying(ctx, room.ID, day(22))
	require.NoError(t, err)
	assert.False(t, upcoming)
}
