package repository

import (
	"context"
	"testing"

	"hotelbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	cheap := seedRoom(t, db, "101", 80, "wifi")
	mid := seedRoom(t, db, "102", 150, "wifi", "minibar")
	seedRoom(t, db, "103", 400, "wifi", "minibar", "jacuzzi")
	idle := seedRoom(t, db, "104", 90)
	require.NoError(t, repo.SetActive(ctx, idle.ID, false))

	rooms, total, err := repo.List(ctx, RoomFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, cheap.ID, rooms[0].ID)

	maxPrice := 200.0
	rooms, total, err = repo.List(ctx, RoomFilter{MaxPrice: &maxPrice, Amenities: []string{"MiniBar"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mid.ID, rooms[0].ID)

	rooms, total, err = repo.List(ctx, RoomFilter{Amenities: []string{"wifi"}, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rooms, 1)
	assert.Equal(t, mid.ID, rooms[0].ID)

	_, total, err = repo.List(ctx, RoomFilter{Search: "10"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestRoomRepository_ListExcludesBookedRooms(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	booked := seedRoom(t, db, "201", 100)
	free := seedRoom(t, db, "202", 120)
	require.NoError(t, bookings.CreateIfAvailable(ctx, newBooking(booked.ID, domain.BookingConfirmed, day(2), day(5))))

	in, out := day(3), day(4)
	rooms, total, err := repo.List(ctx, RoomFilter{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, free.ID, rooms[0].ID)

	in, out = day(5), day(6)
	_, total, err = repo.List(ctx, RoomFilter{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRoomRepository_UpdateAndUniqueNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 100, "tv")
	seedRoom(t, db, "302", 100)

	exists, err := repo.ExistsByNumber(ctx, "302", room.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(ctx, "301", room.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	room.Price = 135.5
	room.Amenities = []string{"tv", "balcony"}
	require.NoError(t, repo.Update(ctx, room))

	stored, err := repo.GetByNumber(ctx, "301")
	require.NoError(t, err)
	assert.Equal(t, 135.5, stored.Price)
	assert.Equal(t, []string{"tv", "balcony"}, stored.Amenities)
	assert.Equal(t, 3, stored.TotalCapacity())

	dup := &domain.Room{RoomNumber: "302", RoomType: domain.RoomSingle, Capacity: domain.RoomCapacity{Adults: 1}, IsActive: true}
	assert.Error(t, repo.Create(ctx, dup))
}
