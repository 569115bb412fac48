package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, number string, price float64, amenities ...string) *domain.Room {
	t.Helper()
	room := &domain.Room{
		RoomNumber: number,
		RoomType:   domain.RoomDouble,
		Price:      price,
		Capacity:   domain.RoomCapacity{Adults: 2, Children: 1},
		BedType:    domain.BedQueen,
		Amenities:  amenities,
		Floor:      1,
		IsActive:   true,
	}
	require.NoError(t, NewRoomRepository(db).Create(context.Background(), room))
	return room
}

func newBooking(roomID int64, status domain.BookingStatus, in, out time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:   1,
		RoomID:   roomID,
		CheckIn:  in,
		CheckOut: out,
		Guests:   domain.GuestCount{Adults: 2},
		Pricing:  domain.Pricing{RoomRate: 100, Nights: 1, Subtotal: 100, Taxes: 18, Total: 118},
		Payment:  domain.Payment{Method: domain.PaymentCash, Status: domain.PaymentPending},
		Status:   status,
		Cancellation: domain.Cancellation{
			RefundStatus: domain.RefundNotApplicable,
		},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func day(d int) time.Time {
	return time.Date(2026, 4, d, 14, 0, 0, 0, time.UTC)
}
