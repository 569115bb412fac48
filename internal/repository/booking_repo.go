package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingNumber string    `gorm:"column:booking_number;size:16;uniqueIndex;not null"`
	UserID        int64     `gorm:"column:user_id;index;not null"`
	RoomID        int64     `gorm:"column:room_id;index:idx_bookings_room_dates,priority:1;not null"`
	CheckIn       time.Time `gorm:"column:check_in;index:idx_bookings_room_dates,priority:2;not null"`
	CheckOut      time.Time `gorm:"column:check_out;index:idx_bookings_room_dates,priority:3;not null"`
	Adults        int       `gorm:"column:adults;not null"`
	Children      int       `gorm:"column:children;not null"`

	PrimaryFirstName string         `gorm:"column:primary_first_name;size:50"`
	PrimaryLastName  string         `gorm:"column:primary_last_name;size:50"`
	PrimaryEmail     string         `gorm:"column:primary_email;size:255"`
	PrimaryPhone     string         `gorm:"column:primary_phone;size:20"`
	AdditionalGuests datatypes.JSON `gorm:"column:additional_guests"`

	RoomRate       float64 `gorm:"column:room_rate;not null"`
	Nights         int     `gorm:"column:nights;not null"`
	Subtotal       float64 `gorm:"column:subtotal;not null"`
	Taxes          float64 `gorm:"column:taxes;not null"`
	Discount       float64 `gorm:"column:discount;not null"`
	DiscountReason string  `gorm:"column:discount_reason;size:255"`
	Total          float64 `gorm:"column:total;not null"`

	PaymentMethod        string     `gorm:"column:payment_method;size:20;not null"`
	PaymentStatus        string     `gorm:"column:payment_status;size:20;index;not null"`
	PaymentTransactionID string     `gorm:"column:payment_transaction_id;size:100"`
	PaidAmount           float64    `gorm:"column:paid_amount;not null"`
	PaymentDate          *time.Time `gorm:"column:payment_date"`
	RefundAmount         float64    `gorm:"column:refund_amount;not null"`
	RefundDate           *time.Time `gorm:"column:refund_date"`

	Status          string         `gorm:"column:status;size:20;index;not null"`
	SpecialRequests datatypes.JSON `gorm:"column:special_requests"`
	Preferences     datatypes.JSON `gorm:"column:preferences"`

	CustomerNotes     string `gorm:"column:customer_notes;size:500"`
	AdminNotes        string `gorm:"column:admin_notes;size:500"`
	HousekeepingNotes string `gorm:"column:housekeeping_notes;size:500"`

	CheckInTime  *time.Time `gorm:"column:check_in_time"`
	CheckOutTime *time.Time `gorm:"column:check_out_time"`

	IsCancelled        bool       `gorm:"column:is_cancelled;not null"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancelledBy        *int64     `gorm:"column:cancelled_by"`
	CancellationReason string     `gorm:"column:cancellation_reason;size:500"`
	RefundStatus       string     `gorm:"column:refund_status;size:20;not null"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// bookingSequenceModel holds the last issued reference number per calendar year.
type bookingSequenceModel struct {
	Year  int   `gorm:"column:year;primaryKey;autoIncrement:false"`
	Value int64 `gorm:"column:value;not null"`
}

func (bookingSequenceModel) TableName() string { return "booking_sequences" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		BookingNumber: m.BookingNumber,
		UserID:        m.UserID,
		RoomID:        m.RoomID,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		Guests:        domain.GuestCount{Adults: m.Adults, Children: m.Children},
		GuestDetails: domain.GuestDetails{
			PrimaryGuest: domain.Guest{
				FirstName: m.PrimaryFirstName,
				LastName:  m.PrimaryLastName,
				Email:     m.PrimaryEmail,
				Phone:     m.PrimaryPhone,
			},
		},
		Pricing: domain.Pricing{
			RoomRate:       m.RoomRate,
			Nights:         m.Nights,
			Subtotal:       m.Subtotal,
			Taxes:          m.Taxes,
			Discount:       m.Discount,
			DiscountReason: m.DiscountReason,
			Total:          m.Total,
		},
		Payment: domain.Payment{
			Method:        domain.PaymentMethod(m.PaymentMethod),
			Status:        domain.PaymentStatus(m.PaymentStatus),
			TransactionID: m.PaymentTransactionID,
			PaidAmount:    m.PaidAmount,
			PaymentDate:   m.PaymentDate,
			RefundAmount:  m.RefundAmount,
			RefundDate:    m.RefundDate,
		},
		Status: domain.BookingStatus(m.Status),
		Notes: domain.Notes{
			Customer:     m.CustomerNotes,
			Admin:        m.AdminNotes,
			Housekeeping: m.HousekeepingNotes,
		},
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		Cancellation: domain.Cancellation{
			IsCancelled:  m.IsCancelled,
			CancelledAt:  m.CancelledAt,
			CancelledBy:  m.CancelledBy,
			Reason:       m.CancellationReason,
			RefundStatus: domain.RefundStatus(m.RefundStatus),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	decodeInto(m.AdditionalGuests, &b.GuestDetails.AdditionalGuests)
	decodeInto(m.SpecialRequests, &b.SpecialRequests)
	decodeInto(m.Preferences, &b.Preferences)
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:               b.ID,
		BookingNumber:    b.BookingNumber,
		UserID:           b.UserID,
		RoomID:           b.RoomID,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		Adults:           b.Guests.Adults,
		Children:         b.Guests.Children,
		PrimaryFirstName: b.GuestDetails.PrimaryGuest.FirstName,
		PrimaryLastName:  b.GuestDetails.PrimaryGuest.LastName,
		PrimaryEmail:     b.GuestDetails.PrimaryGuest.Email,
		PrimaryPhone:     b.GuestDetails.PrimaryGuest.Phone,
		AdditionalGuests: encodeJSON(b.GuestDetails.AdditionalGuests),

		RoomRate:       b.Pricing.RoomRate,
		Nights:         b.Pricing.Nights,
		Subtotal:       b.Pricing.Subtotal,
		Taxes:          b.Pricing.Taxes,
		Discount:       b.Pricing.Discount,
		DiscountReason: b.Pricing.DiscountReason,
		Total:          b.Pricing.Total,

		PaymentMethod:        string(b.Payment.Method),
		PaymentStatus:        string(b.Payment.Status),
		PaymentTransactionID: b.Payment.TransactionID,
		PaidAmount:           b.Payment.PaidAmount,
		PaymentDate:          b.Payment.PaymentDate,
		RefundAmount:         b.Payment.RefundAmount,
		RefundDate:           b.Payment.RefundDate,

		Status:          string(b.Status),
		SpecialRequests: encodeJSON(b.SpecialRequests),
		Preferences:     encodeJSON(b.Preferences),

		CustomerNotes:     b.Notes.Customer,
		AdminNotes:        b.Notes.Admin,
		HousekeepingNotes: b.Notes.Housekeeping,

		CheckInTime:  b.CheckInTime,
		CheckOutTime: b.CheckOutTime,

		IsCancelled:        b.Cancellation.IsCancelled,
		CancelledAt:        b.Cancellation.CancelledAt,
		CancelledBy:        b.Cancellation.CancelledBy,
		CancellationReason: b.Cancellation.Reason,
		RefundStatus:       string(b.Cancellation.RefundStatus),

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func decodeInto(raw datatypes.JSON, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func occupyingStatuses() []string {
	out := make([]string, 0, len(domain.OccupyingStatuses))
	for _, s := range domain.OccupyingStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// CountOverlapping counts occupying bookings of roomID intersecting [checkIn, checkOut).
// excludeID > 0 leaves that booking out.
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error) {
	return countOverlapping(r.db.WithContext(ctx), roomID, checkIn, checkOut, excludeID)
}

func countOverlapping(db *gorm.DB, roomID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := db.Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", occupyingStatuses()).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// lockRoom serializes writers per room. SQLite ignores FOR UPDATE but runs
// a single writer anyway.
func lockRoom(tx *gorm.DB, roomID int64) error {
	var room roomModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", roomID).
		First(&room).Error
}

// CreateIfAvailable inserts b with a fresh booking number, provided no
// occupying booking overlaps its dates. The check and the insert share
// one transaction holding the room lock.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	var created bookingModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return err
		}

		cnt, err := countOverlapping(tx, b.RoomID, b.CheckIn, b.CheckOut, 0)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		number, err := nextBookingNumber(tx, b.CreatedAt.Year())
		if err != nil {
			return err
		}

		created = toBookingModel(b)
		created.BookingNumber = number
		if err := tx.Create(&created).Error; err != nil {
			return mapOverlapError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	*b = *toDomainBooking(created)
	return nil
}

// nextBookingNumber bumps the per-year counter under a row lock and formats
// BK<yyyy><6-digit seq>.
func nextBookingNumber(tx *gorm.DB, year int) (string, error) {
	seed := bookingSequenceModel{Year: year}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil && !isUniqueConstraintError(err) {
		return "", err
	}

	var seq bookingSequenceModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("year = ?", year).First(&seq).Error; err != nil {
		return "", err
	}
	seq.Value++
	if err := tx.Model(&bookingSequenceModel{}).Where("year = ?", year).Update("value", seq.Value).Error; err != nil {
		return "", err
	}
	return FormatBookingNumber(year, seq.Value), nil
}

func FormatBookingNumber(year int, seq int64) string {
	return fmt.Sprintf("BK%04d%06d", year, seq)
}

// Update persists b if its stored status still equals from.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveBooking(tx, b, from)
	})
}

// UpdateIfAvailable is Update plus an overlap check that excludes b itself,
// under the same room lock as CreateIfAvailable.
func (r *BookingRepository) UpdateIfAvailable(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return err
		}

		cnt, err := countOverlapping(tx, b.RoomID, b.CheckIn, b.CheckOut, b.ID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return saveBooking(tx, b, from)
	})
}

func saveBooking(tx *gorm.DB, b *domain.Booking, from domain.BookingStatus) error {
	m := toBookingModel(b)
	res := tx.Model(&m).
		Where("status = ?", string(from)).
		Select("*").
		Omit("id", "booking_number", "user_id", "created_at").
		Updates(&m)
	if res.Error != nil {
		return mapOverlapError(res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&bookingModel{}).Where("id = ?", b.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrStaleStatus
	}
	b.UpdatedAt = m.UpdatedAt
	return nil
}

type BookingFilter struct {
	UserID   int64
	RoomID   int64
	Status   string
	From     *time.Time // check_out after
	To       *time.Time // check_in before
	SortBy   string     // created_at | check_in
	SortDesc bool
	Limit    int
	Offset   int
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.RoomID > 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("check_out > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("check_in < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col := "created_at"
	if f.SortBy == "check_in" {
		col = "check_in"
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: f.SortDesc}).Order("id ASC")

	var rows []bookingModel
	if err := paginate(q, f.Limit, f.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// HasUpcomingOccupying reports whether roomID has an occupying booking that
// has not checked out before now.
func (r *BookingRepository) HasUpcomingOccupying(ctx context.Context, roomID int64, now time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", occupyingStatuses()).
		Where("check_out > ?", now).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
